package ngram

import (
	"strings"
)

// DefaultMaxWords bounds a suggestion when the caller passes no limit.
const DefaultMaxWords = 10

// Suggest greedily extends the user's draft with the most likely
// continuation words, up to maxWords of them.
//
// The last Order-1 normalized input tokens seed the lookup context.
// Each step picks the most frequent follower for the current context,
// then slides the context forward over the chosen word, so the walk
// can chain through transitions that never co-occurred in a single
// message. The walk stops at the first unseen context or at maxWords;
// revisited contexts are not special-cased since maxWords already
// bounds the loop.
//
// There is no failure mode: too little input, an empty model, or an
// immediate context miss all yield "".
func (m *Model) Suggest(input string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	tokens := Normalize(input)
	if len(tokens) < Order-1 {
		return ""
	}

	context := make([]string, Order-1)
	copy(context, tokens[len(tokens)-(Order-1):])

	var picked []string
	for i := 0; i < maxWords; i++ {
		word, ok := m.next(context)
		if !ok {
			break
		}
		picked = append(picked, word)
		copy(context, context[1:])
		context[len(context)-1] = word
	}
	return strings.Join(picked, " ")
}
