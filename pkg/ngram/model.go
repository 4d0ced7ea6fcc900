/*
Package ngram builds fixed-order Markov models over chat history and
walks them to suggest how a draft message continues.

The model maps a context of Order-1 consecutive tokens to the words
observed directly after it, with counts. Models are cheap throwaway
values: callers build one from the current corpus, query it, and drop
it. Nothing is cached between requests, so a model can never serve
stale history.
*/
package ngram

import (
	"strings"
)

// Order is the n-gram width: Order-1 context tokens predict one next
// token. Fixed at 3 (bigram context), though the code works for any
// value >= 2.
const Order = 3

// contextKey joins context tokens into a map key. Tokens never contain
// spaces after Normalize, so a space join is collision-free and equal
// token sequences always produce equal keys.
func contextKey(tokens []string) string {
	return strings.Join(tokens, " ")
}

// followers records the words seen after one context. Go maps iterate
// in random order, so first-seen order is tracked separately; Top
// depends on it for stable tie-breaking.
type followers struct {
	words  []string
	counts map[string]int
}

func newFollowers() *followers {
	return &followers{counts: make(map[string]int)}
}

func (f *followers) add(word string) {
	if _, seen := f.counts[word]; !seen {
		f.words = append(f.words, word)
	}
	f.counts[word]++
}

// top returns the most frequent follower. Ties go to the word that was
// observed first, so repeated builds from the same corpus always pick
// the same word.
func (f *followers) top() string {
	best := ""
	bestCount := 0
	for _, w := range f.words {
		if c := f.counts[w]; c > bestCount {
			best = w
			bestCount = c
		}
	}
	return best
}

// Model is a frequency table of (context -> next word) transitions
// built from normalized chat messages. A zero-context model is valid
// and simply never predicts.
type Model struct {
	contexts map[string]*followers
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{contexts: make(map[string]*followers)}
}

// Build constructs a model from raw message texts in one pass. Each
// message is normalized independently; window counting never crosses a
// message boundary.
func Build(messages []string) *Model {
	m := NewModel()
	for _, msg := range messages {
		m.Train(Normalize(msg))
	}
	return m
}

// Train slides a window of width Order across one token sequence and
// counts each (context, next word) pair. Sequences shorter than Order
// cannot produce a single window and are ignored.
func (m *Model) Train(tokens []string) {
	if len(tokens) < Order {
		return
	}
	for i := 0; i <= len(tokens)-Order; i++ {
		key := contextKey(tokens[i : i+Order-1])
		f, ok := m.contexts[key]
		if !ok {
			f = newFollowers()
			m.contexts[key] = f
		}
		f.add(tokens[i+Order-1])
	}
}

// Contexts reports how many distinct contexts the model holds.
func (m *Model) Contexts() int {
	return len(m.contexts)
}

// next looks up the most likely follower for a context. The second
// return is false when the context was never observed.
func (m *Model) next(context []string) (string, bool) {
	f, ok := m.contexts[contextKey(context)]
	if !ok {
		return "", false
	}
	return f.top(), true
}
