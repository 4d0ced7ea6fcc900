/*
Package suggest wires the chat history store to the ngram and vocab
engines behind the one operation callers actually want: "here is my
draft, what comes next".

Every call re-reads the history file and builds its engines from
scratch. The corpus is small, the build is a single pass, and the
payoff is that concurrent callers never share mutable state and never
see a model that is staler than the file itself.
*/
package suggest

import (
	"github.com/charmbracelet/log"

	"github.com/draftkit/hintserve/pkg/history"
	"github.com/draftkit/hintserve/pkg/ngram"
	"github.com/draftkit/hintserve/pkg/vocab"
)

// Suggester answers suggestion queries against one history store.
type Suggester struct {
	store    *history.Store
	maxWords int
}

// NewSuggester creates a suggester. maxWords <= 0 falls back to
// ngram.DefaultMaxWords.
func NewSuggester(store *history.Store, maxWords int) *Suggester {
	if maxWords <= 0 {
		maxWords = ngram.DefaultMaxWords
	}
	return &Suggester{store: store, maxWords: maxWords}
}

// Store exposes the underlying history store.
func (s *Suggester) Store() *history.Store {
	return s.store
}

// Suggest extends input using the suggester's default word limit.
func (s *Suggester) Suggest(input string) string {
	return s.SuggestN(input, s.maxWords)
}

// SuggestN builds a fresh model from the current history and walks it.
// It cannot fail: no history, too little input, or no matching context
// all come back as "".
func (s *Suggester) SuggestN(input string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = s.maxWords
	}

	texts := s.store.Texts()
	if len(texts) == 0 {
		log.Debugf("Empty corpus at %s, no suggestion", s.store.Path())
		return ""
	}

	model := ngram.Build(texts)
	log.Debugf("Built model: %d messages, %d contexts", len(texts), model.Contexts())
	return model.Suggest(input, maxWords)
}

// CompleteWord finishes the partially typed word from the corpus
// vocabulary, most frequent first.
func (s *Suggester) CompleteWord(prefix string, limit int) []vocab.Suggestion {
	texts := s.store.Texts()
	if len(texts) == 0 {
		return nil
	}
	return vocab.BuildFromTexts(texts).Complete(prefix, limit)
}
