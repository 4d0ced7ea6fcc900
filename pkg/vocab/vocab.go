/*
Package vocab completes the word the user is currently typing from the
vocabulary of their own chat history.

It complements the ngram walk: ngram extends the draft after a finished
word, vocab finishes the word in progress. Words live in a patricia
trie keyed by the normalized word with their corpus occurrence count as
the item, and completions rank by that count.
*/
package vocab

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/draftkit/hintserve/pkg/ngram"
)

// Suggestion is one completion candidate with its corpus frequency.
type Suggestion struct {
	Word      string
	Frequency int
}

// Completer indexes corpus vocabulary for prefix completion. Like the
// ngram model it is built fresh per request and discarded.
type Completer struct {
	trie         *patricia.Trie
	totalWords   int
	maxFrequency int
}

// NewCompleter returns an empty completer.
func NewCompleter() *Completer {
	return &Completer{trie: patricia.NewTrie()}
}

// BuildFromTexts indexes every normalized token of every message.
func BuildFromTexts(texts []string) *Completer {
	c := NewCompleter()
	for _, text := range texts {
		for _, token := range ngram.Normalize(text) {
			c.AddWord(token, 1)
		}
	}
	return c
}

// AddWord adds count occurrences of word, accumulating with any prior
// count for the same word.
func (c *Completer) AddWord(word string, count int) {
	if word == "" || count <= 0 {
		return
	}
	freq := count
	if item := c.trie.Get(patricia.Prefix(word)); item != nil {
		if prev, ok := item.(int); ok {
			freq += prev
		}
	} else {
		c.totalWords++
	}
	c.trie.Insert(patricia.Prefix(word), freq)
	if freq > c.maxFrequency {
		c.maxFrequency = freq
	}
}

// Complete returns up to limit vocabulary words beginning with prefix,
// most frequent first. Ties keep trie visit order (lexicographic), so
// results are stable across calls. The exact prefix itself is skipped;
// completing a word the user already finished typing helps nobody.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	lowerPrefix := strings.ToLower(strings.TrimSpace(prefix))
	if lowerPrefix == "" {
		return nil
	}

	var suggestions []Suggestion
	err := c.trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == lowerPrefix {
			return nil
		}
		freq, ok := item.(int)
		if !ok {
			log.Errorf("Unexpected trie item type %T for word %s", item, p)
			freq = 1
		}
		suggestions = append(suggestions, Suggestion{Word: word, Frequency: freq})
		return nil
	})
	if err != nil {
		log.Errorf("Visiting trie subtree for %q: %v", lowerPrefix, err)
		return nil
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Frequency > suggestions[j].Frequency
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

// Stats reports index size counters.
func (c *Completer) Stats() map[string]int {
	return map[string]int{
		"totalWords":   c.totalWords,
		"maxFrequency": c.maxFrequency,
	}
}
