package ngram

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input       string
		expected    []string
		description string
	}{
		{"hello world", []string{"hello", "world"}, "plain lowercase"},
		{"Hello World", []string{"hello", "world"}, "mixed case folds"},
		{"I WILL  review!!", []string{"i", "will", "review"}, "punctuation and case stripped"},
		{"", nil, "empty input"},
		{"   \t\n ", nil, "whitespace only"},
		{"!!!...???", nil, "punctuation only"},
		{"utf8 and word2vec", []string{"utf8", "and", "word2vec"}, "digits survive"},
		{"déjà vu 🎉", []string{"dj", "vu"}, "non-ASCII dropped entirely"},
		{"one,two;three", []string{"onetwothree"}, "punctuation is removed, not a separator"},
		{"a  b\tc\nd", []string{"a", "b", "c", "d"}, "runs of whitespace split"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := Normalize(tc.input)
			if len(got) != len(tc.expected) {
				t.Fatalf("Normalize(%q) = %v, want %v", tc.input, got, tc.expected)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("Normalize(%q)[%d] = %q, want %q", tc.input, i, got[i], tc.expected[i])
				}
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	inputs := []string{"Hello, World!", "", "MiXeD 123 caSE??", "tabs\tand\nnewlines"}
	for _, in := range inputs {
		first := Normalize(in)
		second := Normalize(in)
		if strings.Join(first, " ") != strings.Join(second, " ") {
			t.Errorf("Normalize(%q) not deterministic: %v vs %v", in, first, second)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"I WILL review!!", "ship it tomorrow", "utf8 rocks 100%"}
	for _, in := range inputs {
		once := Normalize(in)
		again := Normalize(strings.Join(once, " "))
		if strings.Join(once, " ") != strings.Join(again, " ") {
			t.Errorf("re-normalizing %q changed tokens: %v vs %v", in, once, again)
		}
	}
}

func TestBuildDiscardsShortSentences(t *testing.T) {
	m := Build([]string{"ok", "sounds good", "", "yes!!"})
	if m.Contexts() != 0 {
		t.Errorf("messages shorter than %d tokens must not train the model, got %d contexts", Order, m.Contexts())
	}
	if got := m.Suggest("sounds good", 5); got != "" {
		t.Errorf("model trained only on short messages suggested %q, want empty", got)
	}
}

func TestSuggestWalksCorpus(t *testing.T) {
	// Two observations for context ("i","will"): "review" (message 1)
	// and "send" (message 2), each count 1. The tie must go to the
	// first-seen word, then the walk chains through the first message.
	m := Build([]string{
		"I will review the document today",
		"I will send the review today",
	})

	got := m.Suggest("I will", 5)
	want := "review the document today"
	if got != want {
		t.Fatalf("Suggest(%q) = %q, want %q", "I will", got, want)
	}
}

func TestSuggestTieBreakIsFirstSeen(t *testing.T) {
	// Swapped corpus order flips which word was seen first.
	m := Build([]string{
		"I will send the review today",
		"I will review the document today",
	})
	got := m.Suggest("I will", 1)
	if got != "send" {
		t.Errorf("tie-break picked %q, want first-seen %q", got, "send")
	}
}

func TestSuggestPrefersHigherCount(t *testing.T) {
	m := Build([]string{
		"we should review this",
		"we should merge this",
		"we should merge now",
	})
	if got := m.Suggest("we should", 1); got != "merge" {
		t.Errorf("Suggest = %q, want the more frequent %q", got, "merge")
	}
}

func TestSuggestEmptyModel(t *testing.T) {
	m := NewModel()
	if got := m.Suggest("let's talk", 10); got != "" {
		t.Errorf("empty model suggested %q, want empty string", got)
	}
}

func TestSuggestInsufficientInput(t *testing.T) {
	m := Build([]string{"I will review the document today"})

	testCases := []struct {
		input       string
		description string
	}{
		{"", "empty input"},
		{"hello", "single token"},
		{"?!?", "normalizes to nothing"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := m.Suggest(tc.input, 10); got != "" {
				t.Errorf("Suggest(%q) = %q, want empty string", tc.input, got)
			}
		})
	}
}

func TestSuggestRespectsMaxWords(t *testing.T) {
	// A looping corpus would walk forever without the bound.
	m := Build([]string{"ping pong ping pong ping pong ping"})

	for _, maxWords := range []int{1, 2, 5, 10} {
		got := m.Suggest("ping pong", maxWords)
		if got == "" {
			t.Fatalf("expected a suggestion for maxWords=%d", maxWords)
		}
		if n := len(strings.Fields(got)); n > maxWords {
			t.Errorf("maxWords=%d produced %d words: %q", maxWords, n, got)
		}
	}
}

func TestSuggestDefaultMaxWords(t *testing.T) {
	m := Build([]string{"ping pong ping pong ping pong ping"})
	got := m.Suggest("ping pong", 0)
	if n := len(strings.Fields(got)); n != DefaultMaxWords {
		t.Errorf("maxWords=0 should fall back to %d words, got %d (%q)", DefaultMaxWords, n, got)
	}
}

func TestSuggestDeterministic(t *testing.T) {
	corpus := []string{
		"can we move the standup to tomorrow",
		"can we move the deadline please",
		"the standup to tomorrow works for me",
	}
	input := "can we"

	first := Build(corpus).Suggest(input, 10)
	for i := 0; i < 20; i++ {
		if got := Build(corpus).Suggest(input, 10); got != first {
			t.Fatalf("rebuild changed suggestion: %q vs %q", got, first)
		}
	}
}

func TestSuggestNoLeadingOrTrailingSpace(t *testing.T) {
	m := Build([]string{"I will review the document today"})
	got := m.Suggest("I will", 10)
	if got != strings.TrimSpace(got) {
		t.Errorf("suggestion has surrounding whitespace: %q", got)
	}
}

func TestSuggestDoesNotMutateModel(t *testing.T) {
	m := Build([]string{"I will review the document today"})
	before := m.Contexts()
	m.Suggest("something entirely unrelated here", 10)
	m.Suggest("I will", 10)
	if m.Contexts() != before {
		t.Errorf("Suggest changed context count: %d -> %d", before, m.Contexts())
	}
}
