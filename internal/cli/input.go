// Package cli handles interactive draft input for testing and debugging
// the suggestion engines without the IPC layer.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/draftkit/hintserve/pkg/ngram"
	"github.com/draftkit/hintserve/pkg/suggest"
)

// InputHandler reads draft lines from stdin and prints the predicted
// continuation plus the top word completions for the last token.
type InputHandler struct {
	suggester *suggest.Suggester
	maxWords  int
	completeN int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(suggester *suggest.Suggester, maxWords, completeN int) *InputHandler {
	return &InputHandler{
		suggester: suggester,
		maxWords:  maxWords,
		completeN: completeN,
	}
}

// Start begins the interface loop. It continuously prompts for input,
// reads a line from stdin, and passes the trimmed draft to handleInput.
// The loop ends on stdin EOF or a read error.
func (h *InputHandler) Start() error {
	log.Print("hintserve CLI")
	log.Print("type a draft and press Enter to see suggestions (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		log.Print("> ")
		draft, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		draft = strings.TrimSpace(draft)
		if draft == "" {
			continue
		}
		h.handleInput(draft)
	}
}

// lastWord returns the final normalized token of a draft, so trailing
// punctuation or stray case never hides a word the trie knows.
func lastWord(draft string) string {
	tokens := ngram.Normalize(draft)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// handleInput runs both engines for a single draft and logs results.
func (h *InputHandler) handleInput(draft string) {
	start := time.Now()
	continuation := h.suggester.SuggestN(draft, h.maxWords)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for draft '%s'", elapsed, draft)

	if continuation == "" {
		log.Warnf("No continuation found for: '%s'", draft)
	} else {
		log.Printf("%s \033[38;5;75m%s\033[0m", draft, continuation)
	}

	word := lastWord(draft)
	if word == "" {
		return
	}

	completions := h.suggester.CompleteWord(word, h.completeN)
	if len(completions) == 0 {
		return
	}
	log.Printf("word completions for '%s':", word)
	for i, c := range completions {
		log.Printf("%2d. %-24s (seen %d times)", i+1, fmt.Sprintf("\033[38;5;75m%s\033[0m", c.Word), c.Frequency)
	}
}
