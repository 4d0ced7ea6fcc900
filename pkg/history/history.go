/*
Package history reads and appends the chat history file that feeds the
suggestion engine.

The file is a JSON array of message records. A missing or unparseable
file is treated as an empty history: the engine is contractually unable
to fail a caller over corpus problems, so load errors degrade to "no
messages" and are only logged.
*/
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Message is one chat history record. Only Text feeds the model; the
// other fields exist because the surrounding app reads and writes the
// same file.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Store is a handle to one history file. It holds no parsed state:
// every Load re-reads the file so callers always see its current
// contents.
type Store struct {
	path string
}

// NewStore returns a store for the given history file. The file does
// not have to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every record from the history file. A missing file or
// malformed JSON yields an empty slice, never an error.
func (s *Store) Load() []Message {
	data, err := os.ReadFile(s.path)
	if err != nil {
		log.Debugf("No chat history at %s: %v", s.path, err)
		return nil
	}

	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		log.Warnf("Chat history at %s is not valid JSON, treating as empty: %v", s.path, err)
		return nil
	}
	return messages
}

// Texts returns just the message bodies, in file order. This is the
// corpus the model trains on.
func (s *Store) Texts() []string {
	messages := s.Load()
	texts := make([]string, len(messages))
	for i, m := range messages {
		texts[i] = m.Text
	}
	return texts
}

// Recent returns the last limit messages, oldest first. limit <= 0
// returns everything.
func (s *Store) Recent(limit int) []Message {
	messages := s.Load()
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages
}

// Append adds a message with the current timestamp and rewrites the
// file. Unlike Load, write failures are real errors: the caller asked
// for a durable change and must know if it didn't happen.
func (s *Store) Append(sender, text string) error {
	return s.append(Message{
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// loadForAppend reads existing records ahead of a rewrite. Unlike
// Load, a file that exists but does not parse is an error here:
// rewriting it would destroy history that may still be recoverable by
// hand. Only a genuinely missing file starts a fresh history.
func (s *Store) loadForAppend() ([]Message, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		log.Errorf("Refusing to rewrite unparseable chat history at %s: %v", s.path, err)
		return nil, fmt.Errorf("chat history at %s is not valid JSON: %w", s.path, err)
	}
	return messages, nil
}

func (s *Store) append(msg Message) error {
	messages, err := s.loadForAppend()
	if err != nil {
		return err
	}
	messages = append(messages, msg)

	// Two-space indent keeps the file diffable alongside hand-edited
	// fixtures and what the rest of the app writes.
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		log.Errorf("Failed to write chat history to %s: %v", s.path, err)
		return err
	}
	return nil
}
