package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/draftkit/hintserve/internal/logger"
	"github.com/draftkit/hintserve/pkg/config"
	"github.com/draftkit/hintserve/pkg/suggest"
)

// Server handles the IPC for chat suggestions.
type Server struct {
	suggester *suggest.Suggester
	cfg       *config.Config
	dec       *msgpack.Decoder
	enc       *msgpack.Encoder
	log       *log.Logger
}

// NewServer creates a suggestion server using stdin/stdout for IPC.
func NewServer(suggester *suggest.Suggester, cfg *config.Config) *Server {
	return newServerIO(suggester, cfg, os.Stdin, os.Stdout)
}

func newServerIO(suggester *suggest.Suggester, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		suggester: suggester,
		cfg:       cfg,
		dec:       msgpack.NewDecoder(r),
		enc:       msgpack.NewEncoder(w),
		log:       logger.New("ipc"),
	}
}

// Start begins listening for IPC requests. It returns nil when the
// client closes its end of the pipe.
func (s *Server) Start() error {
	s.log.Debug("Starting server")

	// Signal that the server is ready
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request.
func (s *Server) handleRequest(request Request) {
	switch request.Command {
	case "suggest":
		s.handleSuggest(request)
	case "complete":
		s.handleComplete(request)
	case "save":
		s.handleSave(request)
	case "history":
		s.handleHistory(request)
	case "health":
		s.sendResponse(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown command: %s", request.Command), 400)
	}
}

func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.log.Debugf("Rejecting request %s: %s", id, message)
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}

// validInput checks shared request shape rules for text inputs.
func (s *Server) validInput(request Request) bool {
	if request.Input == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		return false
	}
	if max := s.cfg.Server.MaxInputLen; max > 0 && len(request.Input) > max {
		s.sendError(request.ID, fmt.Sprintf("Input exceeds maximum length of %d characters", max), 400)
		return false
	}
	return true
}

// handleSuggest runs the n-gram continuation for a draft message. The
// engine degrades to an empty suggestion instead of failing, so the
// response is an error only when the request itself is malformed.
func (s *Server) handleSuggest(request Request) {
	if !s.validInput(request) {
		return
	}

	maxWords := request.Limit
	if maxWords <= 0 {
		maxWords = s.cfg.Suggest.MaxWords
	}

	start := time.Now()
	suggestion := s.suggester.SuggestN(request.Input, maxWords)
	elapsed := time.Since(start)

	words := 0
	if suggestion != "" {
		words = len(strings.Fields(suggestion))
	}
	s.sendResponse(SuggestResponse{
		ID:         request.ID,
		Suggestion: suggestion,
		Words:      words,
		TimeTaken:  elapsed.Milliseconds(),
	})
}

// handleComplete finishes the word being typed from corpus vocabulary.
func (s *Server) handleComplete(request Request) {
	if !s.validInput(request) {
		return
	}

	limit := request.Limit
	if limit <= 0 || (s.cfg.Server.MaxLimit > 0 && limit > s.cfg.Server.MaxLimit) {
		limit = s.cfg.Server.MaxLimit
	}

	start := time.Now()
	completions := s.suggester.CompleteWord(request.Input, limit)
	elapsed := time.Since(start)

	items := make([]CompletionItem, len(completions))
	for i, c := range completions {
		items[i] = CompletionItem{
			Word:      c.Word,
			Rank:      uint16(i + 1),
			Frequency: c.Frequency,
		}
	}
	s.sendResponse(CompleteResponse{
		ID:          request.ID,
		Suggestions: items,
		Count:       len(items),
		TimeTaken:   elapsed.Milliseconds(),
	})
}

// handleSave appends one message to the chat history file.
func (s *Server) handleSave(request Request) {
	if request.Text == "" {
		s.sendError(request.ID, "Missing 'text' parameter", 400)
		return
	}
	sender := request.Sender
	if sender == "" {
		sender = "user"
	}

	if err := s.suggester.Store().Append(sender, request.Text); err != nil {
		s.sendResponse(StatusResponse{ID: request.ID, Status: "error", Error: err.Error()})
		return
	}
	s.sendResponse(StatusResponse{ID: request.ID, Status: "saved"})
}

// handleHistory returns the most recent stored messages.
func (s *Server) handleHistory(request Request) {
	messages := s.suggester.Store().Recent(request.Limit)

	out := make([]HistoryMessage, len(messages))
	for i, m := range messages {
		out[i] = HistoryMessage{Sender: m.Sender, Text: m.Text, Timestamp: m.Timestamp}
	}
	s.sendResponse(HistoryResponse{ID: request.ID, Messages: out, Count: len(out)})
}
