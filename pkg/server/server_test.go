package server

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/draftkit/hintserve/pkg/config"
	"github.com/draftkit/hintserve/pkg/history"
	"github.com/draftkit/hintserve/pkg/suggest"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func newTestServer(t *testing.T, historyJSON string) (*Server, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat_history.json")
	if historyJSON != "" {
		if err := os.WriteFile(path, []byte(historyJSON), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.DefaultConfig()
	suggester := suggest.NewSuggester(history.NewStore(path), cfg.Suggest.MaxWords)

	var out bytes.Buffer
	return newServerIO(suggester, cfg, &bytes.Buffer{}, &out), &out
}

func decode[T any](t *testing.T, out *bytes.Buffer) T {
	t.Helper()
	var v T
	if err := msgpack.NewDecoder(out).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

const reviewCorpus = `[
  {"sender": "maya", "message": "I will review the document today"},
  {"sender": "maya", "message": "I will send the review today"}
]`

func TestHandleSuggest(t *testing.T) {
	srv, out := newTestServer(t, reviewCorpus)

	srv.handleRequest(Request{ID: "r1", Command: "suggest", Input: "I will", Limit: 5})

	resp := decode[SuggestResponse](t, out)
	if resp.ID != "r1" {
		t.Errorf("response ID = %q", resp.ID)
	}
	if resp.Suggestion != "review the document today" {
		t.Errorf("suggestion = %q", resp.Suggestion)
	}
	if resp.Words != 4 {
		t.Errorf("word count = %d, want 4", resp.Words)
	}
}

func TestHandleSuggestEmptyCorpus(t *testing.T) {
	srv, out := newTestServer(t, "")

	srv.handleRequest(Request{ID: "r1", Command: "suggest", Input: "let's talk"})

	resp := decode[SuggestResponse](t, out)
	if resp.Suggestion != "" || resp.Words != 0 {
		t.Errorf("empty corpus must answer with an empty suggestion, got %+v", resp)
	}
}

func TestHandleSuggestValidation(t *testing.T) {
	testCases := []struct {
		request     Request
		wantCode    int
		description string
	}{
		{Request{ID: "e1", Command: "suggest"}, 400, "missing input"},
		{Request{ID: "e2", Command: "suggest", Input: string(make([]byte, 500))}, 400, "oversized input"},
		{Request{ID: "e3", Command: "nope"}, 400, "unknown command"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			srv, out := newTestServer(t, reviewCorpus)
			srv.handleRequest(tc.request)

			resp := decode[ErrorResponse](t, out)
			if resp.Code != tc.wantCode {
				t.Errorf("error code = %d, want %d", resp.Code, tc.wantCode)
			}
			if resp.ID != tc.request.ID {
				t.Errorf("error ID = %q, want %q", resp.ID, tc.request.ID)
			}
		})
	}
}

func TestHandleComplete(t *testing.T) {
	srv, out := newTestServer(t, reviewCorpus)

	srv.handleRequest(Request{ID: "c1", Command: "complete", Input: "rev", Limit: 5})

	resp := decode[CompleteResponse](t, out)
	if resp.Count == 0 {
		t.Fatal("expected completions for 'rev'")
	}
	if resp.Suggestions[0].Word != "review" || resp.Suggestions[0].Rank != 1 {
		t.Errorf("top completion = %+v", resp.Suggestions[0])
	}
	if resp.Suggestions[0].Frequency != 2 {
		t.Errorf("review frequency = %d, want 2", resp.Suggestions[0].Frequency)
	}
}

func TestHandleSaveAndHistory(t *testing.T) {
	srv, out := newTestServer(t, "")

	srv.handleRequest(Request{ID: "s1", Command: "save", Sender: "maya", Text: "ship it tomorrow"})
	saved := decode[StatusResponse](t, out)
	if saved.Status != "saved" {
		t.Fatalf("save status = %+v", saved)
	}

	out.Reset()
	srv.handleRequest(Request{ID: "h1", Command: "history", Limit: 10})
	hist := decode[HistoryResponse](t, out)
	if hist.Count != 1 || hist.Messages[0].Text != "ship it tomorrow" {
		t.Errorf("history = %+v", hist)
	}

	// The next suggestion request must see the saved message.
	out.Reset()
	srv.handleRequest(Request{ID: "s2", Command: "suggest", Input: "ship it", Limit: 5})
	resp := decode[SuggestResponse](t, out)
	if resp.Suggestion != "tomorrow" {
		t.Errorf("suggestion after save = %q, want %q", resp.Suggestion, "tomorrow")
	}
}

func TestHandleSaveValidation(t *testing.T) {
	srv, out := newTestServer(t, "")
	srv.handleRequest(Request{ID: "s1", Command: "save", Sender: "maya"})

	resp := decode[ErrorResponse](t, out)
	if resp.Code != 400 {
		t.Errorf("save without text: code = %d, want 400", resp.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv, out := newTestServer(t, "")
	srv.handleRequest(Request{ID: "h1", Command: "health"})

	resp := decode[StatusResponse](t, out)
	if resp.Status != "ok" || resp.ID != "h1" {
		t.Errorf("health = %+v", resp)
	}
}

func TestStartStreamDecodesRequests(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_history.json")
	if err := os.WriteFile(path, []byte(reviewCorpus), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	suggester := suggest.NewSuggester(history.NewStore(path), cfg.Suggest.MaxWords)

	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	if err := enc.Encode(Request{ID: "r1", Command: "health"}); err != nil {
		t.Fatal(err)
	}
	if err := enc.Encode(Request{ID: "r2", Command: "suggest", Input: "I will", Limit: 5}); err != nil {
		t.Fatal(err)
	}

	srv := newServerIO(suggester, cfg, &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start returned %v, want nil on EOF", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready, health StatusResponse
	if err := dec.Decode(&ready); err != nil || ready.Status != "ready" {
		t.Fatalf("ready signal = %+v, err %v", ready, err)
	}
	if err := dec.Decode(&health); err != nil || health.Status != "ok" {
		t.Fatalf("health = %+v, err %v", health, err)
	}
	var suggestResp SuggestResponse
	if err := dec.Decode(&suggestResp); err != nil {
		t.Fatal(err)
	}
	if suggestResp.Suggestion != "review the document today" {
		t.Errorf("streamed suggestion = %q", suggestResp.Suggestion)
	}
}
