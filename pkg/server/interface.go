/*
Package server implements msgpack IPC for chat suggestion services.

The server reads msgpack-encoded requests from stdin and writes one
msgpack response per request to stdout. Logging goes to stderr so the
response stream stays clean. Requests are processed synchronously and
responses carry elapsed time in milliseconds.

# IPC

Each request has an ID, a command, and command-specific fields. Shown
here as JSON for readability, sent as msgpack on the wire:

	{"id": "req_001", "cmd": "suggest", "q": "I will", "l": 5}

The server answers with the continuation the history model predicts:

	{"id": "req_001", "s": "review the document today", "c": 4, "t": 2}

Word completion looks up the partial word being typed:

	{"id": "req_002", "cmd": "complete", "q": "rev", "l": 8}
	{"id": "req_002", "s": [{"w": "review", "r": 1, "f": 3}], "c": 1, "t": 1}

History management appends to and reads from the chat history file:

	{"id": "req_003", "cmd": "save", "sender": "maya", "text": "ship it"}
	{"id": "req_004", "cmd": "history", "l": 10}

Malformed or oversized requests produce an error response with an
HTTP-style code; the engines themselves cannot fail, so a valid request
always gets a normal (possibly empty) response.
*/
package server

// Request is any incoming IPC request. Command selects the operation;
// unused fields stay empty on the wire.
type Request struct {
	ID      string `msgpack:"id"`
	Command string `msgpack:"cmd"`
	Input   string `msgpack:"q,omitempty"`      // draft text or word prefix
	Limit   int    `msgpack:"l,omitempty"`      // max words / completions / messages
	Sender  string `msgpack:"sender,omitempty"` // for "save"
	Text    string `msgpack:"text,omitempty"`   // for "save"
}

// SuggestResponse answers a "suggest" command.
type SuggestResponse struct {
	ID         string `msgpack:"id"`
	Suggestion string `msgpack:"s"`
	Words      int    `msgpack:"c"`
	TimeTaken  int64  `msgpack:"t"`
}

// CompletionItem is one ranked word completion.
type CompletionItem struct {
	Word      string `msgpack:"w"`
	Rank      uint16 `msgpack:"r"`
	Frequency int    `msgpack:"f,omitempty"`
}

// CompleteResponse answers a "complete" command.
type CompleteResponse struct {
	ID          string           `msgpack:"id"`
	Suggestions []CompletionItem `msgpack:"s"`
	Count       int              `msgpack:"c"`
	TimeTaken   int64            `msgpack:"t"`
}

// HistoryMessage mirrors one stored chat record.
type HistoryMessage struct {
	Sender    string `msgpack:"sender"`
	Text      string `msgpack:"text"`
	Timestamp string `msgpack:"ts,omitempty"`
}

// HistoryResponse answers a "history" command.
type HistoryResponse struct {
	ID       string           `msgpack:"id"`
	Messages []HistoryMessage `msgpack:"m"`
	Count    int              `msgpack:"c"`
}

// StatusResponse answers "save" and "health" commands.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"error,omitempty"`
}

// ErrorResponse holds basic error information for rejected requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
