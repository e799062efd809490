package leaderboard

import "encoding/json"

// Message types exchanged over the websocket. Each request gets exactly
// one reply: MsgTop, MsgOK or MsgError.
const (
	MsgFetchTop  = "fetch_top"
	MsgSubmit    = "submit"
	MsgDeleteAll = "delete_all"

	MsgTop   = "top"
	MsgOK    = "ok"
	MsgError = "error"
)

// Error codes carried in MsgError replies.
const (
	CodeUnauthorized = "unauthorized"
	CodeInvalid      = "invalid"
	CodeInternal     = "internal"
)

// Msg is the wire envelope.
type Msg struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// FetchTopReq asks for the top Limit entries.
type FetchTopReq struct {
	Limit int `json:"limit"`
}

// SubmitReq records a score.
type SubmitReq struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ErrorResp describes a failed request.
type ErrorResp struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func encode(typ string, v any) ([]byte, error) {
	m := Msg{Type: typ}
	if v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		m.Data = data
	}
	return json.Marshal(m)
}
