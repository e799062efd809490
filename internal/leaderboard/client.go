package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Client talks to a remote board over websocket. Each call opens its own
// connection, sends one request and waits for one reply, so a Client is
// safe for concurrent use.
type Client struct {
	url    string
	token  string
	dialer *websocket.Dialer
}

// NewClient returns a client for the ws:// or wss:// endpoint at url.
// http(s) URLs are rewritten to their websocket scheme.
func NewClient(url, token string) *Client {
	switch {
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	}
	return &Client{
		url:   url,
		token: strings.TrimSpace(token),
		dialer: &websocket.Dialer{
			HandshakeTimeout: 5 * time.Second,
			Proxy:            http.ProxyFromEnvironment,
		},
	}
}

// FetchTop implements Leaderboard.
func (c *Client) FetchTop(ctx context.Context, n int) ([]Entry, error) {
	reply, err := c.roundTrip(ctx, MsgFetchTop, FetchTopReq{Limit: n})
	if err != nil {
		return nil, err
	}
	if reply.Type != MsgTop {
		return nil, fmt.Errorf("leaderboard: unexpected reply %q", reply.Type)
	}
	var entries []Entry
	if err := json.Unmarshal(reply.Data, &entries); err != nil {
		return nil, fmt.Errorf("leaderboard: decode entries: %w", err)
	}
	return entries, nil
}

// Submit implements Leaderboard.
func (c *Client) Submit(ctx context.Context, name string, score int) error {
	return c.expectOK(ctx, MsgSubmit, SubmitReq{Name: name, Score: score})
}

// DeleteAll implements Leaderboard. It needs an admin token.
func (c *Client) DeleteAll(ctx context.Context) error {
	return c.expectOK(ctx, MsgDeleteAll, nil)
}

func (c *Client) expectOK(ctx context.Context, typ string, v any) error {
	reply, err := c.roundTrip(ctx, typ, v)
	if err != nil {
		return err
	}
	if reply.Type != MsgOK {
		return fmt.Errorf("leaderboard: unexpected reply %q", reply.Type)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, typ string, v any) (*Msg, error) {
	hdr := http.Header{}
	if c.token != "" {
		hdr.Set("Authorization", "Bearer "+c.token)
	}

	conn, resp, err := c.dialer.DialContext(ctx, c.url, hdr)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			if resp.StatusCode == http.StatusUnauthorized {
				return nil, ErrUnauthorized
			}
			return nil, fmt.Errorf("%w: %s: %s", ErrUnavailable, resp.Status, strings.TrimSpace(string(body)))
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetWriteDeadline(deadline)
		conn.SetReadDeadline(deadline)
	}

	// Unblock reads when the context is cancelled without a deadline.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	payload, err := encode(typ, v)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: encode %s: %w", typ, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return nil, fmt.Errorf("%w: write: %v", ErrUnavailable, err)
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: read: %v", ErrUnavailable, err)
	}

	var reply Msg
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("leaderboard: decode reply: %w", err)
	}
	if reply.Type == MsgError {
		return nil, replyError(reply.Data)
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return &reply, nil
}

func replyError(data json.RawMessage) error {
	var e ErrorResp
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("leaderboard: malformed error reply")
	}
	switch e.Code {
	case CodeUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, e.Message)
	case CodeInvalid:
		return fmt.Errorf("%w: %s", ErrInvalidEntry, e.Message)
	default:
		return fmt.Errorf("leaderboard: remote error: %s", e.Message)
	}
}

var _ Leaderboard = (*Client)(nil)
