package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestServer(t *testing.T, board Leaderboard, adminHash string) (*httptest.Server, *Signer) {
	t.Helper()
	signer, err := NewSigner(testKey, time.Hour)
	if err != nil {
		t.Fatalf("NewSigner() failed: %v", err)
	}
	srv := NewServer(board, ServerOptions{Signer: signer, AdminHash: adminHash})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, signer
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func ctxT(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestDisabled(t *testing.T) {
	var b Leaderboard = Disabled{}
	ctx := context.Background()

	if err := b.Submit(ctx, "ada", 10); err != nil {
		t.Errorf("Submit() = %v", err)
	}
	entries, err := b.FetchTop(ctx, 5)
	if err != nil || len(entries) != 0 {
		t.Errorf("FetchTop() = %v, %v", entries, err)
	}
	if err := b.DeleteAll(ctx); err != nil {
		t.Errorf("DeleteAll() = %v", err)
	}
}

func TestMemoryOrdering(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for _, e := range []Entry{{"a", 5}, {"b", 9}, {"c", 5}, {"d", 1}, {"e", 7}, {"f", 3}} {
		if err := m.Submit(ctx, e.Name, e.Score); err != nil {
			t.Fatalf("Submit(%v) failed: %v", e, err)
		}
	}

	top, _ := m.FetchTop(ctx, 5)
	want := []Entry{{"b", 9}, {"e", 7}, {"a", 5}, {"c", 5}, {"f", 3}}
	if len(top) != len(want) {
		t.Fatalf("FetchTop() = %v, want %v", top, want)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("top[%d] = %v, want %v", i, top[i], want[i])
		}
	}

	m.DeleteAll(ctx)
	if top, _ := m.FetchTop(ctx, 5); len(top) != 0 {
		t.Errorf("expected empty board, got %v", top)
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name  string
		score int
		ok    bool
	}{
		{"ada", 0, true},
		{"  ada  ", 3, true},
		{"", 1, false},
		{"   ", 1, false},
		{"fifteen-chars!!", 1, true},
		{"sixteen-chars!!!", 1, false},
		{"ada", -1, false},
	}
	for _, tt := range tests {
		err := ValidateEntry(tt.name, tt.score)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateEntry(%q, %d) = %v, want ok=%v", tt.name, tt.score, err, tt.ok)
		}
		if err != nil && !errors.Is(err, ErrInvalidEntry) {
			t.Errorf("ValidateEntry(%q) error does not wrap ErrInvalidEntry: %v", tt.name, err)
		}
	}
}

func TestSignerRoundTrip(t *testing.T) {
	s, err := NewSigner(testKey, time.Minute)
	if err != nil {
		t.Fatalf("NewSigner() failed: %v", err)
	}

	tok, err := s.Issue("ada", true)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}
	claims, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if claims.Subject != "ada" || !claims.Admin {
		t.Errorf("claims = %+v", claims)
	}

	other, _ := NewSigner([]byte("another-key-of-sufficient-len"), time.Minute)
	if _, err := other.Verify(tok); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("foreign key Verify() = %v, want ErrUnauthorized", err)
	}
	if _, err := s.Verify(""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("empty token Verify() = %v, want ErrUnauthorized", err)
	}
}

func TestSignerExpiry(t *testing.T) {
	s, _ := NewSigner(testKey, time.Minute)
	base := time.Now()
	s.now = func() time.Time { return base }
	tok, _ := s.Issue("ada", false)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := s.Verify(tok); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expired Verify() = %v, want ErrUnauthorized", err)
	}
}

func TestNewSignerShortKey(t *testing.T) {
	if _, err := NewSigner([]byte("short"), 0); err == nil {
		t.Error("expected error for short key")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("CheckPassword() rejected the right password")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("CheckPassword() accepted a wrong password")
	}
	if CheckPassword("", "hunter22") {
		t.Error("CheckPassword() accepted an empty hash")
	}
	if _, err := HashPassword("abc"); err == nil {
		t.Error("expected error for short password")
	}
}

func TestClientServerRoundTrip(t *testing.T) {
	board := NewMemory()
	ts, signer := newTestServer(t, board, "")
	tok, _ := signer.Issue("ada", false)
	c := NewClient(wsURL(ts), tok)
	ctx := ctxT(t)

	if err := c.Submit(ctx, "ada", 42); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if err := c.Submit(ctx, "bob", 99); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	top, err := c.FetchTop(ctx, 5)
	if err != nil {
		t.Fatalf("FetchTop() failed: %v", err)
	}
	if len(top) != 2 || top[0] != (Entry{"bob", 99}) || top[1] != (Entry{"ada", 42}) {
		t.Errorf("FetchTop() = %v", top)
	}
}

func TestClientHTTPURLIsRewritten(t *testing.T) {
	ts, _ := newTestServer(t, NewMemory(), "")
	c := NewClient(ts.URL+"/ws", "")
	if !strings.HasPrefix(c.url, "ws://") {
		t.Fatalf("url = %q, want ws:// scheme", c.url)
	}
	if _, err := c.FetchTop(ctxT(t), 5); err != nil {
		t.Errorf("FetchTop() failed: %v", err)
	}
}

func TestAnonymousFetchOnly(t *testing.T) {
	board := NewMemory()
	board.Submit(context.Background(), "ada", 10)
	ts, _ := newTestServer(t, board, "")
	c := NewClient(wsURL(ts), "")
	ctx := ctxT(t)

	top, err := c.FetchTop(ctx, 5)
	if err != nil || len(top) != 1 {
		t.Errorf("anonymous FetchTop() = %v, %v", top, err)
	}
	if err := c.Submit(ctx, "eve", 1000); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("anonymous Submit() = %v, want ErrUnauthorized", err)
	}
}

func TestBadTokenRejectedAtHandshake(t *testing.T) {
	ts, _ := newTestServer(t, NewMemory(), "")
	c := NewClient(wsURL(ts), "not-a-token")

	if _, err := c.FetchTop(ctxT(t), 5); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("FetchTop() with bad token = %v, want ErrUnauthorized", err)
	}
}

func TestDeleteAllNeedsAdmin(t *testing.T) {
	board := NewMemory()
	board.Submit(context.Background(), "ada", 10)
	ts, signer := newTestServer(t, board, "")
	ctx := ctxT(t)

	playerTok, _ := signer.Issue("ada", false)
	if err := NewClient(wsURL(ts), playerTok).DeleteAll(ctx); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("player DeleteAll() = %v, want ErrUnauthorized", err)
	}
	if top, _ := board.FetchTop(ctx, 5); len(top) != 1 {
		t.Fatalf("board changed after rejected reset: %v", top)
	}

	adminTok, _ := signer.Issue("root", true)
	if err := NewClient(wsURL(ts), adminTok).DeleteAll(ctx); err != nil {
		t.Fatalf("admin DeleteAll() failed: %v", err)
	}
	if top, _ := board.FetchTop(ctx, 5); len(top) != 0 {
		t.Errorf("board not cleared: %v", top)
	}
}

func TestInvalidSubmitReported(t *testing.T) {
	ts, signer := newTestServer(t, NewMemory(), "")
	tok, _ := signer.Issue("ada", false)
	c := NewClient(wsURL(ts), tok)

	err := c.Submit(ctxT(t), "this-name-is-way-too-long", 1)
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("Submit() = %v, want ErrInvalidEntry", err)
	}
}

func TestServerCapsFetchLimit(t *testing.T) {
	board := NewMemory()
	for i := 0; i < 10; i++ {
		board.Submit(context.Background(), "p", i)
	}
	ts, _ := newTestServer(t, board, "")

	top, err := NewClient(wsURL(ts), "").FetchTop(ctxT(t), 100)
	if err != nil {
		t.Fatalf("FetchTop() failed: %v", err)
	}
	if len(top) != DefaultLimit {
		t.Errorf("len(top) = %d, want %d", len(top), DefaultLimit)
	}
}

func TestMalformedRequestsReported(t *testing.T) {
	ts, _ := newTestServer(t, NewMemory(), "")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer conn.Close()

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"type":`},
		{"fetch_top limit not a number", `{"type":"fetch_top","data":{"limit":"x"}}`},
		{"fetch_top data not an object", `{"type":"fetch_top","data":[1,2]}`},
		{"unknown type", `{"type":"shrug"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.raw)); err != nil {
				t.Fatalf("WriteMessage() failed: %v", err)
			}
			conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			_, data, err := conn.ReadMessage()
			if err != nil {
				t.Fatalf("ReadMessage() failed: %v", err)
			}
			var m Msg
			if err := json.Unmarshal(data, &m); err != nil {
				t.Fatalf("reply is not a message: %v", err)
			}
			if m.Type != MsgError {
				t.Fatalf("reply type = %q, want %q", m.Type, MsgError)
			}
			var e ErrorResp
			if err := json.Unmarshal(m.Data, &e); err != nil {
				t.Fatalf("bad error payload: %v", err)
			}
			if e.Code != CodeInvalid {
				t.Errorf("code = %q, want %q", e.Code, CodeInvalid)
			}
		})
	}
}

func newIdleServer(t *testing.T, idle time.Duration) *httptest.Server {
	t.Helper()
	srv := NewServer(NewMemory(), ServerOptions{IdleTimeout: idle})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestIdleSocketClosed(t *testing.T) {
	ts := newIdleServer(t, 200*time.Millisecond)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer conn.Close()
	// A dead peer never answers pings.
	conn.SetPingHandler(func(string) error { return nil })

	start := time.Now()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err = conn.ReadMessage()
	if err == nil {
		t.Fatal("ReadMessage() succeeded, want the server to drop the socket")
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		t.Fatalf("server kept the idle socket open: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("socket closed after %v, want about 200ms", elapsed)
	}
}

func TestPongKeepsSocketOpen(t *testing.T) {
	ts := newIdleServer(t, 200*time.Millisecond)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer conn.Close()

	// The default ping handler answers with a pong while we read.
	conn.SetReadDeadline(time.Now().Add(700 * time.Millisecond))
	_, _, err = conn.ReadMessage()
	var ne net.Error
	if !errors.As(err, &ne) || !ne.Timeout() {
		t.Errorf("ReadMessage() = %v, want our own read timeout", err)
	}
}

func TestUnreachableServer(t *testing.T) {
	c := NewClient("ws://127.0.0.1:1/ws", "")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := c.FetchTop(ctx, 5); err == nil {
		t.Error("expected error from unreachable server")
	}
}

func TestLogin(t *testing.T) {
	hash, _ := HashPassword("letmein")
	board := NewMemory()
	board.Submit(context.Background(), "ada", 10)
	ts, _ := newTestServer(t, board, hash)

	post := func(password string) *http.Response {
		body, _ := json.Marshal(LoginReq{Password: password})
		resp, err := http.Post(ts.URL+"/login", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("POST /login failed: %v", err)
		}
		return resp
	}

	resp := post("wrong!")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d", resp.StatusCode)
	}

	resp = post("letmein")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	var lr LoginResp
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	if err := NewClient(wsURL(ts), lr.Token).DeleteAll(ctxT(t)); err != nil {
		t.Errorf("DeleteAll() with login token failed: %v", err)
	}
}

type failingBoard struct{ Disabled }

func (failingBoard) Submit(context.Context, string, int) error {
	return errors.New("disk full")
}

func TestAsyncDeliversResults(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	a := NewAsync(failingBoard{}, time.Second, logger)

	a.Submit("ada", 3)
	select {
	case r := <-a.Results():
		if r.Op != OpSubmit || r.Err == nil || r.Name != "ada" || r.Score != 3 {
			t.Errorf("unexpected result %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
	if !strings.Contains(buf.String(), "score submit failed") {
		t.Errorf("failure not logged: %q", buf.String())
	}

	a.FetchTop(5)
	select {
	case r := <-a.Results():
		if r.Op != OpFetch || r.Err != nil {
			t.Errorf("unexpected fetch result %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no fetch result delivered")
	}
}

// slowBoard holds every submit until release is closed.
type slowBoard struct {
	Disabled
	release chan struct{}
}

func (b slowBoard) Submit(ctx context.Context, _ string, _ int) error {
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestAsyncWaitDrainsPendingCalls(t *testing.T) {
	board := slowBoard{release: make(chan struct{})}
	a := NewAsync(board, 5*time.Second, nil)

	if err := a.Wait(ctxT(t)); err != nil {
		t.Fatalf("Wait() with nothing pending = %v", err)
	}

	a.Submit("ada", 7)
	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := a.Wait(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() on a held submit = %v, expected DeadlineExceeded", err)
	}

	close(board.release)
	if err := a.Wait(ctxT(t)); err != nil {
		t.Fatalf("Wait() after release = %v", err)
	}
	select {
	case r := <-a.Results():
		if r.Op != OpSubmit || r.Err != nil {
			t.Errorf("unexpected result %+v", r)
		}
	default:
		t.Error("result not delivered before Wait returned")
	}
}

func TestAsyncNilBoard(t *testing.T) {
	a := NewAsync(nil, 0, nil)
	if _, ok := a.Board().(Disabled); !ok {
		t.Errorf("Board() = %T, want Disabled", a.Board())
	}
}

func TestOpString(t *testing.T) {
	if OpDeleteAll.String() != "delete-all" || Op(99).String() != "unknown" {
		t.Error("Op.String() mismatch")
	}
}
