package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/skyrunner/internal/logging"
)

// ServerOptions configures a board server.
type ServerOptions struct {
	Addr      string
	Signer    *Signer
	AdminHash string // bcrypt hash for POST /login; empty disables login
	Limit     int    // cap on fetch_top; 0 means DefaultLimit
	// IdleTimeout closes a socket that sends nothing and answers no ping
	// for this long. 0 means DefaultIdleTimeout.
	IdleTimeout time.Duration
	Logger      *log.Logger
}

const (
	DefaultIdleTimeout = 60 * time.Second

	maxMessageSize = 4096
	writeWait      = 5 * time.Second
)

// Server exposes a Leaderboard over websocket at /ws.
//
// Fetches are open. Submits need a valid token and resets need an admin
// token, presented as "Authorization: Bearer <token>" on the handshake.
type Server struct {
	board    Leaderboard
	opts     ServerOptions
	logger   *log.Logger
	upgrader websocket.Upgrader
	srv      *http.Server
}

// NewServer returns a server backed by board.
func NewServer(board Leaderboard, opts ServerOptions) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	s := &Server{
		board:  board,
		opts:   opts,
		logger: logging.OrDiscard(opts.Logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  2048,
			WriteBufferSize: 2048,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	s.srv = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("leaderboard listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("stopping leaderboard server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type session struct {
	subject string
	player  bool
	admin   bool
}

func (s *Server) authenticate(r *http.Request) (session, error) {
	tok := bearer(r)
	if tok == "" {
		return session{}, nil
	}
	if s.opts.Signer == nil {
		return session{}, ErrUnauthorized
	}
	claims, err := s.opts.Signer.Verify(tok)
	if err != nil {
		return session{}, err
	}
	return session{subject: claims.Subject, player: true, admin: claims.Admin}, nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, err := s.authenticate(r)
	if err != nil {
		s.logger.Warn("rejected connection", "remote", r.RemoteAddr, "error", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Debug("client connected", "remote", r.RemoteAddr, "subject", sess.subject)

	idle := s.opts.IdleTimeout
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(idle))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(idle))
	})

	done := make(chan struct{})
	defer close(done)
	go s.keepalive(conn, idle/2, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("read ended", "remote", r.RemoteAddr, "error", err)
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(idle))

		var m Msg
		if err := json.Unmarshal(data, &m); err != nil {
			s.reply(conn, MsgError, ErrorResp{Code: CodeInvalid, Message: "malformed message"})
			continue
		}

		typ, payload := s.dispatch(r.Context(), sess, m)
		if err := s.reply(conn, typ, payload); err != nil {
			s.logger.Debug("write failed", "remote", r.RemoteAddr, "error", err)
			return
		}
	}
}

// keepalive pings conn until done. WriteControl may run alongside the
// read loop's writes.
func (s *Server) keepalive(conn *websocket.Conn, period time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (s *Server) dispatch(ctx context.Context, sess session, m Msg) (string, any) {
	switch m.Type {
	case MsgFetchTop:
		var req FetchTopReq
		if len(m.Data) > 0 {
			if err := json.Unmarshal(m.Data, &req); err != nil {
				return MsgError, ErrorResp{Code: CodeInvalid, Message: "malformed fetch_top"}
			}
		}
		if req.Limit <= 0 || req.Limit > s.opts.Limit {
			req.Limit = s.opts.Limit
		}
		entries, err := s.board.FetchTop(ctx, req.Limit)
		if err != nil {
			return s.failure(err)
		}
		if entries == nil {
			entries = []Entry{}
		}
		return MsgTop, entries

	case MsgSubmit:
		if !sess.player {
			return MsgError, ErrorResp{Code: CodeUnauthorized, Message: "token required"}
		}
		var req SubmitReq
		if err := json.Unmarshal(m.Data, &req); err != nil {
			return MsgError, ErrorResp{Code: CodeInvalid, Message: "malformed submit"}
		}
		if err := s.board.Submit(ctx, req.Name, req.Score); err != nil {
			return s.failure(err)
		}
		s.logger.Info("score recorded", "name", req.Name, "score", req.Score, "subject", sess.subject)
		return MsgOK, nil

	case MsgDeleteAll:
		if !sess.admin {
			return MsgError, ErrorResp{Code: CodeUnauthorized, Message: "admin token required"}
		}
		if err := s.board.DeleteAll(ctx); err != nil {
			return s.failure(err)
		}
		s.logger.Warn("board reset", "subject", sess.subject)
		return MsgOK, nil

	default:
		return MsgError, ErrorResp{Code: CodeInvalid, Message: "unknown type " + m.Type}
	}
}

func (s *Server) failure(err error) (string, any) {
	if errors.Is(err, ErrInvalidEntry) {
		return MsgError, ErrorResp{Code: CodeInvalid, Message: err.Error()}
	}
	s.logger.Error("board operation failed", "error", err)
	return MsgError, ErrorResp{Code: CodeInternal, Message: "internal error"}
}

func (s *Server) reply(conn *websocket.Conn, typ string, v any) error {
	payload, err := encode(typ, v)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// LoginReq is the body of POST /login.
type LoginReq struct {
	Password string `json:"password"`
}

// LoginResp carries an admin token.
type LoginResp struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.opts.Signer == nil || s.opts.AdminHash == "" {
		http.Error(w, "login disabled", http.StatusNotFound)
		return
	}

	var req LoginReq
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if !CheckPassword(s.opts.AdminHash, req.Password) {
		s.logger.Warn("admin login failed", "remote", r.RemoteAddr)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	tok, err := s.opts.Signer.Issue("admin", true)
	if err != nil {
		http.Error(w, "token failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResp{Token: tok})
}

func bearer(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
