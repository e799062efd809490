// Package assets loads background and sprite images in the background.
// Callers never wait: until an image is ready, Image reports false and the
// renderer draws its procedural placeholder.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/webp"

	"github.com/vovakirdan/skyrunner/internal/logging"
)

// maxImageBytes caps downloads so a bad URL cannot exhaust memory.
const maxImageBytes = 16 << 20

// ErrDisabled is returned by Wait when loading is turned off.
var ErrDisabled = errors.New("assets: loading disabled")

type state int

const (
	statePending state = iota
	stateReady
	stateFailed
)

type entry struct {
	state state
	img   image.Image
	err   error
	done  chan struct{}
}

// Loader fetches images from local paths or http(s) URLs, once per reference.
type Loader struct {
	enabled bool
	client  *http.Client
	logger  *log.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

// NewLoader creates a loader. A disabled loader never reports an image as
// ready, which keeps every renderer on its placeholder.
func NewLoader(enabled bool, timeout time.Duration, logger *log.Logger) *Loader {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Loader{
		enabled: enabled,
		client:  &http.Client{Timeout: timeout},
		logger:  logging.OrDiscard(logger),
		entries: make(map[string]*entry),
	}
}

// Load starts fetching ref unless it is already known. It returns at once.
func (l *Loader) Load(ctx context.Context, ref string) {
	if !l.enabled || ref == "" {
		return
	}
	l.mu.Lock()
	if _, ok := l.entries[ref]; ok {
		l.mu.Unlock()
		return
	}
	e := &entry{done: make(chan struct{})}
	l.entries[ref] = e
	l.mu.Unlock()

	go func() {
		img, err := l.fetch(ctx, ref)

		l.mu.Lock()
		if err != nil {
			e.state, e.err = stateFailed, err
		} else {
			e.state, e.img = stateReady, img
		}
		l.mu.Unlock()
		close(e.done)

		if err != nil {
			l.logger.Warn("image unavailable, using placeholder", "ref", ref, "error", err)
			return
		}
		b := img.Bounds()
		l.logger.Debug("image loaded", "ref", ref, "width", b.Dx(), "height", b.Dy())
	}()
}

// Image returns the decoded image for ref once it is ready.
func (l *Loader) Image(ref string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[ref]
	if !ok || e.state != stateReady {
		return nil, false
	}
	return e.img, true
}

// Ready reports whether ref finished loading successfully.
func (l *Loader) Ready(ref string) bool {
	_, ok := l.Image(ref)
	return ok
}

// Wait blocks until ref has finished loading or ctx ends. It is meant for
// tools and tests; frames use Image.
func (l *Loader) Wait(ctx context.Context, ref string) (image.Image, error) {
	if !l.enabled {
		return nil, ErrDisabled
	}
	l.Load(ctx, ref)

	l.mu.Lock()
	e := l.entries[ref]
	l.mu.Unlock()
	if e == nil {
		return nil, fmt.Errorf("assets: empty reference")
	}

	select {
	case <-e.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return e.img, e.err
}

func (l *Loader) fetch(ctx context.Context, ref string) (image.Image, error) {
	var r io.ReadCloser
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return nil, fmt.Errorf("assets: bad url: %w", err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("assets: fetch: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("assets: fetch: %s", resp.Status)
		}
		r = resp.Body
	} else {
		f, err := os.Open(strings.TrimPrefix(ref, "file://"))
		if err != nil {
			return nil, fmt.Errorf("assets: open: %w", err)
		}
		r = f
	}
	defer r.Close()

	img, format, err := image.Decode(io.LimitReader(r, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("assets: decode: %w", err)
	}
	l.logger.Debug("decoded image", "ref", ref, "format", format)
	return img, nil
}
