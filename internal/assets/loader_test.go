package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	return buf.Bytes()
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLoadLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	if err := os.WriteFile(path, pngBytes(t, 8, 4), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	l := NewLoader(true, time.Second, nil)
	if l.Ready(path) {
		t.Fatal("image ready before Load")
	}

	img, err := l.Wait(waitCtx(t), path)
	if err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("bounds = %v, want 8x4", b)
	}
	if !l.Ready(path) {
		t.Error("Ready() = false after successful load")
	}
}

func TestLoadHTTP(t *testing.T) {
	data := pngBytes(t, 3, 3)
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer ts.Close()

	l := NewLoader(true, time.Second, nil)
	ref := ts.URL + "/dragon.png"
	if _, err := l.Wait(waitCtx(t), ref); err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}

	l.Load(context.Background(), ref)
	if _, err := l.Wait(waitCtx(t), ref); err != nil {
		t.Fatalf("second Wait() failed: %v", err)
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}

func TestLoadFailuresStayPlaceholder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/garbage" {
			w.Write([]byte("not an image"))
			return
		}
		http.NotFound(w, r)
	}))
	defer ts.Close()

	l := NewLoader(true, time.Second, nil)
	for _, ref := range []string{
		ts.URL + "/missing.png",
		ts.URL + "/garbage",
		filepath.Join(t.TempDir(), "nope.png"),
	} {
		if _, err := l.Wait(waitCtx(t), ref); err == nil {
			t.Errorf("Wait(%q) succeeded, want error", ref)
		}
		if _, ok := l.Image(ref); ok {
			t.Errorf("Image(%q) reported ready after failure", ref)
		}
	}
}

func TestDisabledLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	os.WriteFile(path, pngBytes(t, 2, 2), 0o644)

	l := NewLoader(false, 0, nil)
	l.Load(context.Background(), path)
	if l.Ready(path) {
		t.Error("disabled loader reported an image")
	}
	if _, err := l.Wait(waitCtx(t), path); !errors.Is(err, ErrDisabled) {
		t.Errorf("Wait() = %v, want ErrDisabled", err)
	}
}
