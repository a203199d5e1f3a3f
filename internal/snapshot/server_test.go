/*
 * Copyright (C) 2023 by Jason Figge
 */

package snapshot

import (
	"context"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"maze3d/internal/grid"
	"maze3d/internal/texture"
)

var boxed = grid.MustParse(
	"#####",
	"#p  #",
	"#  g#",
	"#####",
)

func newServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(boxed, texture.Generate(16), 64, 320, 200, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newServer(t).Routes(), "/health")
	if rec.Code != http.StatusOK || rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("Unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestMaze(t *testing.T) {
	rec := get(t, newServer(t).Routes(), "/maze")
	want := "#####\n#p  #\n#  g#\n#####\n"
	if rec.Body.String() != want {
		t.Errorf("Expected %q, got %q", want, rec.Body.String())
	}
}

func TestFrame(t *testing.T) {
	h := newServer(t).Routes()
	for _, target := range []string{
		"/frame.png",
		"/frame.png?x=96&y=96&angle=0",
		"/frame.png?minimap=0&fov=1.2",
		"/frame.png?mode=overhead",
	} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, h, target)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("Expected image/png, got %q", ct)
			}
			img, err := png.Decode(rec.Body)
			if err != nil {
				t.Fatalf("Failed to decode frame: %v", err)
			}
			if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 200 {
				t.Errorf("Unexpected frame size %v", img.Bounds())
			}
		})
	}
}

func TestFrameMinimapToggle(t *testing.T) {
	h := newServer(t).Routes()
	with, _ := png.Decode(get(t, h, "/frame.png").Body)
	without, _ := png.Decode(get(t, h, "/frame.png?minimap=0").Body)
	r, g, b, _ := with.At(19, 19).RGBA()
	if r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff {
		t.Error("Expected minimap border pixel")
	}
	if without.At(19, 19) == with.At(19, 19) {
		t.Error("Expected no minimap border with minimap=0")
	}
}

func TestFrameRejectsBadCamera(t *testing.T) {
	h := newServer(t).Routes()
	for _, target := range []string{
		"/frame.png?x=abc",
		"/frame.png?angle=NaN",
		"/frame.png?y=Inf",
		"/frame.png?fov=0",
		"/frame.png?fov=4",
	} {
		if rec := get(t, h, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newServer(t).ListenAndServe(ctx, addr) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("Service never came up: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Service did not stop")
	}
}
