/*
 * Copyright (C) 2023 by Jason Figge
 */

// Package snapshot serves rendered frames over HTTP. Every request renders a
// fresh surface, so the service never shares mutable state with a live game.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"maze3d/internal/camera"
	"maze3d/internal/grid"
	"maze3d/internal/minimap"
	"maze3d/internal/projector"
	"maze3d/internal/surface"
	"maze3d/internal/texture"
)

const (
	readTimeout     = 5 * time.Second
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	overheadRays    = 60
)

type Server struct {
	grid      *grid.Grid
	blockSize int
	width     int
	height    int
	spawn     camera.Player
	projector *projector.Projector
	overhead  *projector.Overhead
	minimap   *minimap.Minimap
}

func New(g *grid.Grid, textures *texture.Store, blockSize, width, height, columnStep int) (*Server, error) {
	spawn, ok := camera.Spawn(g, blockSize)
	if !ok {
		return nil, grid.ErrNoStart
	}
	p := projector.New(g, textures, blockSize)
	p.ColumnStep = columnStep
	return &Server{
		grid:      g,
		blockSize: blockSize,
		width:     width,
		height:    height,
		spawn:     spawn,
		projector: p,
		overhead:  &projector.Overhead{Grid: g, BlockSize: blockSize, Rays: overheadRays},
		minimap:   minimap.New(blockSize),
	}, nil
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/maze", s.handleMaze)
	r.Get("/frame.png", s.handleFrame)
	return r
}

func (s *Server) handleMaze(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	row := make([]rune, 0, s.grid.Width()+1)
	for j := 0; j < s.grid.Height(); j++ {
		row = row[:0]
		for i := 0; i < s.grid.Width(); i++ {
			sym, _ := s.grid.Cell(i, j)
			row = append(row, sym)
		}
		row = append(row, '\n')
		w.Write([]byte(string(row)))
	}
}

// handleFrame renders the view from the camera given by the x, y, angle and
// fov query parameters; missing ones default to the spawn camera. mode=overhead
// draws the top-down ray view and minimap=0 leaves the minimap out.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	player, err := s.cameraFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sf := surface.New(s.width, s.height, surface.Black)
	q := r.URL.Query()
	if q.Get("mode") == "overhead" {
		s.overhead.Render(sf, player)
	} else {
		s.projector.Render(sf, player)
		if q.Get("minimap") != "0" {
			s.minimap.Render(sf, s.grid, player)
		}
	}

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, sf); err != nil {
		log.Printf("encoding frame: %v", err)
	}
}

func (s *Server) cameraFromQuery(r *http.Request) (camera.Player, error) {
	player := s.spawn
	q := r.URL.Query()
	fields := []struct {
		name string
		dst  *float64
	}{
		{"x", &player.Pos.X},
		{"y", &player.Pos.Y},
		{"angle", &player.Angle},
		{"fov", &player.FOV},
	}
	for _, f := range fields {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return camera.Player{}, fmt.Errorf("invalid %s %q", f.name, v)
		}
		*f.dst = n
	}
	if player.FOV <= 0 || player.FOV >= math.Pi {
		return camera.Player{}, fmt.Errorf("fov %v out of range (0, pi)", player.FOV)
	}
	return player, nil
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("snapshot service listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
