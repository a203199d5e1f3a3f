/*
 * Copyright (C) 2023 by Jason Figge
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"

	"maze3d/internal"
	"maze3d/internal/audio"
	"maze3d/internal/config"
	"maze3d/internal/game"
	"maze3d/internal/grid"
	"maze3d/internal/snapshot"
	"maze3d/internal/surface"
	"maze3d/internal/terminal"
	"maze3d/internal/texture"
	"maze3d/internal/window"
)

const (
	title       = "Maze 3D"
	logDir      = "logs"
	logFileName = "maze3d.log"
	maxLogSize  = 10 * 1024 * 1024
)

func init() {
	// SDL calls must stay on the main thread.
	runtime.LockOSThread()
}

// setupLogging writes the log to logs/maze3d.log when debug is set, rotating a
// file that has grown past maxLogSize. Otherwise logging is discarded so the
// terminal display keeps a clean screen.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("maze3d-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func loadTextures(cfg *config.Config) (*texture.Store, error) {
	if cfg.TextureDir == "" {
		return texture.Generate(cfg.TextureSize), nil
	}
	return texture.LoadDir(cfg.TextureDir)
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "maze3d: %v\n", err)
		os.Exit(2)
	}
	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		log.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "maze3d: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Game over")
}

func run(cfg *config.Config) error {
	g, err := grid.Load(cfg.MazePath)
	if err != nil {
		return err
	}
	textures, err := loadTextures(cfg)
	if err != nil {
		return err
	}
	session, err := game.New(g, textures, cfg.BlockSize, cfg.ColumnStep)
	if err != nil {
		return err
	}

	var onMute func()
	if cfg.Audio && cfg.Display != config.DisplayNone {
		player := audio.New()
		if err := player.Init(); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer player.Close()
			session.OnStart = player.StartMusic
			session.OnVictory = func(time.Duration) {
				player.StopMusic()
				player.PlayVictory()
			}
			session.OnMenu = player.StopMusic
			onMute = player.ToggleMute
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	serveErr := make(chan error, 1)
	if cfg.ServeAddr != "" {
		server, err := snapshot.New(g, textures, cfg.BlockSize, cfg.ScreenWidth, cfg.ScreenHeight, cfg.ColumnStep)
		if err != nil {
			return err
		}
		go func() { serveErr <- server.ListenAndServe(ctx, cfg.ServeAddr) }()
	}

	switch cfg.Display {
	case config.DisplaySDL:
		controller := internal.NewController(session, int32(cfg.ScreenWidth), int32(cfg.ScreenHeight))
		controller.OnMute = onMute
		return window.Open(title, int32(cfg.ScreenWidth), int32(cfg.ScreenHeight), cfg.TargetFPS, controller)

	case config.DisplayTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("initialising screen: %w", err)
		}
		defer screen.Fini()
		cols, rows := screen.Size()
		sf := surface.New(cols, (rows-1)*2, surface.Black)
		return terminal.Run(screen, session, sf, cfg.TargetFPS, onMute)

	default:
		return <-serveErr
	}
}
