/*
 * Copyright (C) 2023 by Jason Figge
 */

// Package window runs an SDL window and hands its events, updates and draws
// to a Handler.
package window

import (
	"fmt"
	"log"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

type Handler interface {
	Init(canvas *Canvas)
	Events(event sdl.Event) bool
	OnUpdate()
	OnDraw(renderer *sdl.Renderer)
}

type Canvas struct {
	window     *sdl.Window
	renderer   *sdl.Renderer
	running    bool
	destroyers []func()
	frameRate  float64
}

// ErrorTrap logs SDL errors that should not stop the frame.
func ErrorTrap(err error) {
	if err != nil {
		log.Printf("sdl: %v", err)
	}
}

// Open creates the window and blocks running the frame loop until the window
// is closed or the handler calls Quit.
func Open(title string, width, height int32, fps int, handler Handler) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("initialising sdl: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer renderer.Destroy()
	ErrorTrap(renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND))

	c := &Canvas{window: window, renderer: renderer, running: true}
	defer c.destroy()
	handler.Init(c)

	if fps <= 0 {
		fps = 60
	}
	budget := time.Second / time.Duration(fps)
	last := time.Now()
	for c.running {
		start := time.Now()
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				c.running = false
				continue
			}
			handler.Events(event)
		}
		handler.OnUpdate()
		handler.OnDraw(renderer)
		renderer.Present()

		if spent := time.Since(start); spent < budget {
			sdl.Delay(uint32((budget - spent).Milliseconds()))
		}
		now := time.Now()
		c.frameRate = 1 / now.Sub(last).Seconds()
		last = now
	}
	return nil
}

func (c *Canvas) Renderer() *sdl.Renderer { return c.renderer }
func (c *Canvas) Window() *sdl.Window     { return c.window }
func (c *Canvas) FrameRate() float64      { return c.frameRate }

func (c *Canvas) Quit() {
	c.running = false
}

// AddDestroyer registers cleanup run before the renderer is destroyed.
func (c *Canvas) AddDestroyer(fn func()) {
	c.destroyers = append(c.destroyers, fn)
}

func (c *Canvas) destroy() {
	for i := len(c.destroyers) - 1; i >= 0; i-- {
		c.destroyers[i]()
	}
}
