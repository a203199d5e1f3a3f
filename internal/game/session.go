/*
 * Copyright (C) 2023 by Jason Figge
 */

package game

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"maze3d/internal/camera"
	"maze3d/internal/grid"
	"maze3d/internal/minimap"
	"maze3d/internal/projector"
	"maze3d/internal/surface"
	"maze3d/internal/texture"
)

type State int

const (
	Menu State = iota
	Playing
	Victory
)

func (s State) String() string {
	switch s {
	case Menu:
		return "menu"
	case Playing:
		return "playing"
	case Victory:
		return "victory"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const overheadRays = 60

// Input is one frame of player intent. Held keys map to the movement fields;
// Start, Back and ToggleOverhead are edge triggered.
type Input struct {
	Forward     bool
	Backward    bool
	TurnLeft    bool
	TurnRight   bool
	StrafeLeft  bool
	StrafeRight bool

	Start          bool
	Back           bool
	ToggleOverhead bool
}

// Session owns the player and drives one maze from menu to victory.
type Session struct {
	Grid      *grid.Grid
	BlockSize int
	Player    camera.Player
	State     State
	LevelTime time.Duration
	BestTime  time.Duration
	Overhead  bool

	OnStart   func()
	OnVictory func(elapsed time.Duration)
	OnMenu    func()

	spawn      camera.Player
	victoryFor time.Duration
	projector  *projector.Projector
	overhead   *projector.Overhead
	minimap    *minimap.Minimap
}

func New(g *grid.Grid, textures *texture.Store, blockSize, columnStep int) (*Session, error) {
	spawn, ok := camera.Spawn(g, blockSize)
	if !ok {
		return nil, grid.ErrNoStart
	}
	p := projector.New(g, textures, blockSize)
	p.ColumnStep = columnStep
	return &Session{
		Grid:      g,
		BlockSize: blockSize,
		Player:    spawn,
		State:     Menu,
		spawn:     spawn,
		projector: p,
		overhead:  &projector.Overhead{Grid: g, BlockSize: blockSize, Rays: overheadRays},
		minimap:   minimap.New(blockSize),
	}, nil
}

func (s *Session) reset() {
	s.Player = s.spawn
	s.LevelTime = 0
	s.victoryFor = 0
}

// Update applies one frame of input.
func (s *Session) Update(in Input, dt time.Duration) {
	switch s.State {
	case Menu:
		if in.Start {
			s.start()
		}
	case Playing:
		s.play(in, dt)
	case Victory:
		s.victoryFor += dt
		if in.Start {
			s.start()
		} else if in.Back {
			s.reset()
			s.State = Menu
			if s.OnMenu != nil {
				s.OnMenu()
			}
		}
	}
}

func (s *Session) start() {
	s.reset()
	s.State = Playing
	log.Printf("level started at %.0f,%.0f", s.Player.Pos.X, s.Player.Pos.Y)
	if s.OnStart != nil {
		s.OnStart()
	}
}

func (s *Session) play(in Input, dt time.Duration) {
	if in.ToggleOverhead {
		s.Overhead = !s.Overhead
	}
	if in.TurnLeft {
		s.Player.Rotate(false)
	}
	if in.TurnRight {
		s.Player.Rotate(true)
	}
	if in.Forward {
		s.Player.Forward(s.Grid, s.BlockSize)
	}
	if in.Backward {
		s.Player.Backwards(s.Grid, s.BlockSize)
	}
	if in.StrafeLeft {
		s.Player.Strafe(s.Grid, s.BlockSize, true)
	}
	if in.StrafeRight {
		s.Player.Strafe(s.Grid, s.BlockSize, false)
	}

	s.LevelTime += dt
	if s.Player.AtGoal(s.Grid, s.BlockSize) {
		s.State = Victory
		if s.BestTime == 0 || s.LevelTime < s.BestTime {
			s.BestTime = s.LevelTime
		}
		log.Printf("goal reached in %v (best %v)", s.LevelTime, s.BestTime)
		if s.OnVictory != nil {
			s.OnVictory(s.LevelTime)
		}
	}
}

// Draw renders the current state. While playing the 3D view is drawn first
// and the minimap composited over it.
func (s *Session) Draw(sf *surface.Surface) {
	switch s.State {
	case Playing:
		sf.SetBackground(surface.Black)
		sf.Clear()
		if s.Overhead {
			s.overhead.Render(sf, s.Player)
			return
		}
		s.projector.Render(sf, s.Player)
		s.minimap.Render(sf, s.Grid, s.Player)
	case Victory:
		sf.SetBackground(victoryBackground(s.victoryFor))
		sf.Clear()
	default:
		sf.SetBackground(surface.Black)
		sf.Clear()
		s.minimap.Render(sf, s.Grid, s.Player)
	}
}

// Frame runs update, draw and present in that order.
func (s *Session) Frame(sf *surface.Surface, sink surface.Sink, in Input, dt time.Duration) error {
	s.Update(in, dt)
	s.Draw(sf)
	return sf.Present(sink)
}

// Status is a one line description of the session for window titles and status bars.
func (s *Session) Status() string {
	switch s.State {
	case Playing:
		return fmt.Sprintf("MAZE 3D  %.1fs  find the goal", s.LevelTime.Seconds())
	case Victory:
		return fmt.Sprintf("LEVEL COMPLETE in %.2fs (best %.2fs)  SPACE play again, ESC menu",
			s.LevelTime.Seconds(), s.BestTime.Seconds())
	default:
		return "MAZE 3D  press SPACE to start"
	}
}

func victoryBackground(elapsed time.Duration) color.RGBA {
	pulse := (math.Sin(elapsed.Seconds()*2)*0.5 + 0.5) * 30
	return color.RGBA{G: uint8(pulse), A: 0xff}
}
