/*
 * Copyright (C) 2023 by Jason Figge
 */

package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	noteLength = 120 * time.Millisecond
)

// victory arpeggio, C major
var chimeNotes = []float64{523.25, 659.25, 783.99, 1046.50}

// Player mixes the background drone and one-shot effects onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	drone       *beep.Ctrl
	initialized bool
}

func New() *Player {
	mixer := &beep.Mixer{}
	return &Player{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2, Volume: -1},
	}
}

func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.volume)
	p.initialized = true
	return nil
}

// StartMusic starts the looping background drone unless it is already playing.
func (p *Player) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if p.drone != nil {
		p.drone.Paused = false
		return
	}
	p.drone = &beep.Ctrl{Streamer: NewDrone(sampleRate)}
	p.mixer.Add(p.drone)
}

func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drone == nil {
		return
	}
	speaker.Lock()
	p.drone.Paused = true
	speaker.Unlock()
}

// PlayVictory plays the goal chime once.
func (p *Player) PlayVictory() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	chime, err := Chime(sampleRate)
	if err != nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(chime)
	speaker.Unlock()
}

func (p *Player) ToggleMute() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.volume.Silent = !p.volume.Silent
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume.Silent
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.initialized = false
}

// Chime builds the victory arpeggio.
func Chime(sr beep.SampleRate) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(chimeNotes))
	for _, freq := range chimeNotes {
		tone, err := generators.SineTone(sr, freq)
		if err != nil {
			return nil, err
		}
		notes = append(notes, beep.Take(sr.N(noteLength), tone))
	}
	return beep.Seq(notes...), nil
}

// Drone is an endless low hum whose pitch drifts slowly.
type Drone struct {
	sr    beep.SampleRate
	pos   int
	phase float64
}

func NewDrone(sr beep.SampleRate) *Drone {
	return &Drone{sr: sr}
}

func (d *Drone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(d.pos) / float64(d.sr)
		freq := 55 + 5*math.Sin(2*math.Pi*t/8)
		d.phase += freq / float64(d.sr)
		d.phase -= math.Floor(d.phase)

		v := 0.2 * (math.Sin(2*math.Pi*d.phase) + 0.3*math.Sin(4*math.Pi*d.phase)) / 1.3
		samples[i][0] = v
		samples[i][1] = v
		d.pos++
	}
	return len(samples), true
}

func (d *Drone) Err() error { return nil }
