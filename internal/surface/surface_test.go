/*
 * Copyright (C) 2023 by Jason Figge
 */

package surface

import (
	"image"
	"image/color"
	"testing"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func count(s *Surface, c color.RGBA) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Pixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestSetPixelIgnoresOutOfBounds(t *testing.T) {
	s := New(4, 3, Black)
	s.SetColor(red)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {1 << 20, 1 << 20}} {
		s.SetPixel(p[0], p[1])
	}
	if n := count(s, red); n != 0 {
		t.Errorf("Expected no pixels written, got %d", n)
	}
	s.SetPixel(3, 2)
	if s.Pixel(3, 2) != red {
		t.Errorf("Expected red at (3,2), got %v", s.Pixel(3, 2))
	}
}

func TestClear(t *testing.T) {
	s := New(3, 3, Black)
	s.SetColor(red)
	s.FillRect(0, 0, 3, 3)
	s.SetBackground(White)
	s.Clear()
	if n := count(s, White); n != 9 {
		t.Errorf("Expected 9 background pixels, got %d", n)
	}
}

func TestFillRectClipsToSurface(t *testing.T) {
	s := New(10, 10, Black)
	s.SetColor(red)
	s.FillRect(-5, 8, 8, 8)
	if n := count(s, red); n != 3*2 {
		t.Errorf("Expected 6 pixels, got %d", n)
	}
}

func TestClipRectangle(t *testing.T) {
	s := New(10, 10, Black)
	s.SetColor(red)
	s.SetClip(image.Rect(2, 2, 5, 5))
	s.FillRect(0, 0, 10, 10)
	if n := count(s, red); n != 9 {
		t.Errorf("Expected 9 clipped pixels, got %d", n)
	}
	if s.Pixel(1, 1) == red || s.Pixel(5, 5) == red {
		t.Error("Expected pixels outside the clip to be untouched")
	}
	s.ResetClip()
	s.SetPixel(0, 0)
	if s.Pixel(0, 0) != red {
		t.Error("Expected writes after ResetClip to land anywhere on the surface")
	}
}

func TestFillCircle(t *testing.T) {
	s := New(20, 20, Black)
	s.SetColor(red)
	s.FillCircle(10, 10, 4)
	if s.Pixel(10, 10) != red || s.Pixel(14, 10) != red || s.Pixel(10, 6) != red {
		t.Error("Expected centre and axis extremes to be filled")
	}
	if s.Pixel(14, 14) == red {
		t.Error("Expected corner of bounding box to stay empty")
	}
	s.FillCircle(-100, -100, 3)
}

func TestLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"horizontal", 0, 0, 9, 0, 10},
		{"vertical", 3, 9, 3, 0, 10},
		{"diagonal", 0, 0, 5, 5, 6},
		{"point", 4, 4, 4, 4, 1},
		{"off surface", -20, 5, 30, 5, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(10, 10, Black)
			s.SetColor(red)
			s.Line(tt.x0, tt.y0, tt.x1, tt.y1)
			if n := count(s, red); n != tt.want {
				t.Errorf("Expected %d pixels, got %d", tt.want, n)
			}
		})
	}
}

func TestTranslucentColourBlends(t *testing.T) {
	s := New(1, 1, White)
	s.SetColor(color.RGBA{A: 180})
	s.SetPixel(0, 0)
	got := s.Pixel(0, 0)
	if got.R != 75 || got.G != 75 || got.B != 75 || got.A != 0xff {
		t.Errorf("Expected (75,75,75,255), got %v", got)
	}
}

func TestCopyRGBA(t *testing.T) {
	s := New(2, 1, Black)
	s.SetColor(red)
	s.SetPixel(1, 0)
	buf := make([]byte, 12)
	s.CopyRGBA(buf, 12)
	want := []byte{0, 0, 0, 0xff, 0xff, 0, 0, 0xff, 0, 0, 0, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, buf)
		}
	}
}

type recordingSink struct{ frames int }

func (r *recordingSink) Present(*Surface) error {
	r.frames++
	return nil
}

func TestPresent(t *testing.T) {
	sink := &recordingSink{}
	s := New(1, 1, Black)
	if err := s.Present(sink); err != nil {
		t.Fatal(err)
	}
	if sink.frames != 1 {
		t.Errorf("Expected 1 frame presented, got %d", sink.frames)
	}
}

func TestImplementsImage(t *testing.T) {
	var img image.Image = New(3, 2, Black)
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}
}
