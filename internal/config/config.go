/*
 * Copyright (C) 2023 by Jason Figge
 */

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	ScreenWidth  = 1024
	ScreenHeight = 512
	BlockSize    = 64
	TextureSize  = 64
	ColumnStep   = 2
	TargetFPS    = 60
	MazePath     = "./maze.txt"
	EnvFile      = ".env"
	envPrefix    = "MAZE3D_"
	maxColumns   = 8
)

const (
	DisplaySDL      = "sdl"
	DisplayTerminal = "terminal"
	DisplayNone     = "none"
)

type Config struct {
	ScreenWidth  int
	ScreenHeight int
	BlockSize    int
	TextureSize  int
	ColumnStep   int
	TargetFPS    int
	MazePath     string
	TextureDir   string
	Display      string
	ServeAddr    string
	Audio        bool
	Debug        bool
}

func Default() *Config {
	return &Config{
		ScreenWidth:  ScreenWidth,
		ScreenHeight: ScreenHeight,
		BlockSize:    BlockSize,
		TextureSize:  TextureSize,
		ColumnStep:   ColumnStep,
		TargetFPS:    TargetFPS,
		MazePath:     MazePath,
		Display:      DisplaySDL,
		Audio:        true,
	}
}

// Load layers defaults, the optional .env file, MAZE3D_* environment variables
// and finally command line flags.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", EnvFile, err)
	}
	cfg := Default()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.applyFlags(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	ints := map[string]*int{
		"WIDTH":        &c.ScreenWidth,
		"HEIGHT":       &c.ScreenHeight,
		"BLOCK_SIZE":   &c.BlockSize,
		"TEXTURE_SIZE": &c.TextureSize,
		"COLUMN_STEP":  &c.ColumnStep,
		"FPS":          &c.TargetFPS,
	}
	for name, dst := range ints {
		if v := getenv(envPrefix + name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = n
		}
	}

	strs := map[string]*string{
		"MAZE":     &c.MazePath,
		"TEXTURES": &c.TextureDir,
		"DISPLAY":  &c.Display,
		"SERVE":    &c.ServeAddr,
	}
	for name, dst := range strs {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"AUDIO": &c.Audio,
		"DEBUG": &c.Debug,
	}
	for name, dst := range bools {
		if v := getenv(envPrefix + name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = b
		}
	}
	return nil
}

func (c *Config) applyFlags(args []string) error {
	flags := flag.NewFlagSet("maze3d", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.IntVar(&c.ScreenWidth, "width", c.ScreenWidth, "screen width in pixels")
	flags.IntVar(&c.ScreenHeight, "height", c.ScreenHeight, "screen height in pixels")
	flags.IntVar(&c.BlockSize, "block", c.BlockSize, "world units per maze cell")
	flags.IntVar(&c.TextureSize, "texture-size", c.TextureSize, "size of generated textures")
	flags.IntVar(&c.ColumnStep, "columns", c.ColumnStep, "screen columns per cast ray")
	flags.IntVar(&c.TargetFPS, "fps", c.TargetFPS, "target frames per second")
	flags.StringVar(&c.MazePath, "maze", c.MazePath, "maze file")
	flags.StringVar(&c.TextureDir, "textures", c.TextureDir, "directory with brick.png, stone.png and metal.png")
	flags.StringVar(&c.Display, "display", c.Display, "display: sdl, terminal or none")
	flags.StringVar(&c.ServeAddr, "serve", c.ServeAddr, "address of the snapshot HTTP service")
	flags.BoolVar(&c.Audio, "audio", c.Audio, "play audio")
	flags.BoolVar(&c.Debug, "debug", c.Debug, "write logs to the logs directory")
	return flags.Parse(args)
}

func (c *Config) Validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("screen size %dx%d must be positive", c.ScreenWidth, c.ScreenHeight)
	case c.BlockSize <= 0:
		return fmt.Errorf("block size %d must be positive", c.BlockSize)
	case c.TextureSize <= 0:
		return fmt.Errorf("texture size %d must be positive", c.TextureSize)
	case c.ColumnStep < 1 || c.ColumnStep > maxColumns:
		return fmt.Errorf("column step %d must be between 1 and %d", c.ColumnStep, maxColumns)
	case c.TargetFPS <= 0:
		return fmt.Errorf("target fps %d must be positive", c.TargetFPS)
	}
	switch c.Display {
	case DisplaySDL, DisplayTerminal:
	case DisplayNone:
		if c.ServeAddr == "" {
			return errors.New("display none needs a serve address")
		}
	default:
		return fmt.Errorf("unknown display %q", c.Display)
	}
	return nil
}
