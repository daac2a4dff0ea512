package main

import (
	"io"
	"os"
	"time"

	csvblocks "github.com/alnah/go-csvblocks"
	"github.com/alnah/go-csvblocks/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and the converter pool factory.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config // used when no config file is named
	NewPool func(size int, opts ...csvblocks.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  config.DefaultConfig(),
		NewPool: newConverterPool,
	}
}
