package main

import (
	"context"
	"io"
	"os"
	"time"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
)

// Generator is the part of *invoice2pdf.Generator the CLI drives.
type Generator interface {
	Generate(ctx context.Context, req invoice2pdf.Request) (*invoice2pdf.BatchResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Generator = (*invoice2pdf.Generator)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewGenerator func(opts ...invoice2pdf.Option) (Generator, error)
}

// DefaultEnv returns the production environment: real clock, process
// streams and a Chrome-backed generator.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewGenerator: func(opts ...invoice2pdf.Option) (Generator, error) {
			return invoice2pdf.NewGenerator(opts...)
		},
	}
}
