package main

// Notes:
// - This file contains test helpers shared across the CLI tests.
// - These are not functions under test themselves, but supporting infrastructure.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	csvblocks "github.com/alnah/go-csvblocks"
	"github.com/alnah/go-csvblocks/internal/config"
)

// ---------------------------------------------------------------------------
// Test Environment
// ---------------------------------------------------------------------------

// testEnv returns an Environment with captured output and the real pool.
// HTML-only conversions never start a browser.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:     func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) },
		Stdout:  stdout,
		Stderr:  stderr,
		Config:  config.DefaultConfig(),
		NewPool: newConverterPool,
	}, stdout, stderr
}

// mockEnv is testEnv with every conversion routed to conv.
func mockEnv(conv *mockConverter) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	env, stdout, stderr := testEnv()
	env.NewPool = func(size int, _ ...csvblocks.Option) Pool {
		return &mockPool{conv: conv, size: size}
	}
	return env, stdout, stderr
}

func writeTestFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockConverter records inputs and answers with convert, or a canned
// result with one section and a fake PDF.
type mockConverter struct {
	mu      sync.Mutex
	inputs  []csvblocks.Input
	convert func(csvblocks.Input) (*csvblocks.ConvertResult, error)
}

func (m *mockConverter) Convert(_ context.Context, input csvblocks.Input) (*csvblocks.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.convert != nil {
		return m.convert(input)
	}
	res := &csvblocks.ConvertResult{
		HTML:     []byte("<div class=\"block\"></div>"),
		Sections: []csvblocks.Section{{Title: "mock"}},
	}
	if input.PDF {
		res.PDF = []byte("%PDF-1.4 mock")
	}
	if input.Preview {
		res.Preview = []byte("<!DOCTYPE html><title>preview</title>")
	}
	return res, nil
}

func (m *mockConverter) recorded() []csvblocks.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]csvblocks.Input(nil), m.inputs...)
}

// mockPool hands out a single shared converter.
type mockPool struct {
	conv       CLIConverter
	size       int
	acquireErr error

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func (p *mockPool) Acquire(context.Context) (CLIConverter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.conv, nil
}

func (p *mockPool) Release(CLIConverter) {
	p.mu.Lock()
	p.released++
	p.mu.Unlock()
}

func (p *mockPool) Size() int {
	if p.size < 1 {
		return 1
	}
	return p.size
}

func (p *mockPool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}
