package main

import (
	"context"
	"fmt"

	csvblocks "github.com/alnah/go-csvblocks"
)

// CLIConverter is the part of csvblocks.Converter the CLI uses.
type CLIConverter interface {
	Convert(ctx context.Context, input csvblocks.Input) (*csvblocks.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*csvblocks.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// poolAdapter exposes a *csvblocks.ConverterPool as a Pool.
type poolAdapter struct {
	pool *csvblocks.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func newConverterPool(size int, opts ...csvblocks.Option) Pool {
	return &poolAdapter{pool: csvblocks.NewConverterPool(size, opts...)}
}

func (a *poolAdapter) Acquire(ctx context.Context) (CLIConverter, error) {
	c, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Release panics when handed a converter the pool did not create.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*csvblocks.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
