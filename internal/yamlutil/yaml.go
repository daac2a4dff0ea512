// Package yamlutil decodes YAML and JSON documents through a single entry point.
// goccy/go-yaml accepts JSON as YAML flow syntax, so mapping files written
// in either format go through the same decoder.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits decoded documents to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyDocument  = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Option tunes a single Decode call.
type Option func(*decodeOptions)

type decodeOptions struct {
	strict bool
}

// Strict rejects fields that do not exist in the destination struct.
func Strict() Option {
	return func(o *decodeOptions) { o.strict = true }
}

// Decode parses data into v. A leading UTF-8 byte order mark is ignored.
// Documents made only of whitespace are reported as ErrEmptyDocument.
func Decode(data []byte, v any, opts ...Option) error {
	if v == nil {
		return ErrNilDestination
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyDocument
	}

	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	var yamlOpts []yaml.DecodeOption
	if o.strict {
		yamlOpts = append(yamlOpts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, yamlOpts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Encode renders v as block-style YAML.
func Encode(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
