package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	csvblocks "github.com/alnah/go-csvblocks"
	"github.com/alnah/go-csvblocks/internal/config"
	"github.com/alnah/go-csvblocks/internal/fileutil"
	"github.com/alnah/go-csvblocks/internal/hints"
	"github.com/alnah/go-csvblocks/internal/watch"
	"go.uber.org/zap"
)

// watchSession rebuilds inputs as they change. Handlers run one at a time
// on the watcher goroutine, so params needs no locking.
type watchSession struct {
	files   []FileToConvert
	cfg     *config.Config
	pool    Pool
	params  *conversionParams
	env     *Environment
	warn    warnFunc
	quiet   bool
	verbose bool

	byInput     map[string]FileToConvert // keyed by absolute input path
	mappingPath string                   // absolute, empty without a mapping file
}

// runWatch blocks until ctx is cancelled, rebuilding on every debounced
// batch of changes.
func runWatch(ctx context.Context, s *watchSession) error {
	debounce, err := s.cfg.Watch.DebounceDuration()
	if err != nil {
		return err
	}

	paths, err := s.index()
	if err != nil {
		return err
	}

	w, err := watch.New(paths, s.handle,
		watch.WithDebounce(debounce),
		watch.WithLogger(s.params.log()),
	)
	if err != nil {
		return err
	}

	if !s.quiet {
		fmt.Fprintf(s.env.Stdout, "Watching %d file(s), press Ctrl+C to stop\n", len(paths))
	}
	return w.Run(ctx)
}

// index resolves absolute paths for the inputs and the mapping file and
// returns everything to watch.
func (s *watchSession) index() ([]string, error) {
	s.byInput = make(map[string]FileToConvert, len(s.files))
	paths := make([]string, 0, len(s.files)+1)
	for _, f := range s.files {
		abs, err := filepath.Abs(f.InputPath)
		if err != nil {
			return nil, err
		}
		s.byInput[abs] = f
		paths = append(paths, abs)
	}

	if s.cfg.Mapping == nil && s.cfg.MappingFile != "" {
		abs, err := filepath.Abs(s.cfg.MappingFile)
		if err != nil {
			return nil, err
		}
		s.mappingPath = abs
		paths = append(paths, abs)
	}
	return paths, nil
}

// reloadMapping reads and parses the mapping file. Unlike the startup
// path, a parse error is returned: a half-saved edit must not reset the
// outputs to the defaults.
func (s *watchSession) reloadMapping() (*csvblocks.Mapping, error) {
	text, err := fileutil.ReadText(s.cfg.MappingFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMapping, err)
	}
	m, err := csvblocks.ParseMapping([]byte(text))
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// handle converts the changed inputs, or every input when the mapping
// file changed.
func (s *watchSession) handle(ctx context.Context, changed []string) {
	var todo []FileToConvert
	if s.mappingPath != "" && slices.Contains(changed, s.mappingPath) {
		if m, err := s.reloadMapping(); err != nil {
			s.warn("keeping previous mapping: %v%s", err, hints.ForMapping())
		} else {
			s.params.mapping = m
		}
		todo = s.files
	} else {
		for _, p := range changed {
			if f, ok := s.byInput[p]; ok {
				todo = append(todo, f)
			}
		}
	}
	if len(todo) == 0 {
		return
	}

	s.params.log().Debug("rebuilding", zap.Strings("changed", changed), zap.Int("files", len(todo)))
	results := convertBatch(ctx, s.pool, todo, s.params)
	printResults(results, s.quiet, s.verbose, s.env)
}
