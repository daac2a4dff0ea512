package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-csvblocks/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // CSVBLOCKS_CONFIG: config file name or path
	MappingFile string        // CSVBLOCKS_MAPPING: mapping file path
	Timeout     time.Duration // CSVBLOCKS_TIMEOUT: PDF generation timeout
	Workers     int           // CSVBLOCKS_WORKERS: parallel workers
	InputDir    string        // CSVBLOCKS_INPUT_DIR: default input directory
	OutputDir   string        // CSVBLOCKS_OUTPUT_DIR: default output directory
	Sheet       string        // CSVBLOCKS_SHEET: workbook sheet name
}

// knownEnvVars lists valid CSVBLOCKS_* environment variables.
var knownEnvVars = map[string]bool{
	"CSVBLOCKS_CONFIG":     true,
	"CSVBLOCKS_MAPPING":    true,
	"CSVBLOCKS_TIMEOUT":    true,
	"CSVBLOCKS_WORKERS":    true,
	"CSVBLOCKS_INPUT_DIR":  true,
	"CSVBLOCKS_OUTPUT_DIR": true,
	"CSVBLOCKS_SHEET":      true,
	"CSVBLOCKS_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable or non-positive timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("CSVBLOCKS_CONFIG"),
		MappingFile: os.Getenv("CSVBLOCKS_MAPPING"),
		InputDir:    os.Getenv("CSVBLOCKS_INPUT_DIR"),
		OutputDir:   os.Getenv("CSVBLOCKS_OUTPUT_DIR"),
		Sheet:       os.Getenv("CSVBLOCKS_SHEET"),
	}

	if timeout := os.Getenv("CSVBLOCKS_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("CSVBLOCKS_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized CSVBLOCKS_*
// variable, to catch typos like CSVBLOCKS_MAPING.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CSVBLOCKS_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig fills config fields that are still empty from the
// environment. CLI flags are merged afterwards and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Sheet != "" && cfg.Sheet == "" {
		cfg.Sheet = env.Sheet
	}
	// An inline mapping in the config file outranks the env mapping file.
	if env.MappingFile != "" && cfg.MappingFile == "" && cfg.Mapping == nil {
		cfg.MappingFile = env.MappingFile
	}
}
