package main

import (
	"errors"
	"fmt"
	"strings"

	csvblocks "github.com/alnah/go-csvblocks"
	"github.com/alnah/go-csvblocks/internal/yamlutil"
	flag "github.com/spf13/pflag"
)

// ErrUnexpectedArgs is returned when a command gets positional arguments it
// does not take.
var ErrUnexpectedArgs = errors.New("unexpected arguments")

func errUnexpectedArgs(args []string) error {
	return fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(args, " "))
}

// runSampleCmd prints the sample CSV, or the default mapping with --mapping.
// Both outputs are valid inputs: "csvblocks sample > s.csv" converts as is.
func runSampleCmd(args []string, env *Environment) int {
	flags, err := parseSampleFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	if flags.mapping {
		data, err := yamlutil.Encode(csvblocks.DefaultMapping())
		if err != nil {
			fmt.Fprintln(env.Stderr, err)
			return ExitGeneral
		}
		_, _ = env.Stdout.Write(data)
		return ExitSuccess
	}

	fmt.Fprintln(env.Stdout, csvblocks.SampleCSV)
	return ExitSuccess
}
