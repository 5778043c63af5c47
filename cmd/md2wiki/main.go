package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], DefaultEnv()))
}

// run dispatches the top-level command and returns an exit code.
func run(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "convert":
		flags, positional, err := parseConvertFlags(rest)
		if err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return ExitSuccess
			}
			fmt.Fprintln(env.Stderr, err)
			return ExitUsage
		}

		setupMaxProcs(flags.common.verbose, env)

		if err := runConvert(context.Background(), positional, flags, env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		return ExitSuccess

	case "doctor":
		return runDoctorCmd(rest, env)

	case "version":
		fmt.Fprintf(env.Stdout, "md2wiki %s\n", Version)
		return ExitSuccess

	case "help":
		runHelp(rest, env)
		return ExitSuccess

	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// setupMaxProcs aligns GOMAXPROCS with container CPU quotas.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setupMaxProcs(verbose bool, env *Environment) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}
}
