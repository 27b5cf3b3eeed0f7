package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"github.com/theapemachine/qcircuit"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

/*
run executes one task descriptor given as the single positional argument and
writes the JSON result to stdout. It returns 0 on success, including
business-level errors embedded in the result, and 1 with {"error": ...} on a
missing argument, malformed input or an unexpected failure.
*/
func run(ctx context.Context, args []string, stdout io.Writer) int {
	fs := pflag.NewFlagSet("qcircuit", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configPath := fs.String("config", "", "path to a config file")
	seed := fs.Uint64("seed", 0, "simulator seed, 0 for a random seed")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	simulateOnly := fs.Bool("simulate-only", false, "never contact the remote provider")

	if err := fs.Parse(args); err != nil {
		return fail(stdout, err.Error())
	}

	if fs.NArg() < 1 {
		return fail(stdout, "No circuit data provided")
	}

	cfg, err := qcircuit.LoadConfig(*configPath)
	if err != nil {
		return fail(stdout, err.Error())
	}

	if fs.Changed("seed") {
		cfg.Simulator.Seed = *seed
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger := qcircuit.NewLogger(cfg.Log.Level)
	opts := []qcircuit.RunnerOption{qcircuit.WithLogger(logger)}

	if cfg.Remote.Enabled && !*simulateOnly {
		opts = append(opts, qcircuit.WithProvider(qcircuit.NewHTTPProvider(cfg.Remote, logger)))
	}

	task, err := qcircuit.ParseTask([]byte(fs.Arg(0)))
	if err != nil {
		return fail(stdout, err.Error())
	}

	result, err := qcircuit.NewRunner(cfg, opts...).Run(ctx, task)
	if err != nil {
		return fail(stdout, err.Error())
	}

	if err := json.NewEncoder(stdout).Encode(result); err != nil {
		return fail(stdout, err.Error())
	}

	return 0
}

func fail(stdout io.Writer, msg string) int {
	_ = json.NewEncoder(stdout).Encode(qcircuit.ErrorResult{Error: msg})
	return 1
}
