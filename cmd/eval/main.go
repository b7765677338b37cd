package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/acmelabs/moderation-agent/internal/eval"
	"github.com/acmelabs/moderation-agent/internal/setup"
)

func main() {
	startTime := time.Now()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	input := flag.String("input", "", "Labeled cases file (JSONL)")
	output := flag.String("output", "", "Per-case outcomes file (JSONL); stdout when empty")
	repeats := flag.Int("repeats", 0, "Repeats per case; overrides EVAL_REPEATS when > 0")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: eval -input cases.jsonl [-output outcomes.jsonl] [-repeats N]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()
	if *repeats > 0 {
		cfg.EvalRepeats = *repeats
	}

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	file, err := os.Open(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cases file")
	}
	defer file.Close()

	// Collect valid cases; malformed lines are reported and skipped.
	var cases []eval.Case
	reader := eval.NewReader(file, &logger)
	for record := range reader.ReadAll(ctx) {
		if record.Error != nil {
			logger.Error().
				Err(record.Error).
				Int("line", record.LineNumber).
				Msg("Skipping invalid case")
			continue
		}
		cases = append(cases, record.Case)
	}

	harness := eval.NewHarness(deps.Registry, cfg.EvalRepeats, &logger)
	summary := harness.Run(ctx, cases)

	out := io.Writer(os.Stdout)
	if *output != "" {
		outFile, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create output file")
		}
		defer outFile.Close()
		out = outFile
	}

	if err := eval.WriteOutcomes(out, summary.Outcomes); err != nil {
		log.Fatal().Err(err).Msg("Failed to write outcomes")
	}
	if err := eval.WriteSummary(os.Stderr, summary); err != nil {
		log.Fatal().Err(err).Msg("Failed to write summary")
	}

	logger.Info().
		Int("cases", summary.Cases).
		Int("cases_passed", summary.CasesPassed).
		Int("cases_failed", summary.CasesFailed).
		Dur("elapsed", time.Since(startTime)).
		Msg("Evaluation finished")

	if summary.CasesFailed > 0 {
		os.Exit(1)
	}
}
