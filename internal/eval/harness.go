package eval

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/acmelabs/moderation-agent/internal/agent"
	"github.com/acmelabs/moderation-agent/internal/models"
)

// AgentLookup resolves the agent that moderates a modality.
type AgentLookup interface {
	Get(modality models.Modality) (agent.Agent, error)
}

// Harness runs labeled cases through the moderation agents and tallies
// pass/fail. Each case is repeated a configurable number of times to
// observe LLM consistency; no statistics beyond the raw pass-rate are
// computed. Runs are sequential: one call is issued and awaited before
// the next.
type Harness struct {
	agents  AgentLookup
	repeats int
	logger  *zerolog.Logger
}

func NewHarness(agents AgentLookup, repeats int, logger *zerolog.Logger) *Harness {
	if repeats < 1 {
		repeats = 1
	}
	return &Harness{
		agents:  agents,
		repeats: repeats,
		logger:  logger,
	}
}

// Evaluate runs one case for every configured repeat and compares each
// labeled flag against the agent's result.
func (h *Harness) Evaluate(ctx context.Context, c Case) Outcome {
	outcome := Outcome{
		CaseID:   c.CaseID,
		Modality: string(c.Modality),
	}

	a, err := h.agents.Get(c.Modality)
	if err != nil {
		return h.failAllRuns(outcome, err)
	}

	input, err := c.Input()
	if err != nil {
		return h.failAllRuns(outcome, err)
	}

	for repeat := 1; repeat <= h.repeats; repeat++ {
		run := RunResult{Repeat: repeat}

		result, err := a.Moderate(ctx, input)
		if err != nil {
			run.Error = err.Error()
			outcome.Failures++
			outcome.Runs = append(outcome.Runs, run)
			continue
		}

		run.Mismatches = compareFlags(c.Expected, result)
		run.Passed = len(run.Mismatches) == 0
		if run.Passed {
			outcome.Passes++
		} else {
			outcome.Failures++
		}
		outcome.Runs = append(outcome.Runs, run)
	}

	h.logger.Info().
		Str("case_id", c.CaseID).
		Str("modality", string(c.Modality)).
		Int("passes", outcome.Passes).
		Int("failures", outcome.Failures).
		Msg("case evaluated")

	return outcome
}

// Run evaluates every case in order and aggregates the tallies. A case
// counts as passed only when every repeat passed.
func (h *Harness) Run(ctx context.Context, cases []Case) Summary {
	summary := Summary{}

	for _, c := range cases {
		if ctx.Err() != nil {
			break
		}

		outcome := h.Evaluate(ctx, c)

		summary.Cases++
		summary.Runs += len(outcome.Runs)
		summary.RunsPassed += outcome.Passes
		summary.RunsFailed += outcome.Failures
		if outcome.Failures == 0 {
			summary.CasesPassed++
		} else {
			summary.CasesFailed++
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	return summary
}

func (h *Harness) failAllRuns(outcome Outcome, err error) Outcome {
	h.logger.Error().Err(err).Str("case_id", outcome.CaseID).Msg("case could not run")
	for repeat := 1; repeat <= h.repeats; repeat++ {
		outcome.Runs = append(outcome.Runs, RunResult{Repeat: repeat, Error: err.Error()})
		outcome.Failures++
	}
	return outcome
}

func compareFlags(expected map[string]bool, result models.Result) []Mismatch {
	var mismatches []Mismatch
	for flag, want := range expected {
		if got := result.Flags[flag]; got != want {
			mismatches = append(mismatches, Mismatch{Flag: flag, Expected: want, Actual: got})
		}
	}
	sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].Flag < mismatches[j].Flag })
	return mismatches
}
