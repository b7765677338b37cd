package eval

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteOutcomes writes one JSON object per case outcome.
func WriteOutcomes(w io.Writer, outcomes []Outcome) error {
	encoder := json.NewEncoder(w)
	for _, outcome := range outcomes {
		if err := encoder.Encode(outcome); err != nil {
			return fmt.Errorf("failed to write outcome for case %s: %w", outcome.CaseID, err)
		}
	}
	return nil
}

// WriteSummary writes a human-readable tally of a harness run.
func WriteSummary(w io.Writer, summary Summary) error {
	_, err := fmt.Fprintf(w,
		"Cases: %d (passed: %d, failed: %d)\nRuns:  %d (passed: %d, failed: %d)\n",
		summary.Cases, summary.CasesPassed, summary.CasesFailed,
		summary.Runs, summary.RunsPassed, summary.RunsFailed,
	)
	if err != nil {
		return err
	}

	for _, outcome := range summary.Outcomes {
		if outcome.Failures == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "  FAIL %s (%s) pass-rate %.2f\n", outcome.CaseID, outcome.Modality, outcome.PassRate()); err != nil {
			return err
		}
		for _, run := range outcome.Runs {
			if run.Passed {
				continue
			}
			if run.Error != "" {
				if _, err := fmt.Fprintf(w, "    repeat %d: error: %s\n", run.Repeat, run.Error); err != nil {
					return err
				}
				continue
			}
			for _, mm := range run.Mismatches {
				if _, err := fmt.Fprintf(w, "    repeat %d: %s expected=%t actual=%t\n", run.Repeat, mm.Flag, mm.Expected, mm.Actual); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
