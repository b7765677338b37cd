package eval

import (
	"fmt"
	"os"

	"github.com/acmelabs/moderation-agent/internal/mediatype"
	"github.com/acmelabs/moderation-agent/internal/models"
)

// Case is one labeled example: an input payload plus the expected value
// of every flag under test. Cases are static and read-only.
type Case struct {
	CaseID    string          `json:"case_id"`
	Modality  models.Modality `json:"modality"`
	Text      string          `json:"text,omitempty"`
	MediaPath string          `json:"media_path,omitempty"`
	Expected  map[string]bool `json:"expected"`
}

// Input materializes the case's payload. Media cases are read from disk
// and type-checked against the declared modality.
func (c Case) Input() (models.Input, error) {
	if c.Modality == models.ModalityText {
		return models.Input{Modality: models.ModalityText, Text: c.Text}, nil
	}

	if c.MediaPath == "" {
		return models.Input{}, fmt.Errorf("case %s: media_path is required for %s cases", c.CaseID, c.Modality)
	}

	data, err := os.ReadFile(c.MediaPath)
	if err != nil {
		return models.Input{}, fmt.Errorf("case %s: %w", c.CaseID, err)
	}

	mime, modality, err := mediatype.Detect(data)
	if err != nil {
		return models.Input{}, fmt.Errorf("case %s: %w", c.CaseID, err)
	}
	if modality != c.Modality {
		return models.Input{}, fmt.Errorf("case %s: file is %s but case declares %s", c.CaseID, modality, c.Modality)
	}

	return models.Input{
		Modality:  c.Modality,
		Media:     data,
		MediaType: mime,
	}, nil
}

// Validate checks the case against the modality's result schema.
func (c Case) Validate() error {
	schema, ok := models.SchemaFor(c.Modality)
	if !ok {
		return fmt.Errorf("case %s: unknown modality %q", c.CaseID, c.Modality)
	}
	if len(c.Expected) == 0 {
		return fmt.Errorf("case %s: no expected flags", c.CaseID)
	}
	for flag := range c.Expected {
		if !schema.HasFlag(flag) {
			return fmt.Errorf("case %s: flag %q is not part of the %s schema", c.CaseID, flag, c.Modality)
		}
	}
	return nil
}

// Mismatch records one flag whose actual value differed from the label.
type Mismatch struct {
	Flag     string `json:"flag"`
	Expected bool   `json:"expected"`
	Actual   bool   `json:"actual"`
}

// RunResult is the outcome of a single repeat of a case.
type RunResult struct {
	Repeat     int        `json:"repeat"`
	Passed     bool       `json:"passed"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Outcome aggregates all repeats of one case.
type Outcome struct {
	CaseID   string      `json:"case_id"`
	Modality string      `json:"modality"`
	Runs     []RunResult `json:"runs"`
	Passes   int         `json:"passes"`
	Failures int         `json:"failures"`
}

// PassRate is the raw fraction of repeats that matched every label.
func (o Outcome) PassRate() float64 {
	total := o.Passes + o.Failures
	if total == 0 {
		return 0
	}
	return float64(o.Passes) / float64(total)
}

// Summary tallies a full harness run.
type Summary struct {
	Cases       int       `json:"cases"`
	CasesPassed int       `json:"cases_passed"`
	CasesFailed int       `json:"cases_failed"`
	Runs        int       `json:"runs"`
	RunsPassed  int       `json:"runs_passed"`
	RunsFailed  int       `json:"runs_failed"`
	Outcomes    []Outcome `json:"-"`
}
