package eval

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestReader_ValidFile(t *testing.T) {
	source := strings.NewReader(`{"case_id": "text-pii-card", "modality": "text", "text": "Here is my card number 4111111111111111", "expected": {"contains_pii": true}}
{"case_id": "text-clean", "modality": "text", "text": "Happy to help!", "expected": {"contains_pii": false}}
`)

	reader := NewReader(source, newTestLogger())

	var cases []Case
	for record := range reader.ReadAll(context.Background()) {
		if record.Error != nil {
			t.Fatalf("Line %d: unexpected error: %v", record.LineNumber, record.Error)
		}
		cases = append(cases, record.Case)
	}

	if len(cases) != 2 {
		t.Fatalf("Expected 2 cases, got %d", len(cases))
	}
	if cases[0].CaseID != "text-pii-card" {
		t.Errorf("Unexpected case id: %s", cases[0].CaseID)
	}
	if !cases[0].Expected["contains_pii"] {
		t.Error("Expected contains_pii=true in first case")
	}
}

func TestReader_SkipsBlankLines(t *testing.T) {
	source := strings.NewReader(`
{"case_id": "text-clean", "modality": "text", "text": "Happy to help!", "expected": {"contains_pii": false}}

`)

	reader := NewReader(source, newTestLogger())

	count := 0
	for record := range reader.ReadAll(context.Background()) {
		if record.Error != nil {
			t.Fatalf("Unexpected error: %v", record.Error)
		}
		count++
	}

	if count != 1 {
		t.Errorf("Expected 1 record, got %d", count)
	}
}

func TestReader_InvalidLines(t *testing.T) {
	source := strings.NewReader(`{"case_id": "good", "modality": "text", "text": "hi", "expected": {"contains_pii": false}}
not json at all
{"case_id": "bad-modality", "modality": "hologram", "text": "hi", "expected": {"contains_pii": false}}
`)

	reader := NewReader(source, newTestLogger())

	var records []InputRecord
	for record := range reader.ReadAll(context.Background()) {
		records = append(records, record)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	if records[0].Error != nil {
		t.Errorf("Line 1: expected valid record, got %v", records[0].Error)
	}
	if records[1].Error == nil {
		t.Error("Line 2: expected parse error for malformed JSON")
	}
	if records[1].LineNumber != 2 {
		t.Errorf("Expected line number 2, got %d", records[1].LineNumber)
	}
	if records[2].Error == nil {
		t.Error("Line 3: expected validation error for unknown modality")
	}
}

func TestReader_ContextCancellation(t *testing.T) {
	var lines []string
	for i := 0; i < 1000; i++ {
		lines = append(lines, `{"case_id": "c", "modality": "text", "text": "hi", "expected": {"contains_pii": false}}`)
	}
	source := strings.NewReader(strings.Join(lines, "\n"))

	ctx, cancel := context.WithCancel(context.Background())
	reader := NewReader(source, newTestLogger())
	out := reader.ReadAll(ctx)

	<-out
	cancel()

	// The channel must close shortly after cancellation.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-out:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Reader did not stop after context cancellation")
		}
	}
}
