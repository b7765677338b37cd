package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/acmelabs/moderation-agent/internal/models"
)

// ValidationError is returned when the LLM reply does not match the
// modality's result schema. It is surfaced to the caller as-is; a
// mismatched reply is never coerced into a default result.
type ValidationError struct {
	Modality models.Modality
	Field    string
	Detail   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s moderation reply: %s", e.Modality, e.Detail)
	}
	return fmt.Sprintf("invalid %s moderation reply: field %q: %s", e.Modality, e.Field, e.Detail)
}

// parseResult decodes and validates an LLM reply against the modality's
// schema: every flag must be present as a bool, the rationale must be a
// non-empty string, a transcription is allowed only where the schema
// says so, and unknown keys are rejected.
func parseResult(modality models.Modality, content string) (models.Result, error) {
	schema, ok := models.SchemaFor(modality)
	if !ok {
		return models.Result{}, fmt.Errorf("no result schema for modality %q", modality)
	}

	content = stripMarkdownCodeBlock(content)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return models.Result{}, &ValidationError{Modality: modality, Detail: "reply is not a JSON object"}
	}

	result := models.Result{
		Modality: modality,
		Flags:    make(map[string]bool, len(schema.Flags)),
	}

	for _, flag := range schema.Flags {
		value, exists := raw[flag]
		if !exists {
			return models.Result{}, &ValidationError{Modality: modality, Field: flag, Detail: "missing"}
		}
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			return models.Result{}, &ValidationError{Modality: modality, Field: flag, Detail: "not a boolean"}
		}
		result.Flags[flag] = b
		delete(raw, flag)
	}

	rationale, exists := raw["rationale"]
	if !exists {
		return models.Result{}, &ValidationError{Modality: modality, Field: "rationale", Detail: "missing"}
	}
	if err := json.Unmarshal(rationale, &result.Rationale); err != nil {
		return models.Result{}, &ValidationError{Modality: modality, Field: "rationale", Detail: "not a string"}
	}
	if result.Rationale == "" {
		return models.Result{}, &ValidationError{Modality: modality, Field: "rationale", Detail: "empty"}
	}
	delete(raw, "rationale")

	if transcription, exists := raw["transcription"]; exists {
		if !schema.HasTranscription {
			return models.Result{}, &ValidationError{Modality: modality, Field: "transcription", Detail: "not allowed for this modality"}
		}
		if err := json.Unmarshal(transcription, &result.Transcription); err != nil {
			return models.Result{}, &ValidationError{Modality: modality, Field: "transcription", Detail: "not a string"}
		}
		delete(raw, "transcription")
	}

	for key := range raw {
		return models.Result{}, &ValidationError{Modality: modality, Field: key, Detail: "unknown field"}
	}

	return result, nil
}

// stripMarkdownCodeBlock removes markdown code block formatting if present
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	// Check for markdown code blocks (```json ... ``` or ``` ... ```)
	if strings.HasPrefix(content, "```") {
		// Find the first newline (after the opening ```)
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		// Find the closing ```
		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		// Extract the content between the code blocks
		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}
