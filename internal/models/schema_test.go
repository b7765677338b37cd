package models

import "testing"

func TestSchemaFor(t *testing.T) {
	tests := []struct {
		modality         Modality
		flags            []string
		hasTranscription bool
	}{
		{ModalityText, []string{"is_unfriendly", "is_unprofessional", "contains_pii"}, false},
		{ModalityAudio, []string{"is_unfriendly", "is_unprofessional", "contains_pii"}, true},
		{ModalityImage, []string{"contains_pii", "is_disturbing", "is_low_quality"}, false},
		{ModalityVideo, []string{"contains_pii", "is_disturbing", "is_low_quality"}, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.modality), func(t *testing.T) {
			schema, ok := SchemaFor(tt.modality)
			if !ok {
				t.Fatalf("No schema for %s", tt.modality)
			}
			if len(schema.Flags) != len(tt.flags) {
				t.Fatalf("Expected %d flags, got %d", len(tt.flags), len(schema.Flags))
			}
			for _, flag := range tt.flags {
				if !schema.HasFlag(flag) {
					t.Errorf("Expected flag %s in %s schema", flag, tt.modality)
				}
			}
			if schema.HasTranscription != tt.hasTranscription {
				t.Errorf("Expected HasTranscription=%v for %s", tt.hasTranscription, tt.modality)
			}
		})
	}
}

func TestSchemaFor_UnknownModality(t *testing.T) {
	if _, ok := SchemaFor("hologram"); ok {
		t.Error("Expected no schema for unknown modality")
	}
}

func TestModalityFromMIME(t *testing.T) {
	tests := []struct {
		mime     string
		modality Modality
		ok       bool
	}{
		{"image/png", ModalityImage, true},
		{"image/jpeg", ModalityImage, true},
		{"audio/mpeg", ModalityAudio, true},
		{"video/mp4", ModalityVideo, true},
		{"text/plain", "", false},
		{"application/pdf", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			modality, ok := ModalityFromMIME(tt.mime)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v for %s", tt.ok, tt.mime)
			}
			if modality != tt.modality {
				t.Errorf("Expected %s, got %s", tt.modality, modality)
			}
		})
	}
}
