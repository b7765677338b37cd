package models

// Schema fixes the shape of a modality's moderation result: the exact
// set of boolean flags plus whether a transcription field is allowed.
type Schema struct {
	Flags            []string
	HasTranscription bool
}

var (
	textFlags  = []string{"is_unfriendly", "is_unprofessional", "contains_pii"}
	mediaFlags = []string{"contains_pii", "is_disturbing", "is_low_quality"}

	schemas = map[Modality]Schema{
		ModalityText:  {Flags: textFlags},
		ModalityAudio: {Flags: textFlags, HasTranscription: true},
		ModalityImage: {Flags: mediaFlags},
		ModalityVideo: {Flags: mediaFlags},
	}
)

// SchemaFor returns the result schema for a modality.
func SchemaFor(m Modality) (Schema, bool) {
	s, ok := schemas[m]
	return s, ok
}

// HasFlag reports whether the flag belongs to the schema's flag set.
func (s Schema) HasFlag(name string) bool {
	for _, f := range s.Flags {
		if f == name {
			return true
		}
	}
	return false
}
