package policy

import (
	"fmt"

	"github.com/acmelabs/moderation-agent/internal/config"
	"github.com/acmelabs/moderation-agent/internal/models"
)

// Policy turns a validated moderation result into a block/forward
// decision using the per-modality unsafe-flag lists from configuration.
type Policy struct {
	unsafeFlags map[models.Modality][]string
}

func NewPolicy(cfg *config.AgentsConfig) *Policy {
	unsafe := make(map[models.Modality][]string)
	for _, m := range cfg.Agents.Moderators {
		unsafe[models.Modality(m.Modality)] = m.UnsafeFlags
	}

	return &Policy{unsafeFlags: unsafe}
}

// Decide returns the decision for a result plus the feedback shown to
// the trainee. Audio feedback is prefixed with the transcription so the
// reviewer sees what the model heard.
func (p *Policy) Decide(result models.Result) (models.Decision, string) {
	feedback := result.Rationale
	if result.Modality == models.ModalityAudio && result.Transcription != "" {
		feedback = fmt.Sprintf("Transcription: %q\n\n%s", result.Transcription, result.Rationale)
	}

	for _, flag := range p.unsafeFlags[result.Modality] {
		if result.Flags[flag] {
			return models.DecisionBlocked, feedback
		}
	}

	return models.DecisionForwarded, feedback
}
