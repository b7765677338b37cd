package models

import (
	"strings"
	"time"
)

type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
	ModalityAudio Modality = "audio"
	ModalityVideo Modality = "video"
)

// ModalityFromMIME maps a media MIME type to the modality that moderates
// it. Text never arrives as a file, so "text/*" is not mapped.
func ModalityFromMIME(mimeType string) (Modality, bool) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return ModalityImage, true
	case strings.HasPrefix(mimeType, "audio/"):
		return ModalityAudio, true
	case strings.HasPrefix(mimeType, "video/"):
		return ModalityVideo, true
	default:
		return "", false
	}
}

type Decision string

const (
	DecisionBlocked   Decision = "blocked"
	DecisionForwarded Decision = "forwarded"
)

type Speaker string

const (
	SpeakerTrainee  Speaker = "trainee"
	SpeakerCustomer Speaker = "customer"
)

type TurnState string

const (
	TurnStatePending  TurnState = "pending"
	TurnStateResolved TurnState = "resolved"
)

// Input is the raw content handed to a moderation agent. Text inputs
// carry Text only; media inputs carry raw bytes plus MIME type and are
// forwarded to the LLM endpoint without decoding.
type Input struct {
	Modality  Modality
	Text      string
	Media     []byte
	MediaType string
}

// Result is a validated moderation outcome. Flags holds exactly the
// boolean safety flags of the modality's schema; Transcription is set
// only for audio. Immutable once produced by an agent.
type Result struct {
	Modality      Modality        `json:"modality"`
	Flags         map[string]bool `json:"flags"`
	Rationale     string          `json:"rationale"`
	Transcription string          `json:"transcription,omitempty"`
}

// Turn is one entry in a session's append-only conversation log.
// Content is the displayed content: for blocked turns it is the block
// placeholder, never the original input.
type Turn struct {
	Speaker   Speaker   `json:"speaker"`
	Content   string    `json:"content"`
	State     TurnState `json:"state"`
	Decision  Decision  `json:"decision,omitempty"`
	Feedback  string    `json:"feedback,omitempty"`
	Result    *Result   `json:"result,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Input message for the text moderation endpoint
type TextModerationRequest struct {
	Text string `json:"text"`
}

// ModerationEvent is the message consumed from the moderation stream.
// Media bytes travel base64-encoded inside the JSON payload.
type ModerationEvent struct {
	EventID   string   `json:"event_id"`
	Modality  Modality `json:"modality"`
	Text      string   `json:"text,omitempty"`
	Media     []byte   `json:"media,omitempty"`
	MediaType string   `json:"media_type,omitempty"`
}
