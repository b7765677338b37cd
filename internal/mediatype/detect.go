package mediatype

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"

	"github.com/acmelabs/moderation-agent/internal/models"
)

// MaxFileSize caps uploads at 5 MB, matching what the chat surface
// accepts.
const MaxFileSize = 5 << 20

var ErrFileTooLarge = fmt.Errorf("file exceeds %d bytes", MaxFileSize)

// Detect sniffs the MIME type of an uploaded file and maps it to the
// modality that moderates it. Unsupported types and oversized files are
// rejected before any LLM call is made.
func Detect(data []byte) (string, models.Modality, error) {
	if len(data) == 0 {
		return "", "", fmt.Errorf("empty file")
	}
	if len(data) > MaxFileSize {
		return "", "", ErrFileTooLarge
	}

	mime := mimetype.Detect(data).String()
	modality, ok := models.ModalityFromMIME(mime)
	if !ok {
		return "", "", fmt.Errorf("unsupported media type %s", mime)
	}

	return mime, modality, nil
}
