package llm

// MediaPart is a binary attachment forwarded to the model alongside the
// prompt. The bytes are passed through as-is; no decoding happens here.
type MediaPart struct {
	MIMEType string
	Data     []byte
}

type LLMRequest struct {
	Prompt      string
	Media       []MediaPart
	MaxTokens   int
	Temperature float64
}

type LLMResponse struct {
	Content    string
	StopReason string
}
