package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/acmelabs/moderation-agent/internal/agent"
	"github.com/acmelabs/moderation-agent/internal/api"
	"github.com/acmelabs/moderation-agent/internal/api/middleware"
	"github.com/acmelabs/moderation-agent/internal/models"
	"github.com/acmelabs/moderation-agent/internal/moderator"
)

// stubModerator returns a canned outcome without touching any LLM.
type stubModerator struct {
	outcome   moderator.Outcome
	err       error
	lastInput models.Input
}

func (s *stubModerator) Moderate(ctx context.Context, input models.Input) (moderator.Outcome, error) {
	s.lastInput = input
	return s.outcome, s.err
}

func setupTestAPI(t *testing.T, mod api.ModerationService) *restful.Container {
	t.Helper()

	logger := zerolog.Nop()
	container := restful.NewContainer()
	api.RegisterRoutes(container, api.NewHandler(mod, &logger))
	return container
}

func forwardedTextOutcome() moderator.Outcome {
	return moderator.Outcome{
		Result: models.Result{
			Modality:  models.ModalityText,
			Flags:     map[string]bool{"is_unfriendly": false, "is_unprofessional": false, "contains_pii": false},
			Rationale: "Polite and professional.",
		},
		Decision: models.DecisionForwarded,
	}
}

func TestAPI_Health(t *testing.T) {
	container := setupTestAPI(t, &stubModerator{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestAPI_ModerateText(t *testing.T) {
	stub := &stubModerator{outcome: forwardedTextOutcome()}
	container := setupTestAPI(t, stub)

	body, _ := json.Marshal(models.TextModerationRequest{Text: "Hi! How can I help you today?"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderate_text", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	var outcome moderator.Outcome
	if err := json.Unmarshal(recorder.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if outcome.Decision != models.DecisionForwarded {
		t.Errorf("Expected forwarded, got %s", outcome.Decision)
	}

	if stub.lastInput.Modality != models.ModalityText {
		t.Errorf("Expected text input, got %s", stub.lastInput.Modality)
	}
	if stub.lastInput.Text != "Hi! How can I help you today?" {
		t.Errorf("Unexpected input text: %q", stub.lastInput.Text)
	}
}

func TestAPI_ModerateText_EmptyBody(t *testing.T) {
	container := setupTestAPI(t, &stubModerator{})

	body, _ := json.Marshal(models.TextModerationRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderate_text", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty text, got %d", recorder.Code)
	}
}

func TestAPI_ModerateText_ValidationFailure(t *testing.T) {
	stub := &stubModerator{
		err: &agent.ValidationError{Modality: models.ModalityText, Field: "rationale", Detail: "missing"},
	}
	container := setupTestAPI(t, stub)

	body, _ := json.Marshal(models.TextModerationRequest{Text: "hello"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderate_text", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502 for validation failure, got %d", recorder.Code)
	}

	var errResp middleware.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if errResp.Error == "" {
		t.Error("Expected error message in response")
	}
}

func TestAPI_ModerateText_AgentNotFound(t *testing.T) {
	stub := &stubModerator{err: agent.ErrAgentNotFound}
	container := setupTestAPI(t, stub)

	body, _ := json.Marshal(models.TextModerationRequest{Text: "hello"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderate_text", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", recorder.Code)
	}
}

func multipartFile(t *testing.T, fieldName, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52}

func TestAPI_ModerateImageFile(t *testing.T) {
	stub := &stubModerator{
		outcome: moderator.Outcome{
			Result: models.Result{
				Modality:  models.ModalityImage,
				Flags:     map[string]bool{"contains_pii": false, "is_disturbing": false, "is_low_quality": false},
				Rationale: "Clean product photo.",
			},
			Decision: models.DecisionForwarded,
		},
	}
	container := setupTestAPI(t, stub)

	body, contentType := multipartFile(t, "file", "photo.png", pngHeader)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderate_image_file", body)
	req.Header.Set("Content-Type", contentType)

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}
	if stub.lastInput.Modality != models.ModalityImage {
		t.Errorf("Expected image input, got %s", stub.lastInput.Modality)
	}
	if stub.lastInput.MediaType != "image/png" {
		t.Errorf("Expected image/png, got %s", stub.lastInput.MediaType)
	}
}

func TestAPI_ModerateImageFile_MissingFile(t *testing.T) {
	container := setupTestAPI(t, &stubModerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderate_image_file", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing file, got %d", recorder.Code)
	}
}

func TestAPI_ModerateAudioFile_WrongModality(t *testing.T) {
	container := setupTestAPI(t, &stubModerator{})

	// PNG uploaded to the audio endpoint is rejected before moderation.
	body, contentType := multipartFile(t, "file", "photo.png", pngHeader)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderate_audio_file", body)
	req.Header.Set("Content-Type", contentType)

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for modality mismatch, got %d", recorder.Code)
	}
}

func TestAPI_UpstreamFailure(t *testing.T) {
	stub := &stubModerator{err: errors.New("bedrock timeout")}
	container := setupTestAPI(t, stub)

	body, _ := json.Marshal(models.TextModerationRequest{Text: "hello"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/moderate_text", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", recorder.Code)
	}
}
