package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"

	"github.com/acmelabs/moderation-agent/internal/agent"
	"github.com/acmelabs/moderation-agent/internal/api/middleware"
	"github.com/acmelabs/moderation-agent/internal/mediatype"
	"github.com/acmelabs/moderation-agent/internal/models"
	"github.com/acmelabs/moderation-agent/internal/moderator"
)

// ModerationService resolves an input into a moderation outcome.
type ModerationService interface {
	Moderate(ctx context.Context, input models.Input) (moderator.Outcome, error)
}

type Handler struct {
	moderator ModerationService
	logger    *zerolog.Logger
}

func NewHandler(mod ModerationService, logger *zerolog.Logger) *Handler {
	return &Handler{
		moderator: mod,
		logger:    logger,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// POST /api/v1/moderate_text
// Body: TextModerationRequest
// Returns: moderator.Outcome
func (h *Handler) ModerateText(req *restful.Request, resp *restful.Response) {
	var textRequest models.TextModerationRequest
	if err := req.ReadEntity(&textRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if textRequest.Text == "" {
		middleware.HandleError(resp, fmt.Errorf("text is required"), http.StatusBadRequest)
		return
	}

	h.moderate(req, resp, models.Input{
		Modality: models.ModalityText,
		Text:     textRequest.Text,
	})
}

// POST /api/v1/moderate_image_file
func (h *Handler) ModerateImageFile(req *restful.Request, resp *restful.Response) {
	h.moderateMediaFile(req, resp, models.ModalityImage)
}

// POST /api/v1/moderate_audio_file
func (h *Handler) ModerateAudioFile(req *restful.Request, resp *restful.Response) {
	h.moderateMediaFile(req, resp, models.ModalityAudio)
}

// POST /api/v1/moderate_video_file
func (h *Handler) ModerateVideoFile(req *restful.Request, resp *restful.Response) {
	h.moderateMediaFile(req, resp, models.ModalityVideo)
}

func (h *Handler) moderateMediaFile(req *restful.Request, resp *restful.Response, want models.Modality) {
	file, _, err := req.Request.FormFile("file")
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read uploaded file")
		middleware.HandleError(resp, fmt.Errorf("file field is required"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, mediatype.MaxFileSize+1))
	if err != nil {
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	mime, modality, err := mediatype.Detect(data)
	if err != nil {
		if errors.Is(err, mediatype.ErrFileTooLarge) {
			middleware.HandleError(resp, err, http.StatusRequestEntityTooLarge)
			return
		}
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if modality != want {
		middleware.HandleError(resp, fmt.Errorf("file is %s but this endpoint moderates %s", modality, want), http.StatusBadRequest)
		return
	}

	h.moderate(req, resp, models.Input{
		Modality:  modality,
		Media:     data,
		MediaType: mime,
	})
}

func (h *Handler) moderate(req *restful.Request, resp *restful.Response, input models.Input) {
	h.logger.Info().
		Str("modality", string(input.Modality)).
		Msg("Start moderation")

	ctx := req.Request.Context()

	outcome, err := h.moderator.Moderate(ctx, input)
	if err != nil {
		var validationErr *agent.ValidationError
		switch {
		case errors.As(err, &validationErr):
			// The model replied, but not in the schema we demand.
			middleware.HandleError(resp, err, http.StatusBadGateway)
		case errors.Is(err, agent.ErrAgentNotFound):
			middleware.HandleError(resp, err, http.StatusNotFound)
		default:
			middleware.HandleError(resp, err, http.StatusBadGateway)
		}
		return
	}

	h.logger.Info().
		Str("modality", string(input.Modality)).
		Str("decision", string(outcome.Decision)).
		Msg("Moderation complete")

	resp.WriteHeaderAndEntity(http.StatusOK, outcome)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}
