package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/acmelabs/moderation-agent/internal/api/middleware"
	"github.com/acmelabs/moderation-agent/internal/models"
	"github.com/acmelabs/moderation-agent/internal/moderator"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/moderate_text").
			To(handler.ModerateText).
			Doc("Moderate a text snippet").
			Metadata(restfulspec.KeyOpenAPITags, []string{"moderate"}).
			Consumes(restful.MIME_JSON).
			Reads(models.TextModerationRequest{}).
			Writes(moderator.Outcome{}).
			Returns(200, "OK", moderator.Outcome{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(502, "Upstream Moderation Failure", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/moderate_image_file").
			To(handler.ModerateImageFile).
			Doc("Moderate an uploaded image").
			Metadata(restfulspec.KeyOpenAPITags, []string{"moderate"}).
			Consumes("multipart/form-data").
			Writes(moderator.Outcome{}).
			Returns(200, "OK", moderator.Outcome{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(413, "File Too Large", middleware.ErrorResponse{}).
			Returns(502, "Upstream Moderation Failure", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/moderate_audio_file").
			To(handler.ModerateAudioFile).
			Doc("Moderate an uploaded audio file").
			Metadata(restfulspec.KeyOpenAPITags, []string{"moderate"}).
			Consumes("multipart/form-data").
			Writes(moderator.Outcome{}).
			Returns(200, "OK", moderator.Outcome{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(413, "File Too Large", middleware.ErrorResponse{}).
			Returns(502, "Upstream Moderation Failure", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/moderate_video_file").
			To(handler.ModerateVideoFile).
			Doc("Moderate an uploaded video").
			Metadata(restfulspec.KeyOpenAPITags, []string{"moderate"}).
			Consumes("multipart/form-data").
			Writes(moderator.Outcome{}).
			Returns(200, "OK", moderator.Outcome{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(413, "File Too Large", middleware.ErrorResponse{}).
			Returns(502, "Upstream Moderation Failure", middleware.ErrorResponse{}))

	container.Add(ws)
}
