package mcpadapter

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/acmelabs/moderation-agent/internal/mediatype"
	"github.com/acmelabs/moderation-agent/internal/models"
	"github.com/acmelabs/moderation-agent/internal/moderator"
)

// ModerateTextInput is the MCP tool input schema for text moderation.
type ModerateTextInput struct {
	Text string `json:"text" jsonschema:"text to moderate"`
}

// ModerateMediaInput is the MCP tool input schema for media moderation.
type ModerateMediaInput struct {
	Data string `json:"data" jsonschema:"base64-encoded file content"`
}

// NewModerateTextHandler returns a tool handler that uses the given moderator.
// Pass the returned function to mcp.AddTool.
func NewModerateTextHandler(mod *moderator.Moderator) func(context.Context, *mcp.CallToolRequest, ModerateTextInput) (*mcp.CallToolResult, moderator.Outcome, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ModerateTextInput) (*mcp.CallToolResult, moderator.Outcome, error) {
		return ModerateText(ctx, mod, req, input)
	}
}

// ModerateText runs text moderation and returns the outcome.
func ModerateText(
	ctx context.Context,
	mod *moderator.Moderator,
	req *mcp.CallToolRequest,
	input ModerateTextInput,
) (*mcp.CallToolResult, moderator.Outcome, error) {
	if input.Text == "" {
		return nil, moderator.Outcome{}, fmt.Errorf("text is required")
	}

	outcome, err := mod.Moderate(ctx, models.Input{
		Modality: models.ModalityText,
		Text:     input.Text,
	})
	return nil, outcome, err
}

// NewModerateMediaHandler returns a tool handler for media moderation.
// Pass the returned function to mcp.AddTool.
func NewModerateMediaHandler(mod *moderator.Moderator) func(context.Context, *mcp.CallToolRequest, ModerateMediaInput) (*mcp.CallToolResult, moderator.Outcome, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ModerateMediaInput) (*mcp.CallToolResult, moderator.Outcome, error) {
		return ModerateMedia(ctx, mod, req, input)
	}
}

// ModerateMedia decodes the payload, detects its media type and runs the
// matching moderation agent.
func ModerateMedia(
	ctx context.Context,
	mod *moderator.Moderator,
	req *mcp.CallToolRequest,
	input ModerateMediaInput,
) (*mcp.CallToolResult, moderator.Outcome, error) {
	data, err := base64.StdEncoding.DecodeString(input.Data)
	if err != nil {
		return nil, moderator.Outcome{}, fmt.Errorf("data is not valid base64: %w", err)
	}

	mime, modality, err := mediatype.Detect(data)
	if err != nil {
		return nil, moderator.Outcome{}, err
	}

	outcome, err := mod.Moderate(ctx, models.Input{
		Modality:  modality,
		Media:     data,
		MediaType: mime,
	})
	return nil, outcome, err
}
