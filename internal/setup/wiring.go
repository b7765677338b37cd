package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/acmelabs/moderation-agent/internal/agent"
	"github.com/acmelabs/moderation-agent/internal/config"
	"github.com/acmelabs/moderation-agent/internal/customer"
	"github.com/acmelabs/moderation-agent/internal/llm"
	"github.com/acmelabs/moderation-agent/internal/llm/bedrock"
	"github.com/acmelabs/moderation-agent/internal/llm/gpt"
	"github.com/acmelabs/moderation-agent/internal/moderator"
	"github.com/acmelabs/moderation-agent/internal/policy"
	"github.com/acmelabs/moderation-agent/internal/tracing"
)

type Config struct {
	AWSRegion       string
	ClaudeModelID   string
	OpenAIKey       string
	OpenAIModelID   string
	DefaultProvider string

	APIKey  string
	APIPort string

	EvalRepeats int

	TracingEnabled bool
	OTLPEndpoint   string
	ServiceName    string
	SampleRate     float64

	RedisAddr     string
	RedisPassword string
}

type Dependencies struct {
	Registry  *agent.Registry
	Policy    *policy.Policy
	Moderator *moderator.Moderator
	Customer  *customer.Agent
	Logger    *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID:   getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:       getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID:   getEnv("OPEN_AI_MODEL_ID", ""),
		DefaultProvider: getEnv("DEFAULT_LLM_PROVIDER", "bedrock"),
		APIKey:          getEnv("USER_API_KEY", ""),
		APIPort:         getEnv("MODERATION_API_PORT", "18080"),
		EvalRepeats:     getEnvInt("EVAL_REPEATS", 3),
		TracingEnabled:  getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:    getEnv("OTLP_ENDPOINT", "localhost:4317"),
		ServiceName:     getEnv("SERVICE_NAME", "moderation-agent"),
		SampleRate:      getEnvFloat("TRACE_SAMPLE_RATE", 1.0),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
	}
}

func (c *Config) TracingConfig() tracing.Config {
	return tracing.Config{
		Enabled:      c.TracingEnabled,
		ServiceName:  c.ServiceName,
		OTLPEndpoint: c.OTLPEndpoint,
		SampleRate:   c.SampleRate,
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createLLMClient(ctx, cfg.DefaultProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	// Load agents configuration from YAML
	agentsConfig, err := config.LoadAgentsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load agents config: %w", err)
	}

	// Moderation agents, one per modality
	registry, err := agent.NewRegistry(agentsConfig, llmClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build agents from config: %w", err)
	}

	// Unsafe-flag policy
	pol := policy.NewPolicy(agentsConfig)

	// Moderator
	mod := moderator.New(registry, pol, logger)

	// Simulated customer for the training chat
	cust := customer.New(llmClient, agentsConfig.Agents.DefaultModel, logger)

	return &Dependencies{
		Registry:  registry,
		Policy:    pol,
		Moderator: mod,
		Customer:  cust,
		Logger:    logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		value = defaultValue
	}

	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		value = defaultValue
	}

	return value
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.LLMClient, error) {
	switch provider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	default:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	}
}
