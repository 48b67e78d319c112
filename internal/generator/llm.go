package generator

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"sensefp/internal/fingerprint"
	"sensefp/internal/logging"
	"sensefp/internal/services"
	"sensefp/internal/services/llm"
)

const stageGenerate = "generate"

// Completer is the JSON chat completion call the LLM generator depends on.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// LLM generates fingerprints through a chat completion model.
type LLM struct {
	client Completer
	cfg    Config
	prompt string
	logger *slog.Logger
}

// NewLLM validates cfg and renders its system prompt once.
func NewLLM(client Completer, cfg Config, logger *slog.Logger) (*LLM, error) {
	if client == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageGenerate, "init", "llm client is required", nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, stageGenerate, "init", "", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LLM{
		client: client,
		cfg:    cfg,
		prompt: SystemPrompt(cfg),
		logger: logging.NewComponentLogger(logger, "generator"),
	}, nil
}

// Generate implements Generator.
func (g *LLM) Generate(ctx context.Context, in Input) (fingerprint.Result, error) {
	if strings.TrimSpace(in.Text) == "" {
		return fingerprint.Result{}, services.Wrap(services.ErrValidation, stageGenerate, "input", "text is required", nil)
	}
	logger := logging.WithContext(ctx, g.logger)

	raw, err := g.client.CompleteJSON(ctx, g.prompt, userPrompt(in))
	if err != nil {
		return fingerprint.Result{}, classifyCompletionError(err)
	}

	var result fingerprint.Result
	if err := llm.DecodeLLMJSON(raw, &result); err != nil {
		return fingerprint.Result{}, services.Wrap(
			services.ErrExternal,
			stageGenerate,
			"decode response",
			"payload snippet: "+llm.SummarizePayloadSnippet(raw),
			err,
		)
	}

	for _, issue := range fingerprint.Inspect(result) {
		logger.Debug("fingerprint quirk",
			logging.String(logging.FieldEventType, "fingerprint_issue"),
			logging.String("issue", string(issue.Kind)),
			logging.String("detail", issue.String()),
		)
	}
	if result.Empty() {
		logger.Warn("model returned an empty fingerprint",
			logging.String(logging.FieldEventType, "fingerprint_empty"),
			logging.String(logging.FieldErrorHint, "retry the input or add context"),
		)
	}
	logger.Debug("fingerprint generated",
		logging.Int("words", result.Len()),
		logging.String("model", g.cfg.Model),
	)
	return result, nil
}

func classifyCompletionError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return services.Wrap(services.ErrTimeout, stageGenerate, "complete", "model request timed out", err)
	case errors.Is(err, llm.ErrMissingAPIKey):
		return services.Wrap(services.ErrConfiguration, stageGenerate, "complete", "", err)
	default:
		return services.Wrap(services.ErrExternal, stageGenerate, "complete", "model request failed", err)
	}
}
