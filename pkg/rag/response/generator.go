package response

import (
	"context"
	"errors"
	"time"

	"line-rag-assistant/internal/constant"
	"line-rag-assistant/internal/pkg/logger"
	"line-rag-assistant/pkg/llm"
	"line-rag-assistant/pkg/rag"
)

// Config tunes the generation caller. MaxReplyLength is the chat platform's
// user-facing limit; anything longer gets cut with a truncation marker.
type Config struct {
	Temperature     float64
	MaxOutputTokens int
	MaxReplyLength  int
	MaxRetries      int
	RetryBaseDelay  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Temperature:     0.5,
		MaxOutputTokens: 500,
		MaxReplyLength:  2000,
		MaxRetries:      3,
		RetryBaseDelay:  2 * time.Second,
	}
}

// Generator owns the retry/backoff/truncation contract around the remote
// generation call. Answer never returns an error: every failure path ends in
// a fixed, non-technical user-facing string.
type Generator struct {
	provider llm.LLMProvider
	config   Config
	logger   logger.ILogger
	sleep    func(time.Duration)
}

func NewGenerator(provider llm.LLMProvider, config Config, log logger.ILogger) *Generator {
	if config.MaxRetries <= 0 {
		config.MaxRetries = DefaultConfig().MaxRetries
	}
	if config.MaxReplyLength <= 0 {
		config.MaxReplyLength = DefaultConfig().MaxReplyLength
	}
	return &Generator{
		provider: provider,
		config:   config,
		logger:   log,
		sleep:    time.Sleep,
	}
}

// Answer executes the policy decision against the LLM. Transient provider
// errors are retried with exponential backoff (base delay doubling per
// attempt, bounded attempt count). Empty or blocked output is not retried:
// the call itself succeeded.
func (g *Generator) Answer(ctx context.Context, decision rag.Decision) string {
	delay := g.config.RetryBaseDelay

	for attempt := 1; attempt <= g.config.MaxRetries; attempt++ {
		answer, err := g.provider.Generate(
			ctx,
			decision.Prompt,
			llm.WithSystemInstruction(decision.Instruction),
			llm.WithWebSearch(decision.UseWebSearch),
			llm.WithTemperature(g.config.Temperature),
			llm.WithMaxOutputTokens(g.config.MaxOutputTokens),
		)
		if err == nil {
			return g.truncate(answer)
		}

		if errors.Is(err, llm.ErrEmptyCompletion) {
			g.logger.Warn("generator", "llm returned empty or blocked output", nil)
			return constant.ReplyUnknownError
		}

		g.logger.Warn("generator", "llm call failed", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})

		if attempt < g.config.MaxRetries {
			g.sleep(delay)
			delay *= 2
		}
	}

	return constant.ReplyGenerationBusy
}

func (g *Generator) truncate(answer string) string {
	runes := []rune(answer)
	if len(runes) <= g.config.MaxReplyLength {
		return answer
	}
	return string(runes[:g.config.MaxReplyLength]) + constant.ReplyTruncationMarker
}
