package response

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"line-rag-assistant/internal/constant"
	"line-rag-assistant/internal/pkg/logger"
	"line-rag-assistant/pkg/llm"
	"line-rag-assistant/pkg/rag"
)

// scriptedProvider replays one answer/error pair per Generate call, repeating
// the last entry once the script runs out.
type scriptedProvider struct {
	script []struct {
		answer string
		err    error
	}
	calls   int
	options []llm.Options
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := llm.Options{}
	for _, opt := range options {
		opt(&opts)
	}
	p.options = append(p.options, opts)

	idx := p.calls
	if idx >= len(p.script) {
		idx = len(p.script) - 1
	}
	p.calls++
	return p.script[idx].answer, p.script[idx].err
}

func newTestGenerator(provider llm.LLMProvider) (*Generator, *[]time.Duration) {
	g := NewGenerator(provider, DefaultConfig(), logger.NewNopLogger())
	slept := &[]time.Duration{}
	g.sleep = func(d time.Duration) {
		*slept = append(*slept, d)
	}
	return g, slept
}

func TestAnswerRetriesWithDoublingDelay(t *testing.T) {
	provider := &scriptedProvider{script: []struct {
		answer string
		err    error
	}{
		{err: errors.New("transient")},
		{err: errors.New("transient")},
		{answer: "final answer"},
	}}
	g, slept := newTestGenerator(provider)

	got := g.Answer(context.Background(), rag.Decision{Prompt: "hello"})

	assert.Equal(t, "final answer", got)
	assert.Equal(t, 3, provider.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *slept)
}

func TestAnswerGivesUpAfterMaxRetries(t *testing.T) {
	provider := &scriptedProvider{script: []struct {
		answer string
		err    error
	}{
		{err: errors.New("transient")},
	}}
	g, slept := newTestGenerator(provider)

	got := g.Answer(context.Background(), rag.Decision{Prompt: "hello"})

	assert.Equal(t, constant.ReplyGenerationBusy, got)
	assert.Equal(t, 3, provider.calls)
	// No sleep after the final attempt.
	assert.Len(t, *slept, 2)
}

func TestAnswerEmptyCompletionIsNotRetried(t *testing.T) {
	provider := &scriptedProvider{script: []struct {
		answer string
		err    error
	}{
		{err: llm.ErrEmptyCompletion},
	}}
	g, slept := newTestGenerator(provider)

	got := g.Answer(context.Background(), rag.Decision{Prompt: "hello"})

	assert.Equal(t, constant.ReplyUnknownError, got)
	assert.Equal(t, 1, provider.calls)
	assert.Empty(t, *slept)
}

func TestAnswerTruncatesLongReplies(t *testing.T) {
	long := strings.Repeat("字", 2001)
	provider := &scriptedProvider{script: []struct {
		answer string
		err    error
	}{
		{answer: long},
	}}
	g, _ := newTestGenerator(provider)

	got := g.Answer(context.Background(), rag.Decision{Prompt: "hello"})

	require.True(t, strings.HasSuffix(got, constant.ReplyTruncationMarker))
	body := strings.TrimSuffix(got, constant.ReplyTruncationMarker)
	assert.Equal(t, 2000, len([]rune(body)))
}

func TestAnswerKeepsRepliesAtLimitUntouched(t *testing.T) {
	exact := strings.Repeat("字", 2000)
	provider := &scriptedProvider{script: []struct {
		answer string
		err    error
	}{
		{answer: exact},
	}}
	g, _ := newTestGenerator(provider)

	got := g.Answer(context.Background(), rag.Decision{Prompt: "hello"})

	assert.Equal(t, exact, got)
}

func TestAnswerForwardsDecisionToProvider(t *testing.T) {
	provider := &scriptedProvider{script: []struct {
		answer string
		err    error
	}{
		{answer: "ok"},
	}}
	g, _ := newTestGenerator(provider)

	decision := rag.Decision{
		Instruction:  "answer from context",
		UseWebSearch: false,
		Prompt:       "wrapped prompt",
	}
	g.Answer(context.Background(), decision)

	require.Len(t, provider.options, 1)
	opts := provider.options[0]
	assert.Equal(t, "answer from context", opts.SystemInstruction)
	assert.False(t, opts.EnableWebSearch)
	assert.Equal(t, DefaultConfig().Temperature, opts.Temperature)
	assert.Equal(t, DefaultConfig().MaxOutputTokens, opts.MaxOutputTokens)
}
