package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"line-rag-assistant/internal/constant"
)

// stubQuerier returns a canned retrieval result.
type stubQuerier struct {
	result Result
}

func (s *stubQuerier) Query(ctx context.Context, text string) Result {
	return s.result
}

func TestPolicyBuild(t *testing.T) {
	tests := []struct {
		name            string
		result          Result
		wantInstruction string
		wantWebSearch   bool
	}{
		{
			name: "high confidence context answers from context only",
			result: Result{
				Matches:        []Match{{Distance: 0.1, Content: "營業時間"}},
				Context:        "營業時間",
				HighConfidence: true,
			},
			wantInstruction: constant.InstructionStrictContextV1,
			wantWebSearch:   false,
		},
		{
			name: "low confidence context keeps search available",
			result: Result{
				Matches:        []Match{{Distance: 0.8, Content: "營業時間"}},
				Context:        "營業時間",
				HighConfidence: false,
			},
			wantInstruction: constant.InstructionPreferContextV1,
			wantWebSearch:   true,
		},
		{
			name:            "no context falls back to general assistant",
			result:          Result{},
			wantInstruction: constant.InstructionGeneralAssistantV1,
			wantWebSearch:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPolicy(&stubQuerier{result: tt.result})

			decision := p.Build(context.Background(), "問題")

			assert.Equal(t, tt.wantInstruction, decision.Instruction)
			assert.Equal(t, tt.wantWebSearch, decision.UseWebSearch)
			assert.Equal(t, tt.result.Context, decision.Context)
		})
	}
}

func TestPolicyBuildPromptWrapsContext(t *testing.T) {
	p := NewPolicy(&stubQuerier{result: Result{
		Context:        "工作時間是週一到週五。",
		HighConfidence: true,
	}})

	decision := p.Build(context.Background(), "幾點上班？")

	assert.Contains(t, decision.Prompt, "<context>\n工作時間是週一到週五。\n</context>")
	assert.Contains(t, decision.Prompt, "<user_question>\n幾點上班？\n</user_question>")
}

func TestPolicyBuildNoContextPromptIsRawQuestion(t *testing.T) {
	p := NewPolicy(&stubQuerier{result: Result{}})

	decision := p.Build(context.Background(), "幾點上班？")

	assert.Equal(t, "幾點上班？", decision.Prompt)
}
