package rag

import (
	"context"
	"strings"

	"line-rag-assistant/internal/constant"
)

// Decision is what the response policy hands to the generation caller: a
// system instruction, the retrieved context, whether the open-domain search
// tool may be used, and the final prompt.
type Decision struct {
	Instruction  string
	Context      string
	UseWebSearch bool
	Prompt       string
}

// Querier is the retrieval dependency of the policy, satisfied by Retriever.
type Querier interface {
	Query(ctx context.Context, text string) Result
}

// Policy turns a user question into a generation decision. Search is
// suppressed only when the local knowledge base answered with high
// confidence; everything else (low confidence, empty store, failed
// embedding) keeps the open-domain fallback available.
type Policy struct {
	retriever Querier
}

func NewPolicy(retriever Querier) *Policy {
	return &Policy{retriever: retriever}
}

func (p *Policy) Build(ctx context.Context, userText string) Decision {
	result := p.retriever.Query(ctx, userText)

	switch {
	case result.Context != "" && result.HighConfidence:
		return Decision{
			Instruction:  constant.InstructionStrictContextV1,
			Context:      result.Context,
			UseWebSearch: false,
			Prompt:       buildPrompt(result.Context, userText),
		}
	case result.Context != "":
		return Decision{
			Instruction:  constant.InstructionPreferContextV1,
			Context:      result.Context,
			UseWebSearch: true,
			Prompt:       buildPrompt(result.Context, userText),
		}
	default:
		return Decision{
			Instruction:  constant.InstructionGeneralAssistantV1,
			UseWebSearch: true,
			Prompt:       userText,
		}
	}
}

func buildPrompt(context, question string) string {
	var prompt strings.Builder
	prompt.WriteString("<context>\n")
	prompt.WriteString(context)
	prompt.WriteString("\n</context>\n\n<user_question>\n")
	prompt.WriteString(question)
	prompt.WriteString("\n</user_question>")
	return prompt.String()
}
