package usecase

import (
	"context"
	"fmt"
	"strings"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/dialogue"
	"timesheet-assistant/internal/extractor"
	"timesheet-assistant/internal/model"
	"timesheet-assistant/pkg/llmprovider"
)

// ContentGenerator is satisfied by *llmprovider.Manager.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

type llmGenerator struct {
	llm     ContentGenerator
	options conversation.OptionSource
}

// NewGenerator adapts an LLM provider chain to the conversation Generator.
// The system prompt lists the current option vocabularies and asks for the
// structured summary block the extractor reads.
func NewGenerator(llm ContentGenerator, options conversation.OptionSource) conversation.Generator {
	return &llmGenerator{llm: llm, options: options}
}

func (g *llmGenerator) Generate(ctx context.Context, history []model.Turn) (string, error) {
	var opts dialogue.Options
	if g.options != nil {
		opts = g.options.Options(ctx)
	}

	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  string(model.RoleSystem),
			Parts: []llmprovider.Part{{Text: SystemPrompt(opts)}},
		},
		Temperature: 0.4,
		MaxTokens:   600,
	}
	for _, t := range history {
		if t.Role == model.RoleSystem {
			continue
		}
		req.Messages = append(req.Messages, llmprovider.Message{
			Role:  string(t.Role),
			Parts: []llmprovider.Part{{Text: t.Content}},
		})
	}

	resp, err := g.llm.GenerateContent(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	var b strings.Builder
	for _, p := range resp.Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String()), nil
}

// SystemPrompt is the instruction sent ahead of every open-ended exchange.
func SystemPrompt(opts dialogue.Options) string {
	list := func(items []string) string {
		if len(items) == 0 {
			return "(any)"
		}
		return strings.Join(items, ", ")
	}

	var b strings.Builder
	b.WriteString("You are a helpful assistant for a time tracking application. Guide the user through logging one time entry in a friendly, conversational way.\n\n")
	b.WriteString("Collect: what task they worked on, how long it took, whether it was billable, non-billable or personal work, ")
	b.WriteString("the matter/client and cost centre for billable work, the business area and subcategory for non-billable work, ")
	b.WriteString("how they feel about the task, its energy impact, and what they want to do with this kind of task in the future.\n\n")
	fmt.Fprintf(&b, "Available matters/clients: %s\n", list(opts.Matters))
	fmt.Fprintf(&b, "Available cost centres: %s\n", list(opts.CostCentres))
	fmt.Fprintf(&b, "Available business areas: %s\n", list(opts.BusinessAreas))
	fmt.Fprintf(&b, "Available subcategories: %s\n\n", list(opts.Subcategories))
	b.WriteString("When you have everything, end your message with exactly this block:\n\n")
	b.WriteString(extractor.SummaryHeader + "\n")
	b.WriteString("- Task: [description]\n")
	b.WriteString("- Duration: [X] minutes\n")
	b.WriteString("- Matter/Client: [selected from available options]\n")
	b.WriteString("- Cost Centre: [selected from available options]\n")
	b.WriteString("- Business Area: [selected from available options]\n")
	b.WriteString("- Subcategory: [selected from available options]\n")
	b.WriteString("- Work Type: [billable/non_billable/personal]\n")
	b.WriteString("- Enjoyment: [high/neutral/low]\n")
	b.WriteString("- Energy Impact: [energizing/neutral/draining]\n")
	b.WriteString("- Goal: [main objective]\n\n")
	b.WriteString("Ask a clarifying question whenever an answer is unclear.")
	return b.String()
}
