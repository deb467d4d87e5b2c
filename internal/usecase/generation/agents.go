package generation

import (
	"context"
	"fmt"
	"strings"
)

const plannerSystemPrompt = `You are an expert UX architect and website planner.
Your role is to analyze user requirements and create a detailed plan for a React + TypeScript website.

Output a structured plan including:
1. Overall layout structure
2. Section breakdown (Hero, Features, etc.)
3. Component hierarchy
4. UX strategy and user flow
5. Design recommendations

Be specific and actionable. Focus on premium, modern web design patterns.`

const copywriterSystemPrompt = `You are an expert copywriter and marketing specialist.
Your role is to create compelling, conversion-focused copy for websites.

Generate:
1. Powerful headlines and subheadlines
2. Engaging hero section copy
3. Feature descriptions that sell benefits
4. Clear, action-oriented CTA button text
5. Microcopy for various sections

Write in a premium, professional tone. Focus on clarity and conversion.`

const coderSystemPrompt = `You are an expert React + TypeScript developer.
Your role is to generate clean, production-ready React components.

Requirements:
- Use React functional components with TypeScript
- Use proper TypeScript interfaces and types
- Include inline styles or CSS modules
- Follow best practices (hooks, props, composition)
- Generate complete, runnable components
- Use modern React patterns

Output only the code, properly formatted and ready to use.`

// agent binds a system prompt and a prompt-assembly rule to the connector.
type agent struct {
	name         string
	systemPrompt string
	buildPrompt  func(brief, plan, copyText string) string
}

var (
	plannerAgent = agent{
		name:         "planner",
		systemPrompt: plannerSystemPrompt,
		buildPrompt: func(brief, _, _ string) string {
			return fmt.Sprintf(`Create a detailed website plan for the following request:

%s

Provide a comprehensive plan covering layout, sections, components, and UX strategy.`, brief)
		},
	}

	copywriterAgent = agent{
		name:         "copywriter",
		systemPrompt: copywriterSystemPrompt,
		buildPrompt: func(brief, _, _ string) string {
			return fmt.Sprintf(`Create premium marketing copy for the following website:

%s

Provide:
- Hero headline and subheadline
- Feature section titles and descriptions
- CTA button text
- Any other relevant microcopy

Make it compelling and conversion-focused.`, brief)
		},
	}

	coderAgent = agent{
		name:         "coder",
		systemPrompt: coderSystemPrompt,
		buildPrompt:  buildCoderPrompt,
	}
)

// buildCoderPrompt appends the plan and copy as labeled sections when present.
func buildCoderPrompt(brief, plan, copyText string) string {
	var b strings.Builder
	b.WriteString("Generate React + TypeScript components for:\n\n")
	b.WriteString(brief)

	if plan != "" {
		b.WriteString("\n\nArchitecture Plan:\n")
		b.WriteString(plan)
	}

	if copyText != "" {
		b.WriteString("\n\nMarketing Copy:\n")
		b.WriteString(copyText)
	}

	b.WriteString(`

Generate complete React TSX components including:
1. Main App.tsx
2. Individual section components (Hero, Features, etc.)
3. Proper TypeScript interfaces
4. Inline styles or CSS

Provide clean, production-ready code.`)

	return b.String()
}

func (a agent) run(ctx context.Context, llm LLMConnector, model, brief, plan, copyText string) (string, error) {
	out, err := llm.Generate(ctx, model, a.buildPrompt(brief, plan, copyText), a.systemPrompt)
	if err != nil {
		return "", fmt.Errorf("%s agent: %w", a.name, err)
	}
	return out, nil
}
