package generation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vibecoding/vibe-backend/internal/entity"
)

const maxImprovements = 5

// Matched in declaration order; each captures the rest of the line.
var improvementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)recommends?:?\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)suggests?:?\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)consider:?\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)improvement:?\s*(.+?)(?:\n|$)`),
}

var defaultImprovements = []string{
	"Add smooth scroll animations",
	"Implement responsive design breakpoints",
	"Include accessibility features (ARIA labels)",
	"Add loading states for better UX",
}

const finalCodeHeader = `// Generated by Vibe-Coding Multi-Agent System
// This code incorporates insights from:
// - Planner Agent (Architecture)
// - Copywriter Agent (Marketing Copy)
// - Code Generator Agent (Implementation)`

const summaryTemplate = `✅ Multi-Agent Generation Complete

🧠 Planner Agent: Created architecture and UX strategy
✍️ Copywriter Agent: Generated premium marketing copy
⚡ Code Agent: Built %d+ React components

The final output includes:
- Complete React + TypeScript codebase
- Professional component structure
- Premium marketing copy integrated
- Extra improvements and recommendations
`

// Merge combines the three agent outputs into the response structure.
func Merge(plan, copyText, code string) *entity.MergedResult {
	return &entity.MergedResult{
		Plan:         plan,
		Copywriting:  copyText,
		Code:         code,
		FinalCode:    EnhanceCodeWithCopy(code, copyText),
		Improvements: ExtractImprovements(plan),
		Summary:      GenerateSummary(code),
	}
}

// ExtractImprovements collects suggestion lines from the plan. When nothing
// matches, the default list is returned instead. At most five entries are kept.
func ExtractImprovements(plan string) []string {
	var improvements []string
	for _, re := range improvementPatterns {
		for _, m := range re.FindAllStringSubmatch(plan, -1) {
			improvements = append(improvements, m[1])
		}
	}

	if len(improvements) == 0 {
		improvements = append([]string(nil), defaultImprovements...)
	}

	if len(improvements) > maxImprovements {
		improvements = improvements[:maxImprovements]
	}

	return improvements
}

// EnhanceCodeWithCopy wraps the code with an attribution header and appends the
// copy in a trailing comment. Neither input is modified.
func EnhanceCodeWithCopy(code, copyText string) string {
	return fmt.Sprintf("%s\n\n%s\n\n/*\nMARKETING COPY TO USE:\n%s\n*/\n", finalCodeHeader, code, copyText)
}

// ComponentCount is a rough count of declarations in the generated code.
func ComponentCount(code string) int {
	return strings.Count(code, "const ") + strings.Count(code, "function ")
}

func GenerateSummary(code string) string {
	return fmt.Sprintf(summaryTemplate, ComponentCount(code))
}
