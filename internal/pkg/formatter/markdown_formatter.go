package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vibecoding/vibe-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(result *entity.MergedResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", baseTitle)

	for _, s := range sections(result) {
		fmt.Fprintf(&buf, "\n## %s\n\n", s.title)
		if s.code {
			fmt.Fprintf(&buf, "```tsx\n%s\n```\n", strings.TrimRight(s.body, "\n"))
			continue
		}
		fmt.Fprintf(&buf, "%s\n", strings.TrimRight(s.body, "\n"))
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
