package formatter

import (
	"fmt"

	"github.com/vibecoding/vibe-backend/internal/entity"
)

const baseTitle = "Generated Website"

type Formatter interface {
	Format(result *entity.MergedResult) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// section is one titled block of the exported document.
type section struct {
	title string
	body  string
	code  bool
}

func sections(result *entity.MergedResult) []section {
	improvements := ""
	for _, item := range result.Improvements {
		improvements += "- " + item + "\n"
	}

	return []section{
		{title: "Summary", body: result.Summary},
		{title: "Architecture Plan", body: result.Plan},
		{title: "Marketing Copy", body: result.Copywriting},
		{title: "Improvements", body: improvements},
		{title: "Final Code", body: result.FinalCode, code: true},
	}
}
