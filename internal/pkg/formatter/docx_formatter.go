package formatter

import (
	"bytes"
	"strings"

	"github.com/unidoc/unioffice/document"
	"github.com/vibecoding/vibe-backend/internal/entity"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(result *entity.MergedResult) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Title")
	titlePar.AddRun().AddText(baseTitle)

	for _, s := range sections(result) {
		heading := doc.AddParagraph()
		heading.SetStyle("Heading1")
		heading.AddRun().AddText(s.title)

		// One paragraph per line keeps code indentation readable.
		for _, line := range strings.Split(strings.TrimRight(s.body, "\n"), "\n") {
			run := doc.AddParagraph().AddRun()
			if s.code {
				run.Properties().SetFontFamily("Courier New")
			}
			run.AddText(line)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
