package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/vibecoding/vibe-backend/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Optional UTF-8 font shipped next to the binary.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"
)

type PDFFormatter struct {
	fontPath string
}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{fontPath: pdfFontRuntimePath}
}

func (pf *PDFFormatter) Format(result *entity.MergedResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	textFont, codeFont := "Arial", "Courier"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if _, err := os.Stat(pf.fontPath); err == nil {
		pdf.AddUTF8Font(pdfFontName, "", pf.fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", pf.fontPath)
		textFont, codeFont = pdfFontName, pdfFontName
		translate = func(s string) string { return s }
	}

	pdf.SetFont(textFont, "B", 20)
	pdf.Cell(0, 10, baseTitle)
	pdf.Ln(14)

	for _, s := range sections(result) {
		pdf.SetFont(textFont, "B", 14)
		pdf.Cell(0, 8, s.title)
		pdf.Ln(10)

		if s.code {
			pdf.SetFont(codeFont, "", 9)
		} else {
			pdf.SetFont(textFont, "", 11)
		}
		_, lineHeight := pdf.GetFontSize()
		pdf.MultiCell(0, lineHeight*1.5, translate(s.body), "", "", false)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
