package entity

// GenerateRequest is the inbound website brief.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// MergedResult is the combined output of the three agents.
type MergedResult struct {
	Plan         string   `json:"plan"`
	Copywriting  string   `json:"copywriting"`
	Code         string   `json:"code"`
	FinalCode    string   `json:"final_code"`
	Improvements []string `json:"improvements"`
	Summary      string   `json:"summary"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is returned by the liveness endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	}
	return false
}
