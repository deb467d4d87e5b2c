package validator

import (
	"fmt"
	"strings"

	"github.com/vibecoding/vibe-backend/internal/entity"
)

type Validator struct {
	maxPromptLength int
}

func NewValidator(maxPromptLength int) *Validator {
	return &Validator{
		maxPromptLength: maxPromptLength,
	}
}

// ValidateGenerate checks the brief is present and within the size limit.
func (v *Validator) ValidateGenerate(req *entity.GenerateRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return entity.ErrEmptyPrompt
	}

	if v.maxPromptLength > 0 && len(req.Prompt) > v.maxPromptLength {
		return fmt.Errorf("%w: %d bytes, limit is %d", entity.ErrPromptTooLong, len(req.Prompt), v.maxPromptLength)
	}

	return nil
}

// ValidateFormat parses the export format, defaulting to markdown.
func (v *Validator) ValidateFormat(raw string) (entity.ResultFormat, error) {
	if raw == "" {
		return entity.FormatMarkdown, nil
	}

	format := entity.ResultFormat(strings.ToLower(raw))
	if !format.IsValid() {
		return "", fmt.Errorf("%w: %q", entity.ErrInvalidFormat, raw)
	}

	return format, nil
}
