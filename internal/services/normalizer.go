package services

import (
	"strings"

	"jobhunt/match-analyzer/internal/models"
)

// Field names one input of the analysis and the messages shown to the caller
// when it is missing or empty.
type Field struct {
	Name           string
	MissingMessage string
	EmptyMessage   string
}

var (
	ResumeField = Field{
		Name:           "resume",
		MissingMessage: "Please upload a PDF resume or provide text.",
		EmptyMessage:   "Could not extract text from the resume.",
	}
	JobDescriptionField = Field{
		Name:           "job description",
		MissingMessage: "Please upload a JD PDF or provide text.",
		EmptyMessage:   "Could not extract text from the job description.",
	}
)

// Source is what the caller sent for one field. An empty Data means no file.
type Source struct {
	Text     string
	Filename string
	Data     []byte
}

func (s Source) HasFile() bool {
	return len(s.Data) > 0
}

// NormalizedInput is the plain text of one field and where it came from.
type NormalizedInput struct {
	Text string
	Kind models.SourceKind
}

type InputNormalizer interface {
	Normalize(field Field, src Source) (*NormalizedInput, error)
}

type inputNormalizer struct {
	extractor   DocumentExtractor
	maxFileSize int64
}

func NewInputNormalizer(extractor DocumentExtractor, maxFileSize int64) InputNormalizer {
	return &inputNormalizer{
		extractor:   extractor,
		maxFileSize: maxFileSize,
	}
}

// Normalize prefers the file when both a file and text are supplied.
func (n *inputNormalizer) Normalize(field Field, src Source) (*NormalizedInput, error) {
	var (
		text string
		kind models.SourceKind
	)

	switch {
	case src.HasFile():
		if n.maxFileSize > 0 && int64(len(src.Data)) > n.maxFileSize {
			return nil, NewInputError("The %s file is too large. Max size: %d bytes", field.Name, n.maxFileSize)
		}

		extracted, k, err := n.extractor.Extract(src.Filename, src.Data)
		if err != nil {
			return nil, err
		}
		text, kind = extracted, k
	case src.Text != "":
		text, kind = src.Text, models.SourceText
	default:
		return nil, &InputError{Message: field.MissingMessage}
	}

	if strings.TrimSpace(text) == "" {
		return nil, &InputError{Message: field.EmptyMessage}
	}

	return &NormalizedInput{Text: text, Kind: kind}, nil
}
