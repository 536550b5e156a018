package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"jobhunt/match-analyzer/internal/models"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")
)

// DocumentExtractor turns an uploaded document into plain text.
type DocumentExtractor interface {
	Extract(filename string, data []byte) (string, models.SourceKind, error)
}

type documentExtractor struct {
	pdfParser  PDFParserService
	docxParser DOCXParserService
}

func NewDocumentExtractor(pdfParser PDFParserService, docxParser DOCXParserService) DocumentExtractor {
	return &documentExtractor{
		pdfParser:  pdfParser,
		docxParser: docxParser,
	}
}

func (d *documentExtractor) Extract(filename string, data []byte) (string, models.SourceKind, error) {
	kind, err := DetectDocumentKind(filename, data)
	if err != nil {
		return "", "", err
	}

	var text string
	switch kind {
	case models.SourcePDF:
		text, err = d.pdfParser.ExtractText(data)
	case models.SourceDOCX:
		text, err = d.docxParser.ExtractText(data)
	}
	if err != nil {
		return "", kind, fmt.Errorf("failed to extract text from %s: %w", filename, err)
	}
	return text, kind, nil
}

// DetectDocumentKind recognizes PDF by content or extension. A ZIP container
// is only taken as DOCX when the name says .docx or carries no extension, so
// .xlsx, .zip and friends are rejected. Anything else is an InputError.
func DetectDocumentKind(filename string, data []byte) (models.SourceKind, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case bytes.HasPrefix(data, pdfMagic), ext == ".pdf":
		return models.SourcePDF, nil
	case ext == ".docx", ext == "" && bytes.HasPrefix(data, zipMagic):
		return models.SourceDOCX, nil
	}

	if ext == "" {
		ext = "unknown"
	}
	return "", NewInputError("Unsupported file type: %s. Please upload a PDF or DOCX file.", ext)
}
