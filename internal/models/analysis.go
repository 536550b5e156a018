package models

// AnalysisResult is the structured match analysis returned by POST /analyze.
type AnalysisResult struct {
	MatchScore          int             `json:"match_score"`
	Summary             string          `json:"summary"`
	MissingKeywords     []string        `json:"missing_keywords"`
	TailoredSuggestions []TailoredPoint `json:"tailored_suggestions"`
	InterviewQuestions  []string        `json:"interview_questions"`
}

// TailoredPoint is a suggested rewrite of one resume bullet.
type TailoredPoint struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
	Reason   string `json:"reason"`
}

type SourceKind string

const (
	SourceText SourceKind = "text"
	SourcePDF  SourceKind = "pdf"
	SourceDOCX SourceKind = "docx"
)
