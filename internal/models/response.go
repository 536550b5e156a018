package models

import "time"

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type AnalysisSummary struct {
	ID                   string     `json:"id"`
	MatchScore           int        `json:"match_score"`
	ResumeSource         SourceKind `json:"resume_source"`
	JobDescriptionSource SourceKind `json:"job_description_source"`
	Provider             string     `json:"provider"`
	Model                string     `json:"model"`
	CreatedAt            time.Time  `json:"created_at"`
}

type AnalysisDetailResponse struct {
	AnalysisSummary
	Result *AnalysisResult `json:"result"`
}

type AnalysisListResponse struct {
	Analyses []AnalysisSummary `json:"analyses"`
	Count    int               `json:"count"`
}
