package services

import "fmt"

// MatchSystemInstruction is sent as the system message on every analysis call.
const MatchSystemInstruction = "You are an expert Technical Recruiter and Career Coach. " +
	"Your goal is to help a candidate land a job by analyzing their resume against a job description. " +
	"Be critical but constructive. " +
	"You must respond with a valid JSON object matching the following structure:\n" +
	"{\n" +
	`  "match_score": 0-100,` + "\n" +
	`  "summary": "Brief summary of the analysis",` + "\n" +
	`  "missing_keywords": ["kw1", "kw2"],` + "\n" +
	`  "tailored_suggestions": [{"original": "text", "improved": "text", "reason": "why"}],` + "\n" +
	`  "interview_questions": ["q1", "q2"]` + "\n" +
	"}\n" +
	"Return ONLY the JSON. No preamble."

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchPrompt embeds both documents as labeled sections.
func (pb *PromptBuilder) BuildMatchPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf("RESUME:\n%s\n\nJOB DESCRIPTION:\n%s", resumeText, jobDescription)
}
