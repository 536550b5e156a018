package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"jobhunt/match-analyzer/internal/logger"
	"jobhunt/match-analyzer/internal/models"
)

type MatchAnalyzer interface {
	Analyze(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisResult, error)
}

type matchAnalyzer struct {
	llm           LLMClient
	promptBuilder *PromptBuilder
}

func NewMatchAnalyzer(llm LLMClient) MatchAnalyzer {
	return &matchAnalyzer{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
	}
}

// Analyze makes exactly one model call. Every failure is returned as is,
// without retry or partial result.
func (a *matchAnalyzer) Analyze(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &InputError{Message: ResumeField.EmptyMessage}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &InputError{Message: JobDescriptionField.EmptyMessage}
	}

	prompt := a.promptBuilder.BuildMatchPrompt(resumeText, jobDescription)
	log := logger.Log.WithFields(logrus.Fields{
		"provider": a.llm.Provider(),
		"model":    a.llm.Model(),
	})
	log.WithField("prompt_chars", len(prompt)).Debug("📝 Sending match analysis prompt")

	text, err := a.llm.Generate(ctx, MatchSystemInstruction, prompt)
	if err != nil {
		var upstream *UpstreamError
		if !errors.As(err, &upstream) {
			err = &UpstreamError{Provider: a.llm.Provider(), Err: err}
		}
		log.WithError(err).Error("❌ Match analysis call failed")
		return nil, fmt.Errorf("failed to generate match analysis: %w", err)
	}

	log.WithField("response_chars", len(text)).Debug("✅ Match analysis response received")

	result, err := ParseAnalysisResult(text)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			log.WithField("raw_response", parseErr.Raw).Debug("🧾 Unparseable model response")
		}
		log.WithError(err).Warn("⚠️ Model response rejected")
		return nil, fmt.Errorf("failed to parse match analysis: %w", err)
	}

	return result, nil
}
