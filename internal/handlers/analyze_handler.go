package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"jobhunt/match-analyzer/internal/logger"
	"jobhunt/match-analyzer/internal/models"
	"jobhunt/match-analyzer/internal/repositories"
	"jobhunt/match-analyzer/internal/services"
)

type AnalyzeHandler struct {
	normalizer services.InputNormalizer
	analyzer   services.MatchAnalyzer
	history    repositories.AnalysisRepository
	provider   string
	model      string
}

// NewAnalyzeHandler builds the /analyze handler. history may be nil, in which
// case nothing is stored.
func NewAnalyzeHandler(
	normalizer services.InputNormalizer,
	analyzer services.MatchAnalyzer,
	history repositories.AnalysisRepository,
	provider string,
	model string,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		normalizer: normalizer,
		analyzer:   analyzer,
		history:    history,
		provider:   provider,
		model:      model,
	}
}

func (h *AnalyzeHandler) RegisterRoutes(router fiber.Router, extra ...fiber.Handler) {
	handlers := append(append([]fiber.Handler{}, extra...), h.HandleAnalyze)
	router.Post("/analyze", handlers...)
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	resumeSrc, err := readSource(c, "resume_text", "resume_file")
	if err != nil {
		return toHTTPError(err)
	}
	jdSrc, err := readSource(c, "job_description", "job_description_file")
	if err != nil {
		return toHTTPError(err)
	}

	resume, err := h.normalizer.Normalize(services.ResumeField, resumeSrc)
	if err != nil {
		return toHTTPError(err)
	}
	jd, err := h.normalizer.Normalize(services.JobDescriptionField, jdSrc)
	if err != nil {
		return toHTTPError(err)
	}

	logger.Log.WithFields(logrus.Fields{
		"resume_source": resume.Kind,
		"resume_chars":  len(resume.Text),
		"jd_source":     jd.Kind,
		"jd_chars":      len(jd.Text),
	}).Info("🔍 Analyzing resume against job description")

	result, err := h.analyzer.Analyze(c.UserContext(), resume.Text, jd.Text)
	if err != nil {
		return toHTTPError(err)
	}

	if h.history != nil {
		h.record(c, result, resume.Kind, jd.Kind)
	}

	return c.JSON(result)
}

// record stores the result. A storage failure is logged and never fails the
// request.
func (h *AnalyzeHandler) record(c *fiber.Ctx, result *models.AnalysisResult, resumeKind, jdKind models.SourceKind) {
	rec, err := repositories.NewAnalysisRecord(result, resumeKind, jdKind, h.provider, h.model)
	if err == nil {
		err = h.history.Create(rec)
	}
	if err != nil {
		logger.Log.WithError(err).Warn("⚠️ Failed to store analysis history")
		return
	}
	c.Set("X-Analysis-ID", rec.ID.String())
}

// readSource collects the text field and, if present, the uploaded file for
// one input. A missing file part is not an error.
func readSource(c *fiber.Ctx, textField, fileField string) (services.Source, error) {
	src := services.Source{Text: c.FormValue(textField)}

	fh, err := c.FormFile(fileField)
	if err != nil || fh == nil {
		return src, nil
	}

	f, err := fh.Open()
	if err != nil {
		return src, fmt.Errorf("failed to open uploaded %s: %w", fileField, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return src, fmt.Errorf("failed to read uploaded %s: %w", fileField, err)
	}

	src.Filename = fh.Filename
	src.Data = data
	return src, nil
}
