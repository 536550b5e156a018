package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jobhunt/match-analyzer/internal/models"
	"jobhunt/match-analyzer/internal/repositories"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryHandler struct {
	repo repositories.AnalysisRepository
}

func NewHistoryHandler(repo repositories.AnalysisRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

func (h *HistoryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/analyses", h.HandleList)
	router.Get("/analyses/:id", h.HandleGet)
}

// HandleList handles GET /analyses?limit=N
func (h *HistoryHandler) HandleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := h.repo.FindRecent(limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error: "+err.Error())
	}

	items := make([]models.AnalysisSummary, 0, len(records))
	for i := range records {
		items = append(items, toSummary(&records[i]))
	}

	return c.JSON(models.AnalysisListResponse{
		Analyses: items,
		Count:    len(items),
	})
}

// HandleGet handles GET /analyses/:id
func (h *HistoryHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid analysis ID format")
	}

	record, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrAnalysisNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Analysis not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error: "+err.Error())
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(record.Result), &result); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error: stored analysis is corrupt")
	}

	return c.JSON(models.AnalysisDetailResponse{
		AnalysisSummary: toSummary(record),
		Result:          &result,
	})
}

func toSummary(r *models.AnalysisRecord) models.AnalysisSummary {
	return models.AnalysisSummary{
		ID:                   r.ID.String(),
		MatchScore:           r.MatchScore,
		ResumeSource:         r.ResumeSource,
		JobDescriptionSource: r.JobDescriptionSource,
		Provider:             r.Provider,
		Model:                r.Model,
		CreatedAt:            r.CreatedAt,
	}
}
