package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"jobhunt/match-analyzer/internal/models"
	"jobhunt/match-analyzer/internal/repositories"
	"jobhunt/match-analyzer/internal/services"
)

const analysisJSON = `{"match_score":88,"summary":"Solid Go backend match.","missing_keywords":[],"tailored_suggestions":[{"original":"Built REST APIs in Go","improved":"Designed and built REST APIs in Go serving 1M req/day","reason":"Quantifies impact"}],"interview_questions":["Describe a Go service you scaled."]}`

type stubLLM struct {
	response string
	err      error
	calls    int
}

func (s *stubLLM) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubLLM) Provider() string { return "stub" }

func (s *stubLLM) Model() string { return "stub-1" }

type stubExtractor struct {
	text string
}

func (s *stubExtractor) Extract(filename string, data []byte) (string, models.SourceKind, error) {
	return s.text, models.SourcePDF, nil
}

type memoryRepo struct {
	records []models.AnalysisRecord
}

func (m *memoryRepo) Create(record *models.AnalysisRecord) error {
	record.CreatedAt = time.Now()
	m.records = append(m.records, *record)
	return nil
}

func (m *memoryRepo) FindByID(id uuid.UUID) (*models.AnalysisRecord, error) {
	for i := range m.records {
		if m.records[i].ID == id {
			return &m.records[i], nil
		}
	}
	return nil, repositories.ErrAnalysisNotFound
}

func (m *memoryRepo) FindRecent(limit int) ([]models.AnalysisRecord, error) {
	if len(m.records) < limit {
		limit = len(m.records)
	}
	return m.records[:limit], nil
}

func newTestApp(llm services.LLMClient, ext services.DocumentExtractor, repo repositories.AnalysisRepository) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", HandleRoot)

	normalizer := services.NewInputNormalizer(ext, 1<<20)
	analyzer := services.NewMatchAnalyzer(llm)
	NewAnalyzeHandler(normalizer, analyzer, repo, llm.Provider(), llm.Model()).RegisterRoutes(app)
	if repo != nil {
		NewHistoryHandler(repo).RegisterRoutes(app.Group("/api/v1"))
	}
	return app
}

type filePart struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestHandleRoot(t *testing.T) {
	app := newTestApp(&stubLLM{}, &stubExtractor{}, nil)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "JobHunt AI Server is Running", decode[models.StatusResponse](t, resp).Status)
}

func TestHandleAnalyze(t *testing.T) {
	t.Run(`text inputs`, func(t *testing.T) {
		llm := &stubLLM{response: analysisJSON}
		app := newTestApp(llm, &stubExtractor{}, nil)

		resp, err := app.Test(multipartRequest(t, map[string]string{
			"resume_text":     "Built REST APIs in Go",
			"job_description": "Seeking Go backend engineer",
		}))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decode[map[string]any](t, resp)
		score := body["match_score"].(float64)
		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 100.0)
		for _, key := range []string{"missing_keywords", "tailored_suggestions", "interview_questions"} {
			require.Contains(t, body, key)
			require.NotNil(t, body[key], key)
		}
		require.Equal(t, 1, llm.calls)
	})

	t.Run(`json fenced model output`, func(t *testing.T) {
		app := newTestApp(&stubLLM{response: "```json\n" + analysisJSON + "\n```"}, &stubExtractor{}, nil)
		resp, err := app.Test(multipartRequest(t, map[string]string{
			"resume_text":     "r",
			"job_description": "j",
		}))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, 88, decode[models.AnalysisResult](t, resp).MatchScore)
	})

	t.Run(`missing resume`, func(t *testing.T) {
		llm := &stubLLM{response: analysisJSON}
		app := newTestApp(llm, &stubExtractor{}, nil)
		resp, err := app.Test(multipartRequest(t, map[string]string{"job_description": "j"}))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Please upload a PDF resume or provide text.", decode[models.ErrorResponse](t, resp).Detail)
		require.Equal(t, 0, llm.calls)
	})

	t.Run(`missing job description`, func(t *testing.T) {
		app := newTestApp(&stubLLM{response: analysisJSON}, &stubExtractor{}, nil)
		resp, err := app.Test(multipartRequest(t, map[string]string{"resume_text": "r"}))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Please upload a JD PDF or provide text.", decode[models.ErrorResponse](t, resp).Detail)
	})

	t.Run(`pdf without text`, func(t *testing.T) {
		llm := &stubLLM{response: analysisJSON}
		app := newTestApp(llm, &stubExtractor{text: " \n \n"}, nil)
		resp, err := app.Test(multipartRequest(t,
			map[string]string{"job_description": "j"},
			filePart{field: "resume_file", name: "scan.pdf", data: []byte("%PDF-1.4 scanned")},
		))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Could not extract text from the resume.", decode[models.ErrorResponse](t, resp).Detail)
		require.Equal(t, 0, llm.calls)
	})

	t.Run(`both inputs as files`, func(t *testing.T) {
		app := newTestApp(&stubLLM{response: analysisJSON}, &stubExtractor{text: "Go engineer\n"}, nil)
		resp, err := app.Test(multipartRequest(t, nil,
			filePart{field: "resume_file", name: "cv.pdf", data: []byte("%PDF-1.4")},
			filePart{field: "job_description_file", name: "jd.pdf", data: []byte("%PDF-1.4")},
		))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`model output is not json`, func(t *testing.T) {
		app := newTestApp(&stubLLM{response: "Here is my analysis: great candidate!"}, &stubExtractor{}, nil)
		resp, err := app.Test(multipartRequest(t, map[string]string{
			"resume_text":     "r",
			"job_description": "j",
		}))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		detail := decode[models.ErrorResponse](t, resp).Detail
		require.Contains(t, detail, "Internal Server Error: ")
		require.Contains(t, detail, "failed to parse")
	})

	t.Run(`schema mismatch`, func(t *testing.T) {
		app := newTestApp(&stubLLM{response: `{"match_score": 140, "summary": "s"}`}, &stubExtractor{}, nil)
		resp, err := app.Test(multipartRequest(t, map[string]string{
			"resume_text":     "r",
			"job_description": "j",
		}))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		require.Contains(t, decode[models.ErrorResponse](t, resp).Detail, "match_score")
	})

	t.Run(`upstream failure`, func(t *testing.T) {
		app := newTestApp(&stubLLM{err: io.ErrUnexpectedEOF}, &stubExtractor{}, nil)
		resp, err := app.Test(multipartRequest(t, map[string]string{
			"resume_text":     "r",
			"job_description": "j",
		}))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		require.Contains(t, decode[models.ErrorResponse](t, resp).Detail, "stub request failed")
	})
}

func TestHistory(t *testing.T) {
	repo := &memoryRepo{}
	app := newTestApp(&stubLLM{response: analysisJSON}, &stubExtractor{text: "cv"}, repo)

	resp, err := app.Test(multipartRequest(t,
		map[string]string{"job_description": "j"},
		filePart{field: "resume_file", name: "cv.pdf", data: []byte("%PDF-1.4")},
	))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	id := resp.Header.Get("X-Analysis-ID")
	require.NotEmpty(t, id)
	require.Len(t, repo.records, 1)
	require.Equal(t, models.SourcePDF, repo.records[0].ResumeSource)
	require.Equal(t, models.SourceText, repo.records[0].JobDescriptionSource)
	require.Equal(t, "stub", repo.records[0].Provider)

	t.Run(`list`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analyses?limit=500", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		list := decode[models.AnalysisListResponse](t, resp)
		require.Equal(t, 1, list.Count)
		require.Equal(t, id, list.Analyses[0].ID)
		require.Equal(t, 88, list.Analyses[0].MatchScore)
	})

	t.Run(`get`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		detail := decode[models.AnalysisDetailResponse](t, resp)
		require.Equal(t, id, detail.ID)
		require.Equal(t, "Solid Go backend match.", detail.Result.Summary)
	})

	t.Run(`invalid id`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analyses/not-a-uuid", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run(`unknown id`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+uuid.NewString(), nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		require.Equal(t, "Analysis not found", decode[models.ErrorResponse](t, resp).Detail)
	})
}

func TestRegisterRoutesKeepsCallerHandlers(t *testing.T) {
	llm := &stubLLM{response: analysisJSON}
	h := NewAnalyzeHandler(
		services.NewInputNormalizer(&stubExtractor{}, 1<<20),
		services.NewMatchAnalyzer(llm),
		nil,
		llm.Provider(),
		llm.Model(),
	)

	passthrough := func(c *fiber.Ctx) error { return c.Next() }
	extra := make([]fiber.Handler, 1, 2)
	extra[0] = passthrough

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	h.RegisterRoutes(app, extra...)
	require.Nil(t, extra[:2][1])

	resp, err := app.Test(multipartRequest(t, map[string]string{
		"resume_text":     "Go developer",
		"job_description": "Go role",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOversizedBodyRendersDetail(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler, BodyLimit: 1024})
	app.Post("/analyze", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(multipartRequest(t, nil, filePart{
		field: "resume_file",
		name:  "cv.pdf",
		data:  bytes.Repeat([]byte("x"), 4096),
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	require.Equal(t, "Request Entity Too Large", decode[models.ErrorResponse](t, resp).Detail)
}
