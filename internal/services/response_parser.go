package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"jobhunt/match-analyzer/internal/models"
)

const codeFence = "```"

var (
	errUnclosedFence = errors.New("code fence is not closed")
	errFenceTag      = errors.New("code fence must be untagged or tagged json")
)

// StripCodeFence trims the text and removes one surrounding fenced block
// tagged "json" or untagged. Text that does not start with a fence is
// returned trimmed.
func StripCodeFence(text string) (string, error) {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, codeFence) {
		return s, nil
	}

	body := s[len(codeFence):]
	if !strings.HasSuffix(body, codeFence) {
		return "", errUnclosedFence
	}
	inner := body[:len(body)-len(codeFence)]

	if i := strings.IndexByte(inner, '\n'); i >= 0 {
		tag := strings.TrimSpace(inner[:i])
		if tag != "" && !strings.EqualFold(tag, "json") {
			return "", fmt.Errorf("%w, got %q", errFenceTag, tag)
		}
		return strings.TrimSpace(inner[i+1:]), nil
	}

	// ```json {...}``` on a single line
	if len(inner) >= 4 && strings.EqualFold(inner[:4], "json") {
		inner = inner[4:]
	}
	return strings.TrimSpace(inner), nil
}

// ParseAnalysisResult strips an optional fence from the model text, parses
// the remainder and validates it against the AnalysisResult schema.
func ParseAnalysisResult(text string) (*models.AnalysisResult, error) {
	cleaned, err := StripCodeFence(text)
	if err != nil {
		return nil, &ParseError{Err: err, Raw: text}
	}

	var probe any
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, &ParseError{Err: err, Raw: text}
	}

	root := gjson.Parse(cleaned)
	if !root.IsObject() {
		return nil, &ValidationError{Problems: []string{"response must be a JSON object"}}
	}

	v := &schemaValidator{}
	v.uniqueKeys(root, "response")
	result := &models.AnalysisResult{
		MatchScore:          v.score(root.Get("match_score")),
		Summary:             v.str(root.Get("summary"), "summary"),
		MissingKeywords:     v.strList(root.Get("missing_keywords"), "missing_keywords"),
		TailoredSuggestions: v.suggestions(root.Get("tailored_suggestions")),
		InterviewQuestions:  v.strList(root.Get("interview_questions"), "interview_questions"),
	}

	if len(v.problems) > 0 {
		return nil, &ValidationError{Problems: v.problems}
	}
	return result, nil
}

type schemaValidator struct {
	problems []string
}

func (v *schemaValidator) fail(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *schemaValidator) score(r gjson.Result) int {
	var f float64
	switch {
	case !r.Exists():
		v.fail("match_score is required")
		return 0
	case r.Type == gjson.Number:
		f = r.Num
	case r.Type == gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(r.Str))
		if err != nil {
			v.fail("match_score must be an integer, got %q", r.Str)
			return 0
		}
		f = float64(n)
	default:
		v.fail("match_score must be an integer, got %s", r.Raw)
		return 0
	}

	if f != math.Trunc(f) {
		v.fail("match_score must be an integer, got %s", r.Raw)
		return 0
	}
	if f < 0 || f > 100 {
		v.fail("match_score must be between 0 and 100, got %s", r.Raw)
		return 0
	}
	return int(f)
}

// uniqueKeys rejects repeated keys. gjson reads the first occurrence while
// encoding/json keeps the last, so a duplicate could hide an invalid value.
func (v *schemaValidator) uniqueKeys(obj gjson.Result, where string) {
	seen := make(map[string]bool)
	obj.ForEach(func(key, _ gjson.Result) bool {
		if seen[key.Str] {
			v.fail("%s has duplicate key %q", where, key.Str)
		}
		seen[key.Str] = true
		return true
	})
}

func (v *schemaValidator) str(r gjson.Result, field string) string {
	if !r.Exists() {
		v.fail("%s is required", field)
		return ""
	}
	if r.Type != gjson.String {
		v.fail("%s must be a string", field)
		return ""
	}
	return r.Str
}

func (v *schemaValidator) array(r gjson.Result, field string) ([]gjson.Result, bool) {
	if !r.Exists() {
		v.fail("%s is required", field)
		return nil, false
	}
	if !r.IsArray() {
		v.fail("%s must be a list", field)
		return nil, false
	}
	return r.Array(), true
}

func (v *schemaValidator) strList(r gjson.Result, field string) []string {
	items, ok := v.array(r, field)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			v.fail("%s[%d] must be a string", field, i)
			continue
		}
		out = append(out, item.Str)
	}
	return out
}

func (v *schemaValidator) suggestions(r gjson.Result) []models.TailoredPoint {
	items, ok := v.array(r, "tailored_suggestions")
	if !ok {
		return nil
	}
	out := make([]models.TailoredPoint, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			v.fail("tailored_suggestions[%d] must be an object", i)
			continue
		}
		prefix := fmt.Sprintf("tailored_suggestions[%d]", i)
		v.uniqueKeys(item, prefix)
		out = append(out, models.TailoredPoint{
			Original: v.str(item.Get("original"), prefix+".original"),
			Improved: v.str(item.Get("improved"), prefix+".improved"),
			Reason:   v.str(item.Get("reason"), prefix+".reason"),
		})
	}
	return out
}
