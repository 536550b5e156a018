package services

import (
	"context"

	"jobhunt/match-analyzer/internal/models"
)

type fakeExtractor struct {
	text  string
	kind  models.SourceKind
	err   error
	calls int
}

func (f *fakeExtractor) Extract(filename string, data []byte) (string, models.SourceKind, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.text, f.kind, nil
}

type fakeLLM struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
	calls      int
}

func (f *fakeLLM) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	f.calls++
	f.lastSystem = systemInstruction
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeLLM) Provider() string { return "fake" }

func (f *fakeLLM) Model() string { return "fake-model" }
