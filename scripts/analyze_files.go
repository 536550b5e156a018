package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"jobhunt/match-analyzer/internal/config"
	"jobhunt/match-analyzer/internal/logger"
	"jobhunt/match-analyzer/internal/services"
)

// Runs one analysis from local files and prints the result as JSON.
//
//	go run ./scripts -resume ./cv.pdf -jd ./job.txt
func main() {
	resumePath := flag.String("resume", "", "resume file (.pdf, .docx or plain text)")
	jdPath := flag.String("jd", "", "job description file (.pdf, .docx or plain text)")
	flag.Parse()

	if *resumePath == "" || *jdPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("❌ Failed to load config: %v", err)
	}
	logger.Init(cfg.Server.LogLevel, os.Stderr)

	extractor := services.NewDocumentExtractor(
		services.NewPDFParserService(),
		services.NewDOCXParserService(),
	)
	normalizer := services.NewInputNormalizer(extractor, cfg.Upload.MaxFileSize)

	resume, err := normalizer.Normalize(services.ResumeField, readSource(*resumePath))
	if err != nil {
		logger.Log.Fatalf("❌ Resume: %v", err)
	}
	jd, err := normalizer.Normalize(services.JobDescriptionField, readSource(*jdPath))
	if err != nil {
		logger.Log.Fatalf("❌ Job description: %v", err)
	}
	logger.Log.Infof("📄 Resume: %d chars (%s), job description: %d chars (%s)",
		len(resume.Text), resume.Kind, len(jd.Text), jd.Kind)

	ctx := context.Background()
	llmClient, err := services.NewLLMClient(ctx, cfg.LLM)
	if err != nil {
		logger.Log.Fatalf("❌ Failed to initialize LLM client: %v", err)
	}

	result, err := services.NewMatchAnalyzer(llmClient).Analyze(ctx, resume.Text, jd.Text)
	if err != nil {
		logger.Log.Fatalf("❌ Analysis failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readSource treats .pdf and .docx files as uploads and anything else as text.
func readSource(path string) services.Source {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Log.Fatalf("❌ Failed to read %s: %v", path, err)
	}

	if _, err := services.DetectDocumentKind(path, data); err == nil {
		return services.Source{Filename: path, Data: data}
	}
	return services.Source{Text: string(data)}
}
