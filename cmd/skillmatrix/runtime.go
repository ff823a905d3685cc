package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skillmatrix/internal/config"
	"github.com/jonathan/skillmatrix/internal/fetch"
	"github.com/jonathan/skillmatrix/internal/ingestion"
	"github.com/jonathan/skillmatrix/internal/interview"
	"github.com/jonathan/skillmatrix/internal/llm"
	"github.com/jonathan/skillmatrix/internal/logger"
	"github.com/jonathan/skillmatrix/internal/observability"
	"github.com/jonathan/skillmatrix/internal/types"
)

// Output formats
const (
	formatJSON = "json"
	formatText = "text"
)

// newClient opens the model client. Tests replace it.
var newClient = func(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	return llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
}

// env is the resolved configuration and logger for one command invocation.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func (o *rootOptions) load() (*env, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.apiKey != "" {
		cfg.APIKey = o.apiKey
	}
	if o.logMode != "" {
		cfg.LogMode = o.logMode
	}
	if o.model != "" {
		cfg.PinnedModel = o.model
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &env{cfg: cfg, log: log}, nil
}

// service builds the interview service. The returned func releases the model client.
func (e *env) service(ctx context.Context) (*interview.Service, func(), error) {
	if e.cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("API key is required (set %s environment variable or use --api-key flag)", config.EnvAPIKey)
	}
	client, err := newClient(ctx, e.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	release := func() {
		if err := client.Close(); err != nil {
			e.log.Warn("failed to close LLM client", "error", err)
		}
	}
	return interview.NewForClient(client, e.log), release, nil
}

// jobDescription reads a job description from a file or a URL.
func jobDescription(ctx context.Context, path, url string) (string, error) {
	switch {
	case path != "" && url != "":
		return "", fmt.Errorf("use either --job or --job-url, not both")
	case path != "":
		text, err := ingestion.ExtractFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	case url != "":
		page, err := fetch.JobDescription(ctx, url, fetch.DefaultOptions())
		if err != nil {
			return "", fmt.Errorf("failed to fetch job description: %w", err)
		}
		return page.Text, nil
	}
	return "", nil
}

// emit writes v as indented JSON, or as a boxed summary in text mode.
func (o *rootOptions) emit(w io.Writer, v any) error {
	switch o.format {
	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatText:
	default:
		return fmt.Errorf("unknown output format %q (want json or text)", o.format)
	}

	p := observability.NewPrinter(w)
	switch v := v.(type) {
	case types.SkillSet:
		p.PrintSkills(v)
	case []types.GeneratedQuestion:
		p.PrintQuestions(v)
	case types.GradeResult:
		p.PrintGrade(v)
	case []types.GradeResult:
		for _, r := range v {
			p.PrintGrade(r)
		}
	case types.ResumeAnalysis:
		p.PrintAnalysis(v)
	default:
		return fmt.Errorf("no text rendering for %T", v)
	}
	return nil
}

// splitList flattens comma-separated flag values and drops blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
