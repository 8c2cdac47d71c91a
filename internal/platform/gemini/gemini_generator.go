package gemini

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"text/template"
	"time"

	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/generation"
	"google.golang.org/genai"
)

//go:embed prompt.tmpl
var promptTemplateText string

// ErrEmptyInput is returned when the term or definition is empty.
var ErrEmptyInput = errors.New("term and definition cannot be empty")

// GeminiGenerator implements the generation.DistractorGenerator interface
// using Google's Gemini API to produce plausible wrong answers for a card.
type GeminiGenerator struct {
	logger         *slog.Logger
	config         config.LLMConfig
	promptTemplate *template.Template
	client         *genai.Client
	model          string
}

// NewGeminiGenerator creates a new GeminiGenerator with the provided
// dependencies. Returns an error wrapping generation.ErrInvalidConfig if the
// configuration is incomplete or the client cannot be constructed.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("distractors").Parse(promptTemplateText)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiGenerator{
		logger:         logger.With(slog.String("component", "gemini_generator")),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// Ensure GeminiGenerator implements the generator interface
var _ generation.DistractorGenerator = (*GeminiGenerator)(nil)

// GenerateDistractors implements generation.DistractorGenerator.
// It renders the prompt, calls the Gemini API with retry for transient
// failures, and returns exactly generation.DistractorCount raw candidates.
func (g *GeminiGenerator) GenerateDistractors(ctx context.Context, term, definition string) ([]string, error) {
	prompt, err := g.createPrompt(term, definition)
	if err != nil {
		return nil, err
	}

	if g.config.RequestTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(g.config.RequestTimeoutSeconds)*time.Second)
		defer cancel()
	}

	return g.callWithRetry(ctx, prompt)
}

// createPrompt renders the prompt template for the given card fields.
func (g *GeminiGenerator) createPrompt(term, definition string) (string, error) {
	if term == "" || definition == "" {
		return "", ErrEmptyInput
	}

	var buf bytes.Buffer
	err := g.promptTemplate.Execute(&buf, promptData{
		Term:       term,
		Definition: definition,
		Count:      generation.DistractorCount,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}

// responseSchema constrains the model to the expected JSON shape.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"incorrectAnswers": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"incorrectAnswers"},
	}
}

// callWithRetry makes the Gemini API call with exponential backoff for
// transient errors. Permanent errors (blocked content, malformed responses)
// are returned immediately without retrying.
func (g *GeminiGenerator) callWithRetry(ctx context.Context, prompt string) ([]string, error) {
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}
	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	}
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}

	for attempt := 0; ; attempt++ {
		g.logger.DebugContext(ctx, "making Gemini API call",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		result, err := g.client.Models.GenerateContent(ctx, g.model, contents, genConfig)

		var distractors []string
		transient := false
		switch {
		case err != nil:
			// API-level failures are assumed transient (rate limits, 5xx)
			transient = true
			err = fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		case result == nil, len(result.Candidates) == 0:
			err = fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
		case result.Candidates[0].FinishReason == genai.FinishReasonSafety:
			err = fmt.Errorf("%w: response stopped by safety filters", generation.ErrContentBlocked)
		default:
			distractors, err = parseDistractors(result.Text())
		}

		if err == nil {
			g.logger.DebugContext(ctx, "Gemini API call successful", "attempt", attempt+1)
			return distractors, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", err)

		if !transient {
			return nil, err
		}

		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// Exponential backoff with jitter:
		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attempt+1,
			"delay", delay.String())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// parseDistractors decodes and sanity-checks the model's JSON payload.
// It is permissive about extra candidates (the first DistractorCount win)
// but a short or empty list is an unusable response.
func parseDistractors(text string) ([]string, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	var parsed distractorResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}

	answers := make([]string, 0, generation.DistractorCount)
	for _, a := range parsed.IncorrectAnswers {
		if a == "" {
			continue
		}
		answers = append(answers, a)
		if len(answers) == generation.DistractorCount {
			break
		}
	}

	if len(answers) < generation.DistractorCount {
		return nil, fmt.Errorf("%w: expected %d usable incorrect answers, got %d",
			generation.ErrInvalidResponse, generation.DistractorCount, len(answers))
	}

	return answers, nil
}
