package ai

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/tk-425/caller-cli/internal/apperr"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// contentGenerator is the part of *genai.Models that Gemini calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini resolves questions with the Gemini API.
type Gemini struct {
	models  contentGenerator
	model   string
	spinner io.Writer
	log     zerolog.Logger
}

// Option configures a Gemini resolver.
type Option func(*Gemini)

// WithSpinner shows a progress spinner on w while a request is in flight.
func WithSpinner(w io.Writer) Option {
	return func(g *Gemini) { g.spinner = w }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Gemini) { g.log = l }
}

// NewGemini creates a client authenticated with apiKey.
func NewGemini(ctx context.Context, apiKey, model string, opts ...Option) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "AI Error")
	}
	return newGemini(client.Models, model, opts...), nil
}

func newGemini(models contentGenerator, model string, opts ...Option) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	g := &Gemini{models: models, model: model, log: zerolog.Nop()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Ask sends the oracle prompt for question and returns the model's text.
func (g *Gemini) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", apperr.New(apperr.EmptyInput, "You must provide a question.")
	}

	if g.spinner != nil {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(g.spinner))
		s.Suffix = " Asking AI..."
		s.Start()
		defer s.Stop()
	}

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(question)), nil)
	if err != nil {
		g.log.Error().Err(err).Str("model", g.model).Msg("generate content")
		return "", apperr.Wrap(apperr.Internal, err, "AI Error")
	}
	text := resp.Text()
	g.log.Debug().
		Str("model", g.model).
		Dur("duration", time.Since(start)).
		Int("chars", len(text)).
		Msg("ai answered")
	return text, nil
}
