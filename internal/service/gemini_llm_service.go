package service

import (
	"context"
	"fmt"

	"github.com/dangbert/thesis-app/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// prices per 1M tokens, [input, output]:
// https://ai.google.dev/pricing
var geminiPrices = map[string][2]float64{
	"gemini-1.5-flash": {0.075, 0.30},
	"gemini-1.5-pro":   {1.25, 5.00},
	"gemini-2.0-flash": {0.10, 0.40},
}

type geminiLLMService struct {
	client    *genai.Client
	modelName string
	cfg       *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (LLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, modelName: cfg.GeminiModel}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	if _, ok := geminiPrices[cfg.GeminiModel]; !ok {
		log.Warn().Str("model", cfg.GeminiModel).Msg("price entry unknown for model")
	}
	return &geminiLLMService{client: client, modelName: cfg.GeminiModel, cfg: cfg}, nil
}

func (s *geminiLLMService) Complete(ctx context.Context, prompts []string, opts GenerationOptions) ([]string, []CompletionMeta, error) {
	if s.client == nil {
		return nil, nil, fmt.Errorf("gemini client not initialized")
	}

	genModel := s.client.GenerativeModel(s.modelName)
	if opts.MaxTokens != nil {
		genModel.SetMaxOutputTokens(*opts.MaxTokens)
	}
	if opts.Temperature != nil {
		genModel.SetTemperature(*opts.Temperature)
	}

	log.Debug().Str("model", s.modelName).Int("prompts", len(prompts)).Msg("prompting Gemini")
	outputs := make([]string, 0, len(prompts))
	metas := make([]CompletionMeta, 0, len(prompts))
	for _, prompt := range prompts {
		resp, err := genModel.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			log.Error().Err(err).Str("model", s.modelName).Msg("Gemini API error")
			return nil, nil, fmt.Errorf("gemini request failed: %w", err)
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, nil, fmt.Errorf("gemini returned no content")
		}
		text := ""
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
		if text == "" {
			return nil, nil, fmt.Errorf("gemini returned no text content")
		}

		meta := CompletionMeta{Model: s.modelName}
		if resp.UsageMetadata != nil {
			meta.PromptTokens = resp.UsageMetadata.PromptTokenCount
			meta.CompletionTokens = resp.UsageMetadata.CandidatesTokenCount
		}
		outputs = append(outputs, text)
		metas = append(metas, meta)
	}
	return outputs, metas, nil
}

func (s *geminiLLMService) ComputePrice(meta []CompletionMeta) float64 {
	total := 0.0
	for _, m := range meta {
		prices, ok := geminiPrices[m.Model]
		if !ok {
			log.Warn().Str("model", m.Model).Msg("price entry unknown for model")
			continue
		}
		total += prices[0]/1_000_000*float64(m.PromptTokens) + prices[1]/1_000_000*float64(m.CompletionTokens)
	}
	return total
}
