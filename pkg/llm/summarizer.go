// Package llm builds a short coverage summary of a match with an OpenAI-compatible model
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/matchnews/pkg/config"
	"github.com/umputun/matchnews/pkg/domain"
)

// maxPromptArticles limits how many of the best articles are sent to the model
const maxPromptArticles = 15

// errBadJSON marks responses worth retrying
var errBadJSON = errors.New("invalid json response")

// Summarizer asks LLM to summarize match coverage
type Summarizer struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// Summary is the model's view of match coverage
type Summary struct {
	Text       string   `json:"summary"`
	KeyPoints  []string `json:"key_points"`
	Confidence float64  `json:"confidence"`
}

// NewSummarizer creates a new LLM summarizer
func NewSummarizer(cfg config.LLMConfig) *Summarizer {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Summarizer{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
	}
}

// default system prompt for coverage summary
const defaultSystemPrompt = `You are a football editor. You get a list of news articles about one match, collected
from RSS feeds, Reddit, news APIs, club sites and journalists' tweets. Each article has its source and quality score.

Write a summary of the coverage:
- summary: 2-4 sentences about the main stories around the match (team news, injuries, form, key talking points).
  Write about the football itself, NEVER use phrases like "The articles discuss" or "Coverage shows".
  Prefer facts from higher quality sources, treat rumours from low quality sources with caution.
- key_points: 3-5 short bullet facts, each under 100 chars
- confidence: 0-1, how consistent the sources are with each other

Respond with a single JSON object: {"summary": "...", "key_points": ["..."], "confidence": 0.8}`

// Summarize summarizes coverage of the match. Best articles by quality go into the prompt.
func (s *Summarizer) Summarize(ctx context.Context, m domain.Match, articles []*domain.Article) (Summary, error) {
	if len(articles) == 0 {
		return Summary{}, errors.New("no articles to summarize")
	}

	prompt := s.buildPrompt(m, articles)

	// retry up to 3 times if we get invalid JSON
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		chatReq := openai.ChatCompletionRequest{
			Model:       s.config.Model,
			Temperature: float32(s.config.Temperature),
			MaxTokens:   s.config.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: s.systemMsg},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}

		resp, err := s.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return Summary{}, fmt.Errorf("llm request failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return Summary{}, errors.New("no response from llm")
		}

		summary, err := parseResponse(resp.Choices[0].Message.Content)
		if err == nil {
			return summary, nil
		}
		lastErr = err
		if !errors.Is(err, errBadJSON) {
			return Summary{}, err
		}
	}

	return Summary{}, fmt.Errorf("failed after 3 attempts: %w", lastErr)
}

// buildPrompt creates the prompt for the LLM
func (s *Summarizer) buildPrompt(m domain.Match, articles []*domain.Article) string {
	best := make([]*domain.Article, 0, len(articles))
	for _, a := range articles {
		if a != nil {
			best = append(best, a)
		}
	}
	sort.SliceStable(best, func(i, j int) bool { return best[i].Quality() > best[j].Quality() })
	if len(best) > maxPromptArticles {
		best = best[:maxPromptArticles]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match: %s vs %s", m.HomeTeam, m.AwayTeam))
	if !m.Date.IsZero() {
		sb.WriteString(fmt.Sprintf(", kick-off %s", m.Date.UTC().Format("2006-01-02 15:04 MST")))
	}
	sb.WriteString("\n\nArticles:\n\n")
	for i, a := range best {
		sb.WriteString(fmt.Sprintf("%d. [%s, quality %.2f] %s\n", i+1, a.Source, a.Quality(), a.Title))
		text := a.Summary
		if text == "" {
			text = a.Content
		}
		if text != "" {
			// limit text to first 300 chars
			if r := []rune(text); len(r) > 300 {
				text = string(r[:300]) + "..."
			}
			sb.WriteString(fmt.Sprintf("   %s\n", text))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Respond with the JSON object.")
	return sb.String()
}

// parseResponse extracts the JSON object from the response
func parseResponse(content string) (Summary, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || start >= end {
		return Summary{}, fmt.Errorf("no json object found: %w", errBadJSON)
	}

	var res Summary
	if err := json.Unmarshal([]byte(content[start:end+1]), &res); err != nil {
		return Summary{}, fmt.Errorf("failed to parse json object: %v: %w", err, errBadJSON)
	}
	res.Text = strings.TrimSpace(res.Text)
	if res.Text == "" {
		return Summary{}, fmt.Errorf("empty summary: %w", errBadJSON)
	}
	res.Confidence = min(max(res.Confidence, 0), 1)
	return res, nil
}
