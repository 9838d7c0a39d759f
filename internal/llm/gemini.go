// Package llm wraps the external completion API behind a small interface so
// the message pipeline can be exercised with a fake in tests.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Turn is one role/content pair of the transcript sent upstream.
type Turn struct {
	Role    string
	Content string
}

// CompletionClient produces an assistant reply for a transcript. An empty
// reply with a nil error means the upstream answered but returned no usable
// text; callers decide what to do with that.
type CompletionClient interface {
	Complete(ctx context.Context, system string, turns []Turn) (string, error)
}

// UpstreamError reports a failed call to the completion API. Status is the
// upstream HTTP status, or 0 when the request never completed.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream completion failed: %v", e.Err)
	}
	return fmt.Sprintf("upstream completion failed with status %d", e.Status)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// --- Gemini request/response wire structures ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content struct {
		Parts []geminiPart `json:"parts"`
		Role  string       `json:"role"`
	} `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Complete sends the system directive and the transcript to Gemini. Gemini
// has no system role, so the directive goes in as an opening user turn
// acknowledged by a canned model turn.
func (g *GeminiClient) Complete(ctx context.Context, system string, turns []Turn) (string, error) {
	contents := []geminiContent{
		{Role: "user", Parts: []geminiPart{{Text: system}}},
		{Role: "model", Parts: []geminiPart{{Text: "Understood. I will follow these guidelines."}}},
	}
	for _, t := range turns {
		role := "user"
		if t.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: t.Content}}})
	}

	body, err := json.Marshal(geminiRequest{Contents: contents})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Status: resp.StatusCode}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &UpstreamError{Err: err}
	}
	if len(parsed.Candidates) > 0 && len(parsed.Candidates[0].Content.Parts) > 0 {
		return parsed.Candidates[0].Content.Parts[0].Text, nil
	}
	// Upstream answered but produced no text; the pipeline substitutes its
	// fallback string for this case.
	return "", nil
}
