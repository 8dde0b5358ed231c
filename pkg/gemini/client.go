// Package gemini wraps the generateContent REST endpoint behind the two
// journal-specific calls: per-persona commentary and the mood analysis
// report. Every failure mode is absorbed here; callers never see a transport
// error cross the package boundary.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"tableflip.dev/penpal/pkg/logging"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Status tags the outcome of one generation call so downstream fallback
// selection is an exhaustive switch, not a catch-all.
type Status int

const (
	// StatusOK means a candidate text was produced. It is still untrusted
	// and must survive schema validation.
	StatusOK Status = iota
	// StatusMalformed means the service answered but the payload was
	// unusable: no candidate text, or the embedded JSON did not match the
	// expected schema.
	StatusMalformed
	// StatusTransportFailure means the request itself failed: network
	// error or non-2xx status.
	StatusTransportFailure
)

// result carries the raw generated text alongside its outcome tag.
type result struct {
	Status Status
	Text   string
	Err    error
}

// Client calls the text-completion endpoint. There is deliberately no retry
// and no client-side timeout beyond the transport default: a hang is not
// distinguished from a slow success, and the compose path serializes behind a
// single in-flight submission anyway.
type Client struct {
	BaseURL    string
	ModelKey   string
	HTTPClient *http.Client
}

// NewClient builds a client for the given model key ("flash" or "pro").
func NewClient(modelKey string) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		ModelKey:   modelKey,
		HTTPClient: &http.Client{},
	}
}

// generate performs one JSON-mode generateContent call and extracts the first
// candidate's text.
func (c *Client) generate(ctx context.Context, apiKey, systemPrompt, userText string) result {
	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: fmt.Sprintf("Diary Entry: %q", userText)}}},
		},
		SystemInstruction: &content{
			Parts: []part{{Text: systemPrompt}},
		},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
		},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return result{Status: StatusTransportFailure, Err: fmt.Errorf("gemini: marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL(), EndpointFor(c.ModelKey), apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return result{Status: StatusTransportFailure, Err: fmt.Errorf("gemini: build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		logging.Errorf(logging.CategoryAPI, "generate: request failed: %v", err)
		return result{Status: StatusTransportFailure, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.Errorf(logging.CategoryAPI, "generate: read body: %v", err)
		return result{Status: StatusTransportFailure, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Errorf(logging.CategoryAPI, "generate: status %d: %s", resp.StatusCode, body)
		return result{Status: StatusTransportFailure, Err: fmt.Errorf("gemini: status %d", resp.StatusCode)}
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		logging.Errorf(logging.CategoryAPI, "generate: parse envelope: %v", err)
		return result{Status: StatusMalformed, Err: err}
	}
	if genResp.Error != nil {
		logging.Errorf(logging.CategoryAPI, "generate: api error: %s", genResp.Error.Message)
		return result{Status: StatusTransportFailure, Err: fmt.Errorf("gemini: %s", genResp.Error.Message)}
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return result{Status: StatusMalformed, Err: fmt.Errorf("gemini: no text generated")}
	}
	text := genResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return result{Status: StatusMalformed, Err: fmt.Errorf("gemini: empty candidate text")}
	}
	return result{Status: StatusOK, Text: text}
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{}
}
