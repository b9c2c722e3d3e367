package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/felixgeelhaar/planforge/internal/errors"
)

// defaultTimeout is the generous fixed ceiling on a single model call.
// Plan extraction over a large requirements document can take minutes.
const defaultTimeout = 300 * time.Second

// GeminiClient implements the Client interface for the Google Gemini API
type GeminiClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	model   string
}

// Gemini API request/response structures
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata *geminiUsage      `json:"usageMetadata,omitempty"`
	Error         *geminiError      `json:"error,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiUsage struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// GeminiOption customizes a GeminiClient
type GeminiOption func(*GeminiClient)

// WithBaseURL overrides the API endpoint (used by tests)
func WithBaseURL(url string) GeminiOption {
	return func(c *GeminiClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(hc *http.Client) GeminiOption {
	return func(c *GeminiClient) {
		c.client = hc
	}
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(apiKey, model string, opts ...GeminiOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "gemini api key is empty")
	}
	if model == "" {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "gemini model is empty")
	}

	c := &GeminiClient{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: defaultTimeout},
		model:   model,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Generate implements Client.Generate
func (c *GeminiClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	startTime := time.Now()

	geminiReq := c.buildRequest(req)

	reqBody, err := json.Marshal(geminiReq)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExtractTransport, "marshal request", err)
	}

	modelName := c.model
	if req.Model != "" {
		modelName = req.Model
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, modelName, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExtractTransport, "create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExtractTransport, "send request", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExtractTransport, "read response", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeExtractAPI,
			fmt.Sprintf("gemini API error (status %d): %s", httpResp.StatusCode, string(respBody)))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(respBody, &geminiResp); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExtractAPI, "parse response", err)
	}

	if geminiResp.Error != nil {
		return nil, errors.New(errors.ErrCodeExtractAPI,
			fmt.Sprintf("gemini API error: %s (code %d)", geminiResp.Error.Message, geminiResp.Error.Code))
	}

	return c.convertResponse(&geminiResp, time.Since(startTime), modelName)
}

// buildRequest converts our GenerateRequest to Gemini format
func (c *GeminiClient) buildRequest(req *GenerateRequest) *geminiRequest {
	geminiReq := &geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: req.Prompt}},
			},
		},
	}

	genConfig := &geminiGenerationConfig{}
	if req.Temperature > 0 {
		temp := req.Temperature
		genConfig.Temperature = &temp
	}
	if req.JSONOutput {
		genConfig.ResponseMimeType = "application/json"
	}
	geminiReq.GenerationConfig = genConfig

	return geminiReq
}

// convertResponse converts a Gemini response to our format
func (c *GeminiClient) convertResponse(resp *geminiResponse, latency time.Duration, model string) (*GenerateResponse, error) {
	if len(resp.Candidates) == 0 {
		return nil, errors.New(errors.ErrCodeExtractAPI, "no candidates in response")
	}

	candidate := resp.Candidates[0]
	if len(candidate.Content.Parts) == 0 {
		return nil, errors.New(errors.ErrCodeExtractAPI, "no content parts in response")
	}

	result := &GenerateResponse{
		Content:      candidate.Content.Parts[0].Text,
		Model:        model,
		FinishReason: candidate.FinishReason,
		Latency:      latency,
	}

	if resp.UsageMetadata != nil {
		result.TokensUsed = resp.UsageMetadata.TotalTokenCount
	}

	return result, nil
}

// IsAvailable checks if the client is configured
func (c *GeminiClient) IsAvailable() bool {
	return c.apiKey != ""
}

// Close cleans up resources
func (c *GeminiClient) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
