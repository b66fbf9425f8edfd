// ollama.go implements the Summarizer and Embedder boundaries against a
// local Ollama server.
//
// Both calls go through the plain HTTP API (/api/generate, /api/embeddings)
// rather than a client SDK: the surface used is two endpoints, and the error
// mapping onto ErrNotAvailable/ErrTransient is the part that matters here.

package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the standard local Ollama endpoint.
const DefaultBaseURL = "http://localhost:11434"

// Default models. Overridable via config; both sides of the vector space
// must use the same embed model, so the config value applies to indexing
// and querying alike.
const (
	DefaultEmbedModel     = "nomic-embed-text"
	DefaultSummarizeModel = "qwen2.5:3b"
)

// securityMarker separates the optional risk note in the model's reply.
const securityMarker = "SECURITY:"

// Client talks to an Ollama server. The zero value is not usable; construct
// with NewClient.
type Client struct {
	baseURL        string
	embedModel     string
	summarizeModel string
	http           *http.Client
}

var (
	_ Summarizer = (*Client)(nil)
	_ Embedder   = (*Client)(nil)
)

// NewClient creates a client for the given base URL and models. Empty
// arguments fall back to the defaults.
func NewClient(baseURL, embedModel, summarizeModel string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if embedModel == "" {
		embedModel = DefaultEmbedModel
	}
	if summarizeModel == "" {
		summarizeModel = DefaultSummarizeModel
	}
	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		embedModel:     embedModel,
		summarizeModel: summarizeModel,
		http:           &http.Client{Timeout: 120 * time.Second},
	}
}

// EmbedModel returns the embedding model identifier. Stored queries and
// summaries must share it.
func (c *Client) EmbedModel() string { return c.embedModel }

// Embed generates an embedding vector for text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp struct {
		Embedding []float32 `json:"embedding"`
	}
	err := c.post(ctx, "/api/embeddings", map[string]any{
		"model":  c.embedModel,
		"prompt": text,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("embed with %s: %w", c.embedModel, ErrEmptyResult)
	}
	return resp.Embedding, nil
}

// Summarize produces a short summary of a task definition, with an optional
// security note when the model flags risky behaviour.
func (c *Client) Summarize(ctx context.Context, label, typ, command, content string) (Summary, error) {
	prompt := buildSummaryPrompt(label, typ, command, content)

	var resp struct {
		Response string `json:"response"`
	}
	err := c.post(ctx, "/api/generate", map[string]any{
		"model":  c.summarizeModel,
		"prompt": prompt,
		"stream": false,
	}, &resp)
	if err != nil {
		return Summary{}, err
	}

	text := strings.TrimSpace(resp.Response)
	if text == "" {
		return Summary{}, fmt.Errorf("summarize with %s: %w", c.summarizeModel, ErrEmptyResult)
	}

	summary := Summary{Text: text}
	if i := strings.Index(text, securityMarker); i >= 0 {
		summary.Text = strings.TrimSpace(text[:i])
		summary.SecurityWarning = strings.TrimSpace(strings.TrimPrefix(text[i:], securityMarker))
		if summary.Text == "" {
			return Summary{}, fmt.Errorf("summarize with %s: %w", c.summarizeModel, ErrEmptyResult)
		}
	}
	return summary, nil
}

// post sends a JSON request and decodes the JSON response, mapping transport
// and status failures onto the package error taxonomy.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Connection-level failure: the server is not there.
		return fmt.Errorf("%w: %s: %v", ErrNotAvailable, c.baseURL+path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response from %s: %v", ErrTransient, path, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s (is the model pulled?)", ErrNotAvailable, strings.TrimSpace(string(data)))
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d: %s", ErrTransient, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding response from %s: %v", ErrTransient, path, err)
	}
	return nil
}

// buildSummaryPrompt assembles the summarization prompt. Content is capped
// so a large script cannot blow the model's context window.
func buildSummaryPrompt(label, typ, command, content string) string {
	const maxContent = 8192
	if len(content) > maxContent {
		content = content[:maxContent]
	}

	var b strings.Builder
	b.WriteString("Summarise what this workspace command does in one or two sentences.\n")
	b.WriteString("If it does anything destructive or security-sensitive, append a final line starting with \"SECURITY:\".\n\n")
	fmt.Fprintf(&b, "Name: %s\nType: %s\nInvocation: %s\n", label, typ, command)
	if content != "" {
		fmt.Fprintf(&b, "\nScript content:\n%s\n", content)
	}
	return b.String()
}
