package tts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"sidewalksafe/pkg/e"
)

// Narrator is the narration boundary: cleaned text in, audio bytes out.
type Narrator interface {
	Narrate(ctx context.Context, text string) ([]byte, error)
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanText strips HTML markup and collapses whitespace before synthesis.
// Step instructions from the directions provider carry markup like
// "Head <b>north</b>".
func CleanText(text string) string {
	cleaned := htmlTagRe.ReplaceAllString(text, "")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// Client fetches MP3 narration from a translate-tts style endpoint.
type Client struct {
	baseURL    string
	lang       string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, lang string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		lang:    lang,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Narrate synthesizes the text. Quota exhaustion (429) is e.ErrQuotaExceeded
// so callers can surface it as a warning instead of a failure.
func (c *Client) Narrate(ctx context.Context, text string) ([]byte, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, fmt.Errorf("narrate: empty text: %w", e.ErrInvalidInput)
	}

	params := url.Values{
		"ie":     {"UTF-8"},
		"client": {"tw-ob"},
		"tl":     {c.lang},
		"q":      {cleaned},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("narrate: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("narrate: %w", e.ErrExternalService)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.logger.Warn("tts quota exceeded")
		return nil, fmt.Errorf("narrate: %w", e.ErrQuotaExceeded)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("tts error", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("narrate: status %d: %w", resp.StatusCode, e.ErrExternalService)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("narrate: read audio: %w", e.ErrExternalService)
	}
	return audio, nil
}
