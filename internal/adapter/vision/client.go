package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sidewalksafe/internal/domain"
	"sidewalksafe/pkg/e"
)

// Classifier is the image-classification boundary. The model itself is an
// opaque external service; this package only validates and shapes its
// output.
type Classifier interface {
	Classify(ctx context.Context, image []byte) ([]domain.Prediction, error)
}

// Client posts the uploaded image to a classifier endpoint and returns the
// top predictions.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) Classify(ctx context.Context, image []byte) ([]domain.Prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("classify: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", e.ErrExternalService)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("classifier error", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("classify: status %d: %w", resp.StatusCode, e.ErrExternalService)
	}

	var out struct {
		Predictions []domain.Prediction `json:"predictions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("classify: decode: %w", e.ErrExternalService)
	}
	return out.Predictions, nil
}
