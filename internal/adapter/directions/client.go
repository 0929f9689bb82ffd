package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/twpayne/go-polyline"

	"sidewalksafe/internal/domain"
	"sidewalksafe/pkg/e"
)

// Provider is the directions/place-suggestion boundary consumed by the
// route service.
type Provider interface {
	WalkingRoute(ctx context.Context, start, end string) (domain.Route, error)
	Suggest(ctx context.Context, input string) ([]domain.PlaceSuggestion, error)
}

// Client implements Provider against the Google Maps web service APIs.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// WalkingRoute fetches a walking route between two free-text locations and
// decodes the overview polyline. "No route found" is e.ErrNoRoute; every
// other provider failure is e.ErrExternalService. Both are recoverable at
// the call site.
func (c *Client) WalkingRoute(ctx context.Context, start, end string) (domain.Route, error) {
	params := url.Values{
		"origin":      {start},
		"destination": {end},
		"mode":        {"walking"},
		"key":         {c.apiKey},
	}
	u := c.baseURL + "/maps/api/directions/json?" + params.Encode()

	var resp directionsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return domain.Route{}, err
	}

	if resp.Status == "ZERO_RESULTS" || len(resp.Routes) == 0 {
		return domain.Route{}, e.ErrNoRoute
	}
	if resp.Status != "OK" {
		c.logger.Error("directions provider error", slog.String("status", resp.Status), slog.String("message", resp.ErrorMessage))
		return domain.Route{}, fmt.Errorf("directions status %s: %w", resp.Status, e.ErrExternalService)
	}

	r := resp.Routes[0]
	coords, _, err := polyline.DecodeCoords([]byte(r.OverviewPolyline.Points))
	if err != nil {
		return domain.Route{}, fmt.Errorf("decode polyline: %w", e.ErrExternalService)
	}

	points := make([]domain.RoutePoint, 0, len(coords))
	for _, c := range coords {
		points = append(points, domain.RoutePoint{Lat: c[0], Lng: c[1]})
	}

	route := domain.Route{Points: points}
	if len(r.Legs) > 0 {
		leg := r.Legs[0]
		route.DurationSeconds = leg.Duration.Value
		for _, s := range leg.Steps {
			route.Steps = append(route.Steps, domain.RouteStep{
				Instructions: s.HTMLInstructions,
				DistanceText: s.Distance.Text,
				DurationText: s.Duration.Text,
			})
		}
	}
	return route, nil
}

// Suggest fetches autocomplete candidates for partial input. Failures are
// logged and surface as an empty result: suggestions are never fatal.
func (c *Client) Suggest(ctx context.Context, input string) ([]domain.PlaceSuggestion, error) {
	params := url.Values{
		"input": {input},
		"key":   {c.apiKey},
	}
	u := c.baseURL + "/maps/api/place/autocomplete/json?" + params.Encode()

	var resp autocompleteResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		c.logger.Warn("autocomplete failed", slog.String("input", input), slog.Any("error", err))
		return []domain.PlaceSuggestion{}, nil
	}

	suggestions := make([]domain.PlaceSuggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		suggestions = append(suggestions, domain.PlaceSuggestion{
			Description: p.Description,
			PlaceID:     p.PlaceID,
		})
	}
	return suggestions, nil
}

func (c *Client) getJSON(ctx context.Context, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("maps request: %w", e.ErrExternalService)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("maps API error", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("maps API status %d: %w", resp.StatusCode, e.ErrExternalService)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", e.ErrExternalService)
	}
	return nil
}

// Google Maps web service response types.

type directionsResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
	Routes       []route `json:"routes"`
}

type route struct {
	OverviewPolyline struct {
		Points string `json:"points"`
	} `json:"overview_polyline"`
	Legs []leg `json:"legs"`
}

type leg struct {
	Duration textValue `json:"duration"`
	Steps    []step    `json:"steps"`
}

type step struct {
	HTMLInstructions string    `json:"html_instructions"`
	Distance         textValue `json:"distance"`
	Duration         textValue `json:"duration"`
}

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type autocompleteResponse struct {
	Predictions []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
}
