// Package crawler fetches random drinks from TheCocktailDB and writes batch documents to disk.
package crawler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"cocktailetl/internal/config"
	"cocktailetl/internal/logger"
	"cocktailetl/internal/models"
	"cocktailetl/pkg/utils"
)

// Fetch errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrNoDrinks             = errors.New("response contains no drinks")
)

// Fetcher returns one drink per call.
type Fetcher interface {
	FetchRandom(ctx context.Context) (models.RawRecord, error)
}

// drinksEnvelope is the API response wrapper: {"drinks": [ {...} ]}.
type drinksEnvelope struct {
	Drinks []models.RawRecord `json:"drinks"`
}

// Scraper performs the HTTP requests against the recipe API. It never retries.
type Scraper struct {
	client       *http.Client
	limiter      *rate.Limiter
	logger       *logger.Logger
	headers      http.Header
	url          string
	bufferSizeKb int
}

// NewScraperWithConfig creates a scraper from source and pacing settings.
func NewScraperWithConfig(source *config.SourceConfig, pacing *config.PacingConfig, log *logger.Logger) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: source.GetTimeout(),
		},
		logger:       log,
		headers:      utils.NewHTTPHelper().BuildHeaders(map[string]string{"User-Agent": source.UserAgent}),
		url:          source.URL,
		bufferSizeKb: source.BufferSizeKb,
	}

	if pacing != nil && pacing.Enabled() {
		s.limiter = rate.NewLimiter(rate.Limit(pacing.RequestsPerSecond), pacing.Burst)
	}

	return s
}

// ScrapeWithMetrics returns (body, statusCode, duration, error).
func (s *Scraper) ScrapeWithMetrics(ctx context.Context) ([]byte, int, time.Duration, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, 0, 0, fmt.Errorf("request pacing interrupted: %w", err)
		}
	}

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = s.headers.Clone()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, time.Since(startTime), fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, time.Since(startTime),
			fmt.Errorf("failed to fetch data: %w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	// bufferSizeKb is in KB, convert to bytes
	limit := int64(s.bufferSizeKb) * 1024

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, resp.StatusCode, time.Since(startTime), fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, time.Since(startTime), nil
}

// FetchRandom fetches one random drink.
func (s *Scraper) FetchRandom(ctx context.Context) (models.RawRecord, error) {
	body, status, duration, err := s.ScrapeWithMetrics(ctx)

	s.logger.Debug("Fetched drink", "status", status, "bytes", len(body), "duration", duration)

	if err != nil {
		return models.RawRecord{}, err
	}

	return DecodeDrink(body)
}

// DecodeDrink extracts the first drink from an API response body.
func DecodeDrink(body []byte) (models.RawRecord, error) {
	var envelope drinksEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return models.RawRecord{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Drinks) == 0 || envelope.Drinks[0].IsZero() {
		return models.RawRecord{}, ErrNoDrinks
	}

	return envelope.Drinks[0], nil
}
