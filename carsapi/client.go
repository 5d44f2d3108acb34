package carsapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"fuel-explorer/config"
	"fuel-explorer/models"
	"fuel-explorer/utils"
)

// Client pulls vehicle records from the fuel-economy REST API.
type Client struct {
	cfg    *config.Config
	logger *utils.Logger
	http   *http.Client
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig
}

// New creates a ready-to-use API Client.
func New(cfg *config.Config, logger *utils.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
		http:   &http.Client{Timeout: time.Duration(cfg.RequestTimeoutMs) * time.Millisecond},
		pool:   utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   500 * time.Millisecond,
			Logger:      logger,
		},
	}
}

type pageResult struct {
	records []models.RawVehicle
	err     error
	done    bool
}

// FetchAll reads page 1, then the remaining pages concurrently. Records are
// returned in page order with duplicate ids dropped (first occurrence wins).
// If some pages fail, the records that did arrive are returned together with
// the joined page errors.
func (c *Client) FetchAll(ctx context.Context) ([]models.RawVehicle, error) {
	first, totalPages, err := c.fetchPageWithRetry(ctx, 1)
	if err != nil {
		return nil, err
	}
	c.logger.Info("[carsapi] Page 1/%d: %d records", totalPages, len(first))

	results := make([]pageResult, totalPages)
	results[0] = pageResult{records: first, done: true}

	var mu sync.Mutex
	for page := 2; page <= totalPages; page++ {
		err := c.pool.Submit(ctx, func() {
			records, _, err := c.fetchPageWithRetry(ctx, page)
			if err == nil {
				c.logger.Debug("[carsapi] Page %d/%d: %d records", page, totalPages, len(records))
			}
			mu.Lock()
			results[page-1] = pageResult{records: records, err: err, done: true}
			mu.Unlock()
		})
		if err != nil {
			break
		}
	}
	c.pool.Wait()

	for i := range results {
		if !results[i].done {
			results[i].err = fmt.Errorf("carsapi: page %d not fetched: %w", i+1, context.Cause(ctx))
		}
	}

	seen := utils.NewKeySet()
	var all []models.RawVehicle
	var errs []error
	duplicates := 0
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		for _, rec := range r.records {
			if rec.ID != "" && !seen.Add(rec.ID) {
				duplicates++
				continue
			}
			all = append(all, rec)
		}
	}

	if duplicates > 0 {
		c.logger.Debug("[carsapi] Dropped %d duplicate records", duplicates)
	}
	c.logger.Info("[carsapi] Fetched %d records (%d distinct ids) from %d pages (%d failed)",
		len(all), seen.Size(), totalPages, len(errs))
	return all, errors.Join(errs...)
}

func (c *Client) fetchPageWithRetry(ctx context.Context, page int) ([]models.RawVehicle, int, error) {
	var records []models.RawVehicle
	var totalPages int
	err := c.retry.Do(ctx, fmt.Sprintf("fetch page %d", page), func() error {
		var err error
		records, totalPages, err = c.fetchPage(ctx, page)
		return err
	})
	return records, totalPages, err
}

func (c *Client) fetchPage(ctx context.Context, page int) ([]models.RawVehicle, int, error) {
	u, err := url.Parse(c.cfg.APIBaseURL)
	if err != nil {
		return nil, 0, fmt.Errorf("carsapi: base url: %w", err)
	}
	u = u.JoinPath("cars")
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(c.cfg.APIPageLimit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("carsapi: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("carsapi: get page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, 0, fmt.Errorf("carsapi: get page %d: unexpected status %s", page, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("carsapi: read page %d: %w", page, err)
	}
	return ParseVehicles(body)
}
