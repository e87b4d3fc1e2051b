// Package feed seeds an empty job catalog from an external JSON feed,
// falling back to a small set of built-in postings when the feed is
// unreachable.
//
// This is the application's only network call, and it is strictly
// best-effort: any failure — bad URL, timeout, non-200, unparseable
// body — silently yields the fallback list. Nothing retries and nothing
// is fatal; an empty catalog with three demo jobs beats a crash loop on
// a flaky feed.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/hirepro/internal/model"
)

const fetchTimeout = 10 * time.Second

// Client fetches seed jobs.
type Client struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

// New creates a feed client for the given URL. An empty URL is allowed —
// Fetch then goes straight to the fallback.
func New(url string, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		http:   &http.Client{Timeout: fetchTimeout},
		logger: logger,
	}
}

// Fetch returns the feed's jobs, or the fallback list on any failure.
// The error is never surfaced to the caller — it is logged and absorbed,
// matching the product's silent-fallback behaviour.
func (c *Client) Fetch(ctx context.Context) []model.Job {
	if c.url == "" {
		return FallbackJobs()
	}

	jobs, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("job feed unavailable, using fallback jobs",
			slog.String("url", c.url),
			slog.String("error", err.Error()),
		)
		return FallbackJobs()
	}
	return jobs
}

func (c *Client) fetch(ctx context.Context) ([]model.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: fetching: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed: unexpected status %d", resp.StatusCode)
	}

	var jobs []model.Job
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return nil, fmt.Errorf("feed: decoding response: %w", err)
	}
	return jobs, nil
}

// FallbackJobs is the hardcoded catalog used when no feed is configured
// or the fetch fails. Three postings, enough to make the browse pages
// non-empty on a fresh install.
func FallbackJobs() []model.Job {
	return []model.Job{
		{
			Title:         "Backend Engineer",
			Company:       "HirePro Demo Co",
			WorkplaceType: model.WorkplaceRemote,
			Location:      "Remote",
			JobType:       model.JobFullTime,
			Description:   "Build and operate Go services for a hiring platform. PostgreSQL, REST APIs, on-call rotation.",
			Salary:        "$95k – $130k",
			Department:    "Engineering",
			EasyApply:     true,
		},
		{
			Title:         "Frontend Developer",
			Company:       "HirePro Demo Co",
			WorkplaceType: model.WorkplaceHybrid,
			Location:      "Berlin",
			JobType:       model.JobFullTime,
			Description:   "React, TypeScript, and a design system. Two days a week in the Berlin office.",
			Salary:        "€60k – €80k",
			Department:    "Engineering",
			EasyApply:     true,
		},
		{
			Title:         "Recruiting Coordinator",
			Company:       "HirePro Demo Co",
			WorkplaceType: model.WorkplaceOnSite,
			Location:      "London",
			JobType:       model.JobPartTime,
			Description:   "Schedule interviews, keep candidates informed, and keep the pipeline tidy.",
			Department:    "People",
			EasyApply:     false,
		},
	}
}
