// Package statsclient is the HTTP client of the statistics service used by
// the main service to record endpoint hits and fetch aggregated view counts.
package statsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/logger"
	"afisha_backend/internal/utils"
)

type Client interface {
	RecordHit(ctx context.Context, uri, ip string) error
	GetStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]dto.ViewStats, error)
}

type client struct {
	baseURL string
	appName string
	http    *http.Client
}

func New(baseURL, appName string) Client {
	return &client{
		baseURL: baseURL,
		appName: appName,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *client) RecordHit(ctx context.Context, uri, ip string) error {
	hit := dto.Hit{
		App:       c.appName,
		URI:       uri,
		IP:        ip,
		Timestamp: utils.DateTime{Time: time.Now()},
	}
	body, err := json.Marshal(hit)
	if err != nil {
		return fmt.Errorf("marshal hit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hit", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build hit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.StatsLog("record hit", time.Since(started), err)
		return fmt.Errorf("send hit: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		err = fmt.Errorf("record hit: unexpected status %d", resp.StatusCode)
		logger.StatsLog("record hit", time.Since(started), err)
		return err
	}
	logger.StatsLog("record hit", time.Since(started), nil)
	return nil
}

func (c *client) GetStats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]dto.ViewStats, error) {
	params := url.Values{}
	params.Set("start", utils.FormatDateTime(start))
	params.Set("end", utils.FormatDateTime(end))
	for _, uri := range uris {
		params.Add("uris", uri)
	}
	if unique {
		params.Set("unique", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build stats request: %w", err)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.StatsLog("fetch stats", time.Since(started), err)
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		err = fmt.Errorf("fetch stats: unexpected status %d", resp.StatusCode)
		logger.StatsLog("fetch stats", time.Since(started), err)
		return nil, err
	}

	var stats []dto.ViewStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	logger.StatsLog("fetch stats", time.Since(started), nil)
	return stats, nil
}
