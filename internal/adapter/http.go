// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/utils"
	"github.com/MKhiriev/vm-marketplace/models"
)

type httpMarketplaceClient struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPMarketplaceClient constructs a [MarketplaceClient] for the server at
// address. A missing scheme defaults to http.
func NewHTTPMarketplaceClient(address string, timeout time.Duration, log *logger.Logger) (MarketplaceClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	return &httpMarketplaceClient{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// DatabaseReport implements [MarketplaceClient].
func (h *httpMarketplaceClient) DatabaseReport(ctx context.Context) (models.DBReport, error) {
	var report models.DBReport

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&report).
		Get("/test/test-db")
	if err != nil {
		h.logger.Err(err).Str("func", "*httpMarketplaceClient.DatabaseReport").Msg("request failed")
		return models.DBReport{}, fmt.Errorf("database report request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DBReport{}, err
	}

	return report, nil
}

// Version implements [MarketplaceClient].
func (h *httpMarketplaceClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/version")
	if err != nil {
		h.logger.Err(err).Str("func", "*httpMarketplaceClient.Version").Msg("request failed")
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}
