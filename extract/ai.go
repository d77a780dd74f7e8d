package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AIMarkdownClient talks to an AI-based PDF-to-Markdown conversion service.
// The service converts page by page and reports per-page metadata (tables,
// images, token counts, detected language) alongside the Markdown text.
type AIMarkdownClient struct {
	BaseURL    string
	HTTPClient *http.Client

	processImages    bool
	keepImagesInline bool
	logger           *zap.Logger
}

// AIPageResult is one converted page as returned by the service.
type AIPageResult struct {
	Page     int    `json:"page"`
	Text     string `json:"text"`
	Tables   int    `json:"tables"`
	Images   int    `json:"images"`
	Tokens   int    `json:"tokens"`
	Language string `json:"language"`
}

func NewAIMarkdownClient(baseURL string, timeout time.Duration,
	processImages, keepImagesInline bool, logger *zap.Logger) *AIMarkdownClient {
	return &AIMarkdownClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		processImages:    processImages,
		keepImagesInline: keepImagesInline,
		logger:           logger,
	}
}

// Extract uploads the PDF and concatenates the per-page Markdown results,
// inserting a page header before each page. An empty result list is a
// successful run with no content.
func (c *AIMarkdownClient) Extract(ctx context.Context, path string) (string, error) {
	pages, err := c.Convert(ctx, path)
	if err != nil {
		return "", err
	}

	if len(pages) == 0 {
		c.logger.Warn("aimd: service returned no pages",
			zap.String("file", path))
		return "", nil
	}

	var sb strings.Builder
	for _, page := range pages {
		sb.WriteString(fmt.Sprintf("\n\n--- Page %d ---\n\n", page.Page))
		sb.WriteString(page.Text)

		c.logger.Debug("aimd page converted",
			zap.Int("page", page.Page),
			zap.Int("tables", page.Tables),
			zap.Int("images", page.Images),
			zap.Int("tokens", page.Tokens),
			zap.String("language", page.Language))
	}

	return strings.TrimSpace(sb.String()), nil
}

// Convert performs the conversion call and returns the raw per-page results.
func (c *AIMarkdownClient) Convert(ctx context.Context, path string) ([]AIPageResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy pdf into upload: %w", err)
	}
	if err := writer.WriteField("process_images", strconv.FormatBool(c.processImages)); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := writer.WriteField("keep_images_inline", strconv.FormatBool(c.keepImagesInline)); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/convert", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.logger.Error("aimd: conversion request failed",
			zap.String("url", c.BaseURL),
			zap.Error(err))
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("markdown service returned status %d: %s",
			resp.StatusCode, string(respBody))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var pages []AIPageResult
	if err := json.Unmarshal(respBody, &pages); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return pages, nil
}
