// Package client talks to the document comparison API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/docdiff/internal/contract"
	"github.com/huangsam/docdiff/schema"
)

// API paths relative to the base URL.
const (
	documentsPath = "/api/v1/comparison/documents"
	pagePath      = "/api/v1/comparison/page"
	sectionPath   = "/api/v1/comparison/section"
	tablePath     = "/api/v1/comparison/table"
	stringPath    = "/api/v1/comparison/string"
	structurePath = "/api/v1/comparison/structure"
)

// RequestIDHeader carries a per-request UUID for log correlation.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// ErrRequestInFlight is returned when a request is made while another is outstanding.
var ErrRequestInFlight = errors.New("a comparison request is already in flight")

// APIError is a non-2xx response from the compare API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("compare API returned %d: %s", e.StatusCode, e.Message)
}

// Client is a compare API client that allows one outstanding request at a time.
type Client struct {
	baseURL string
	hc      *http.Client
	timeout time.Duration

	mu   sync.Mutex
	busy bool
}

var _ contract.ReportClient = &Client{} // Compile-time check

// New creates a client for the given base URL. A non-positive timeout uses the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = contract.DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Compare requests a report for two documents at the given granularity.
func (c *Client) Compare(ctx context.Context, req schema.CompareRequest) (*schema.ComparisonReport, error) {
	return c.post(ctx, documentsPath, req)
}

// ComparePage compares a single page of both documents.
func (c *Client) ComparePage(ctx context.Context, fileID1, fileID2 string, pageNumber int) (*schema.ComparisonReport, error) {
	return c.post(ctx, pagePath, schema.PageCompareRequest{FileID1: fileID1, FileID2: fileID2, PageNumber: pageNumber})
}

// CompareSection compares the sections matching a heading query.
func (c *Client) CompareSection(ctx context.Context, fileID1, fileID2, sectionQuery string) (*schema.ComparisonReport, error) {
	return c.post(ctx, sectionPath, schema.SectionCompareRequest{FileID1: fileID1, FileID2: fileID2, SectionQuery: sectionQuery})
}

// CompareTable compares tables, optionally filtered by a query.
func (c *Client) CompareTable(ctx context.Context, fileID1, fileID2 string, tableQuery *string) (*schema.ComparisonReport, error) {
	return c.post(ctx, tablePath, schema.TableCompareRequest{FileID1: fileID1, FileID2: fileID2, TableQuery: tableQuery})
}

// CompareString compares the surroundings of a search string.
// A non-positive contextChars uses the default window.
func (c *Client) CompareString(ctx context.Context, fileID1, fileID2, query string, contextChars int) (*schema.ComparisonReport, error) {
	if contextChars <= 0 {
		contextChars = contract.DefaultContextChars
	}
	return c.post(ctx, stringPath, schema.StringCompareRequest{FileID1: fileID1, FileID2: fileID2, Query: query, ContextChars: contextChars})
}

// CompareStructure compares the heading structure of both documents.
func (c *Client) CompareStructure(ctx context.Context, fileID1, fileID2 string) (*schema.ComparisonReport, error) {
	return c.post(ctx, structurePath, schema.StructureCompareRequest{FileID1: fileID1, FileID2: fileID2})
}

// acquire marks the client busy, failing fast if it already is.
func (c *Client) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrRequestInFlight
	}
	c.busy = true
	return nil
}

func (c *Client) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// post sends a JSON body and decodes the response into a report.
func (c *Client) post(ctx context.Context, path string, body any) (*schema.ComparisonReport, error) {
	if err := c.acquire(); err != nil {
		return nil, err
	}
	defer c.release()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	requestID, ok := contract.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)

	logger := contract.Logger().With().Str("request_id", requestID).Str("path", path).Logger()
	logger.Debug().Msg("sending comparison request")
	start := time.Now()

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("comparison request canceled: %w", ctx.Err())
		}
		if ctx.Err() != nil || isTimeout(err) {
			return nil, fmt.Errorf("comparison request timed out after %s: %w", c.timeout, context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("comparison request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("received comparison response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp)
	}

	var report schema.ComparisonReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode comparison report: %w", err)
	}
	return &report, nil
}

// newAPIError builds an APIError, preferring the body's message, then detail,
// then the HTTP status text.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}
	var body struct {
		Message string `json:"message"`
		Detail  any    `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return apiErr
	}
	switch {
	case body.Message != "":
		apiErr.Message = body.Message
	case body.Detail != nil:
		if s, ok := body.Detail.(string); ok {
			if s != "" {
				apiErr.Message = s
			}
		} else if raw, err := json.Marshal(body.Detail); err == nil {
			apiErr.Message = string(raw)
		}
	}
	return apiErr
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
