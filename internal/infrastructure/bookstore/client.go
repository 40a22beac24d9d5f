package bookstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/B3N14M1N/ChatAI/internal/domain/books"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/metrics"
	"github.com/B3N14M1N/ChatAI/internal/utils/platformerrors"
)

// Client talks to the bookstore catalog service.
type Client struct {
	client  *resty.Client
	baseURL string
}

var _ books.Store = (*Client)(nil)

// NewClient creates a catalog client with its own timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client:  resty.New().SetTimeout(timeout),
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

type recommendResponse struct {
	Books []books.Book `json:"books"`
}

func (c *Client) Recommend(ctx context.Context, query books.RecommendQuery) ([]books.Book, error) {
	var respBody recommendResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(query).
		SetResult(&respBody).
		Post(c.baseURL + "/api/books/recommendations")
	if err != nil {
		metrics.RecordBookStoreRequest("recommend", "error")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"book recommendation request failed", err, "f8c2d6a4-1b73-4e59-90d8-3a6e5c1f9b27")
	}
	if resp.IsError() {
		metrics.RecordBookStoreRequest("recommend", "error")
		return nil, c.errorFromResponse(ctx, resp, "book recommendation request failed")
	}
	metrics.RecordBookStoreRequest("recommend", "ok")
	return respBody.Books, nil
}

type summariesRequest struct {
	Titles []string `json:"titles"`
}

type summariesResponse struct {
	Summaries []books.Summary `json:"summaries"`
}

func (c *Client) Summaries(ctx context.Context, titles []string) ([]books.Summary, error) {
	var respBody summariesResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(summariesRequest{Titles: titles}).
		SetResult(&respBody).
		Post(c.baseURL + "/api/books/summaries")
	if err != nil {
		metrics.RecordBookStoreRequest("summaries", "error")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"book summaries request failed", err, "a5d9e2c7-6f41-4b38-8c02-7e3b1f9d4a65")
	}
	if resp.IsError() {
		metrics.RecordBookStoreRequest("summaries", "error")
		return nil, c.errorFromResponse(ctx, resp, "book summaries request failed")
	}
	metrics.RecordBookStoreRequest("summaries", "ok")
	return respBody.Summaries, nil
}

func (c *Client) errorFromResponse(ctx context.Context, resp *resty.Response, message string) error {
	if resp == nil || resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "1d6c4f82-9a35-4e70-b8d3-5f2a8c6e1b94")
	}
	defer resp.RawResponse.Body.Close()
	body, readErr := io.ReadAll(resp.RawResponse.Body)
	if readErr != nil || len(strings.TrimSpace(string(body))) == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "84b3f1e6-2c59-4d07-a9e4-6d1f8b5a2c70")
	}
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("%s: %s", message, strings.TrimSpace(string(body))), nil, "c9e5a7d3-4f12-4b86-90c7-2e8d6a1f5b39")
}
