package collector

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fastjson"
	"golang.org/x/sync/singleflight"

	"github.com/marketlens/marketlens/pkg/config"
	"github.com/marketlens/marketlens/pkg/domain/market"
	"github.com/marketlens/marketlens/pkg/infra/httpx"
)

const apiKeyHeader = "X-Api-Key"

type fetchFunc func(requestURL string) ([]byte, error)

type Opts struct {
	// Fetch replaces the HTTP transport, for tests.
	Fetch fetchFunc
}

type newsClient struct {
	logger     *logrus.Logger
	baseURL    string
	apiKey     string
	maxResults int
	timeout    time.Duration
	breaker    httpx.CircuitBreaker
	fetch      fetchFunc
	sf         singleflight.Group
	parserPool fastjson.ParserPool
}

// NewNewsClient builds a Collector over a news-search JSON API. Concurrent
// collections for the same sector are coalesced into one upstream call, and
// a circuit breaker keeps a failing upstream from being hammered.
func NewNewsClient(cfg *config.CollectorConfig, logger *logrus.Logger, opts *Opts) Collector {
	client := &fasthttp.Client{
		ReadTimeout:              cfg.Timeout(),
		WriteTimeout:             cfg.Timeout(),
		MaxConnsPerHost:          512,
		MaxIdleConnDuration:      120 * time.Second,
		NoDefaultUserAgentHeader: true,
	}

	c := &newsClient{
		logger:     logger,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		timeout:    cfg.Timeout(),
		breaker:    httpx.NewCircuitBreaker("news-collector", cfg.Cooldown(), cfg.BreakerMaxFailures),
	}

	if opts != nil && opts.Fetch != nil {
		c.fetch = opts.Fetch
	} else {
		c.fetch = func(requestURL string) ([]byte, error) {
			return c.doRequest(client, requestURL)
		}
	}

	return c
}

// Collect never propagates a transport or parse fault: anything that goes
// wrong is logged and degrades to an empty result.
func (c *newsClient) Collect(ctx context.Context, sector string) ([]market.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, _, _ := c.sf.Do(sector, func() (interface{}, error) {
		return c.collect(sector), nil
	})

	articles, ok := result.([]market.Article)
	if !ok {
		return nil, nil
	}
	return articles, nil
}

func (c *newsClient) collect(sector string) []market.Article {
	requestURL := c.buildURL(sector)

	var body []byte
	err := c.breaker.Execute(func() error {
		var fetchErr error
		body, fetchErr = c.fetch(requestURL)
		return fetchErr
	})
	if err != nil {
		c.logger.WithError(err).WithField("sector", sector).Error("failed to collect market data")
		return nil
	}

	articles, err := c.parseArticles(body)
	if err != nil {
		c.logger.WithError(err).WithField("sector", sector).Error("failed to parse market data response")
		return nil
	}

	c.logger.WithFields(logrus.Fields{
		"sector":   sector,
		"articles": len(articles),
	}).Info("collected market data")

	return articles
}

func (c *newsClient) buildURL(sector string) string {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("India %s market latest news trends", sector))
	query.Set("sortBy", "publishedAt")
	query.Set("language", "en")
	query.Set("pageSize", fmt.Sprintf("%d", c.maxResults))
	return fmt.Sprintf("%s/v2/everything?%s", c.baseURL, query.Encode())
}

func (c *newsClient) doRequest(client *fasthttp.Client, requestURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(apiKeyHeader, c.apiKey)

	if err := client.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("news request returned status %d", resp.StatusCode())
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

func (c *newsClient) parseArticles(body []byte) ([]market.Article, error) {
	parser := c.parserPool.Get()
	defer c.parserPool.Put(parser)

	root, err := parser.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("invalid response body: %w", err)
	}

	items := root.GetArray("articles")
	articles := make([]market.Article, 0, len(items))
	for _, item := range items {
		if len(articles) >= c.maxResults {
			break
		}
		articles = append(articles, market.Article{
			Title:   string(item.GetStringBytes("title")),
			Source:  string(item.GetStringBytes("source", "name")),
			Date:    string(item.GetStringBytes("publishedAt")),
			Summary: string(item.GetStringBytes("description")),
			URL:     string(item.GetStringBytes("url")),
		})
	}

	return articles, nil
}
