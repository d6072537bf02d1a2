package seoapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/seoscan/seoscan/internal/model"
)

// Provider endpoint paths.
const (
	endpointKeywordMetrics   = "/v1/keywords/metrics"
	endpointRelatedKeywords  = "/v1/keywords/related"
	endpointPeopleAlsoSearch = "/v1/keywords/people_also_search"
	endpointSerpTaskPost     = "/v1/serp/task"
	endpointSerpTaskGet      = "/v1/serp/task/result"
	endpointReferringDomains = "/v1/backlinks/referring_domains"
	endpointCrawlTaskPost    = "/v1/onpage/task"
	endpointCrawlTaskGet     = "/v1/onpage/task/result"
)

// KeywordMetric is the provider's per-keyword metric record.
type KeywordMetric struct {
	Keyword     string  `json:"keyword"`
	Volume      int     `json:"volume"`
	CPC         float64 `json:"cpc"`
	Competition float64 `json:"competition"`
	Trend       float64 `json:"trend"`
}

// SerpItem is one result entry in a completed SERP task. Organic items
// carry a rank and domain; non-organic items carry only their feature
// type (featured_snippet, people_also_ask, ...).
type SerpItem struct {
	Type   string `json:"type"`
	Rank   int    `json:"rank,omitempty"`
	Domain string `json:"domain,omitempty"`
	URL    string `json:"url,omitempty"`
}

// SerpTaskResult is the provider's response for a SERP ranking task.
type SerpTaskResult struct {
	Ready bool       `json:"ready"`
	Items []SerpItem `json:"items,omitempty"`
}

// ReferringDomain is one domain linking to a queried target.
type ReferringDomain struct {
	Domain        string  `json:"domain"`
	AuthorityRank float64 `json:"authority_rank"`
	Backlinks     int     `json:"backlinks"`
	Dofollow      bool    `json:"dofollow"`
}

// CrawlTaskResult is the provider's response for a site crawl task.
type CrawlTaskResult struct {
	Ready   bool               `json:"ready"`
	Summary model.CrawlSummary `json:"summary"`
	Pages   []model.CrawlPage  `json:"pages,omitempty"`
}

// taskRef is the provider's handle for an asynchronous task.
type taskRef struct {
	TaskID string `json:"task_id"`
}

// KeywordMetrics fetches volume, CPC, competition, and trend for the
// given keywords in one request.
func (c *Client) KeywordMetrics(ctx context.Context, keywords []string) ([]KeywordMetric, error) {
	raw, err := c.Request(ctx, endpointKeywordMetrics, map[string]any{"keywords": keywords})
	if err != nil {
		return nil, err
	}

	var metrics []KeywordMetric
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, fmt.Errorf("failed to decode keyword metrics: %w", err)
	}
	return metrics, nil
}

// RelatedKeywords fetches the related-keyword expansion for a seed.
func (c *Client) RelatedKeywords(ctx context.Context, seed string) ([]KeywordMetric, error) {
	raw, err := c.Request(ctx, endpointRelatedKeywords, map[string]any{"keyword": seed})
	if err != nil {
		return nil, err
	}

	var metrics []KeywordMetric
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, fmt.Errorf("failed to decode related keywords: %w", err)
	}
	return metrics, nil
}

// PeopleAlsoSearch fetches the "people also search for" expansion for
// a seed.
func (c *Client) PeopleAlsoSearch(ctx context.Context, seed string) ([]KeywordMetric, error) {
	raw, err := c.Request(ctx, endpointPeopleAlsoSearch, map[string]any{"keyword": seed})
	if err != nil {
		return nil, err
	}

	var metrics []KeywordMetric
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, fmt.Errorf("failed to decode people-also-search keywords: %w", err)
	}
	return metrics, nil
}

// PostSerpTask submits a ranking query for a keyword and returns the
// provider's task identifier.
func (c *Client) PostSerpTask(ctx context.Context, keyword string) (string, error) {
	raw, err := c.Request(ctx, endpointSerpTaskPost, map[string]any{"keyword": keyword})
	if err != nil {
		return "", err
	}

	var ref taskRef
	if err := json.Unmarshal(raw, &ref); err != nil {
		return "", fmt.Errorf("failed to decode serp task reference: %w", err)
	}
	return ref.TaskID, nil
}

// GetSerpResult awaits completion of a SERP task using the client's
// bounded poll loop and returns the result items.
func (c *Client) GetSerpResult(ctx context.Context, taskID string) (*SerpTaskResult, error) {
	var result SerpTaskResult
	err := c.Poll(ctx, "serp task "+taskID, func(ctx context.Context) (bool, error) {
		raw, err := c.Request(ctx, endpointSerpTaskGet, taskRef{TaskID: taskID})
		if err != nil {
			return false, err
		}
		if err := json.Unmarshal(raw, &result); err != nil {
			return false, fmt.Errorf("failed to decode serp task result: %w", err)
		}
		return result.Ready, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ReferringDomains fetches the domains linking to the given target
// domain.
func (c *Client) ReferringDomains(ctx context.Context, target string) ([]ReferringDomain, error) {
	raw, err := c.Request(ctx, endpointReferringDomains, map[string]any{"target": target})
	if err != nil {
		return nil, err
	}

	var domains []ReferringDomain
	if err := json.Unmarshal(raw, &domains); err != nil {
		return nil, fmt.Errorf("failed to decode referring domains: %w", err)
	}
	return domains, nil
}

// PostCrawlTask submits a site crawl for the given URL and returns the
// provider's task identifier.
func (c *Client) PostCrawlTask(ctx context.Context, targetURL string) (string, error) {
	raw, err := c.Request(ctx, endpointCrawlTaskPost, map[string]any{"target": targetURL})
	if err != nil {
		return "", err
	}

	var ref taskRef
	if err := json.Unmarshal(raw, &ref); err != nil {
		return "", fmt.Errorf("failed to decode crawl task reference: %w", err)
	}
	return ref.TaskID, nil
}

// GetCrawlResult awaits completion of a crawl task and returns the
// aggregate summary and per-page results.
func (c *Client) GetCrawlResult(ctx context.Context, taskID string) (*CrawlTaskResult, error) {
	var result CrawlTaskResult
	err := c.Poll(ctx, "crawl task "+taskID, func(ctx context.Context) (bool, error) {
		raw, err := c.Request(ctx, endpointCrawlTaskGet, taskRef{TaskID: taskID})
		if err != nil {
			return false, err
		}
		if err := json.Unmarshal(raw, &result); err != nil {
			return false, fmt.Errorf("failed to decode crawl task result: %w", err)
		}
		return result.Ready, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
