// Package zerodb provides clients for the ZeroDB APIs: projects, vectors,
// memory, and analytics. All operations are thin wrappers over the ainative
// client core; they marshal parameters into request bodies or query strings
// and unwrap response envelopes.
package zerodb

import (
	"context"
	"net/url"

	"github.com/ainative/ainative-go/pkg/ainative"
)

// defaultListLimit is applied when a list operation is called with no limit.
const defaultListLimit = 100

// Client aggregates the ZeroDB resource clients.
type Client struct {
	api *ainative.Client

	Projects  *ProjectsClient
	Vectors   *VectorsClient
	Memory    *MemoryClient
	Analytics *AnalyticsClient
}

// NewClient wraps an ainative client with the ZeroDB resource clients.
func NewClient(api *ainative.Client) *Client {
	return &Client{
		api:       api,
		Projects:  &ProjectsClient{api: api},
		Vectors:   &VectorsClient{api: api},
		Memory:    &MemoryClient{api: api},
		Analytics: &AnalyticsClient{api: api},
	}
}

// Health reports the ZeroDB service health.
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.api.Get(ctx, "/zerodb/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Usage returns account-level usage statistics. projectID is optional and
// narrows the report to a single project.
func (c *Client) Usage(ctx context.Context, projectID string) (map[string]interface{}, error) {
	var q url.Values
	if projectID != "" {
		q = url.Values{"project_id": {projectID}}
	}
	var out map[string]interface{}
	if err := c.api.Get(ctx, "/zerodb/usage", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// orEmpty substitutes an empty map for nil so optional JSON objects are
// serialized as {} rather than null.
func orEmpty(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
