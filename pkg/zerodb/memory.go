package zerodb

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ainative/ainative-go/pkg/ainative"
)

const (
	memoryPath = "/zerodb/memory"
	// The list endpoint pluralizes the resource, unlike every other route.
	memoriesPath = "/zerodb/memories"

	defaultMemorySearchLimit  = 10
	defaultRelatedMemoryLimit = 5
	defaultMemoryTitle        = "Memory Entry"
)

// MemoryPriority ranks how aggressively a memory is retained.
type MemoryPriority string

const (
	MemoryLow      MemoryPriority = "low"
	MemoryMedium   MemoryPriority = "medium"
	MemoryHigh     MemoryPriority = "high"
	MemoryCritical MemoryPriority = "critical"
)

// MemoryClient manages memory entries for context retention.
type MemoryClient struct {
	api *ainative.Client
}

// CreateMemoryParams describes a new memory entry. Title defaults to
// "Memory Entry" and Priority to medium.
type CreateMemoryParams struct {
	Content   string
	Title     string
	Tags      []string
	Priority  MemoryPriority
	Metadata  map[string]interface{}
	ProjectID string
	UserID    string
	ExpiresAt time.Time
}

func (p CreateMemoryParams) payload() map[string]interface{} {
	title := p.Title
	if title == "" {
		title = defaultMemoryTitle
	}
	priority := p.Priority
	if priority == "" {
		priority = MemoryMedium
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	body := map[string]interface{}{
		"content":  p.Content,
		"title":    title,
		"tags":     tags,
		"priority": string(priority),
		"metadata": orEmpty(p.Metadata),
	}
	if p.ProjectID != "" {
		body["project_id"] = p.ProjectID
	}
	if p.UserID != "" {
		body["user_id"] = p.UserID
	}
	if !p.ExpiresAt.IsZero() {
		body["expires_at"] = p.ExpiresAt.Format(time.RFC3339)
	}
	return body
}

// Create stores a new memory entry.
func (c *MemoryClient) Create(ctx context.Context, p CreateMemoryParams) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.api.Post(ctx, memoryPath, p.payload(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMemoriesParams filters and pages a memory listing.
type ListMemoriesParams struct {
	Limit     int
	Offset    int
	ProjectID string
	UserID    string
	Tags      []string
	Priority  MemoryPriority
	Search    string
}

// List returns memory entries with pagination info.
func (c *MemoryClient) List(ctx context.Context, p ListMemoriesParams) (map[string]interface{}, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(p.Offset))
	if p.ProjectID != "" {
		q.Set("project_id", p.ProjectID)
	}
	if p.UserID != "" {
		q.Set("user_id", p.UserID)
	}
	if len(p.Tags) > 0 {
		q.Set("tags", strings.Join(p.Tags, ","))
	}
	if p.Priority != "" {
		q.Set("priority", string(p.Priority))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}

	var out map[string]interface{}
	if err := c.api.Get(ctx, memoriesPath, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single memory entry.
func (c *MemoryClient) Get(ctx context.Context, memoryID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.api.Get(ctx, memoryPath+"/"+memoryID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateMemoryParams carries the fields to change on a memory entry. Nil
// fields are left untouched.
type UpdateMemoryParams struct {
	Content  *string
	Title    *string
	Tags     []string
	Priority MemoryPriority
	Metadata map[string]interface{}
}

// Update applies a partial update to a memory entry.
func (c *MemoryClient) Update(ctx context.Context, memoryID string, p UpdateMemoryParams) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if p.Content != nil {
		body["content"] = *p.Content
	}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Tags != nil {
		body["tags"] = p.Tags
	}
	if p.Priority != "" {
		body["priority"] = string(p.Priority)
	}
	if p.Metadata != nil {
		body["metadata"] = p.Metadata
	}

	var out map[string]interface{}
	if err := c.api.Patch(ctx, memoryPath+"/"+memoryID, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a memory entry.
func (c *MemoryClient) Delete(ctx context.Context, memoryID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.api.Delete(ctx, memoryPath+"/"+memoryID, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchMemoriesParams describes a memory search. Limit defaults to 10.
// Semantic defaults to true; set ainative.Bool(false) for plain text search.
type SearchMemoriesParams struct {
	Query     string
	Limit     int
	ProjectID string
	UserID    string
	Semantic  *bool
}

// Search finds memories matching the query.
func (c *MemoryClient) Search(ctx context.Context, p SearchMemoriesParams) ([]map[string]interface{}, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultMemorySearchLimit
	}

	body := map[string]interface{}{
		"query":    p.Query,
		"limit":    limit,
		"semantic": boolOrDefault(p.Semantic, true),
	}
	if p.ProjectID != "" {
		body["project_id"] = p.ProjectID
	}
	if p.UserID != "" {
		body["user_id"] = p.UserID
	}

	var out struct {
		Results []map[string]interface{} `json:"results"`
	}
	if err := c.api.Post(ctx, memoryPath+"/search", body, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// BulkCreateMemoriesParams carries a batch of memory entries. ProjectID, when
// set, applies to the whole batch.
type BulkCreateMemoriesParams struct {
	Memories  []CreateMemoryParams
	ProjectID string
}

// BulkCreate stores multiple memory entries in one request.
func (c *MemoryClient) BulkCreate(ctx context.Context, p BulkCreateMemoriesParams) (map[string]interface{}, error) {
	items := make([]map[string]interface{}, 0, len(p.Memories))
	for _, m := range p.Memories {
		items = append(items, m.payload())
	}

	body := map[string]interface{}{
		"memories": items,
	}
	if p.ProjectID != "" {
		body["project_id"] = p.ProjectID
	}

	var out map[string]interface{}
	if err := c.api.Post(ctx, memoryPath+"/bulk", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Related returns memories related to the given one. limit defaults to 5.
func (c *MemoryClient) Related(ctx context.Context, memoryID string, limit int) ([]map[string]interface{}, error) {
	if limit <= 0 {
		limit = defaultRelatedMemoryLimit
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}

	var out struct {
		Memories []map[string]interface{} `json:"memories"`
	}
	if err := c.api.Get(ctx, memoryPath+"/"+memoryID+"/related", q, &out); err != nil {
		return nil, err
	}
	return out.Memories, nil
}
