package zerodb

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/ainative/ainative-go/pkg/ainative"
)

const (
	vectorsPath      = "/zerodb/vectors"
	defaultNamespace = "default"
	defaultTopK      = 10
)

// VectorsClient manages vector storage and similarity search.
type VectorsClient struct {
	api *ainative.Client
}

// VectorItem is a single vector for upsert. ID is optional; the server
// assigns one when it is empty.
type VectorItem struct {
	ID       string                 `json:"id,omitempty"`
	Vector   []float32              `json:"vector"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// UpsertVectorsParams carries a batch of vectors for insertion or update.
type UpsertVectorsParams struct {
	ProjectID string
	Namespace string
	Items     []VectorItem
}

// Upsert inserts or updates vectors in a namespace.
func (c *VectorsClient) Upsert(ctx context.Context, p UpsertVectorsParams) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"project_id": p.ProjectID,
		"namespace":  namespaceOrDefault(p.Namespace),
		"items":      p.Items,
	}

	var out map[string]interface{}
	if err := c.api.Put(ctx, vectorsPath, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchVectorsParams describes a similarity search. TopK defaults to 10.
// IncludeMetadata defaults to true and IncludeValues to false; use
// ainative.Bool to override.
type SearchVectorsParams struct {
	ProjectID       string
	Vector          []float32
	TopK            int
	Namespace       string
	Filter          map[string]interface{}
	IncludeMetadata *bool
	IncludeValues   *bool
}

// Search returns the nearest neighbors of the query vector with scores.
func (c *VectorsClient) Search(ctx context.Context, p SearchVectorsParams) ([]map[string]interface{}, error) {
	topK := p.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	body := map[string]interface{}{
		"project_id":       p.ProjectID,
		"vector":           p.Vector,
		"top_k":            topK,
		"namespace":        namespaceOrDefault(p.Namespace),
		"include_metadata": boolOrDefault(p.IncludeMetadata, true),
		"include_values":   boolOrDefault(p.IncludeValues, false),
	}
	if p.Filter != nil {
		body["filter"] = p.Filter
	}

	var out struct {
		Results []map[string]interface{} `json:"results"`
	}
	if err := c.api.Post(ctx, vectorsPath+"/search", body, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// FetchVectorsParams identifies vectors to retrieve by ID. IncludeMetadata
// and IncludeValues both default to true.
type FetchVectorsParams struct {
	ProjectID       string
	IDs             []string
	Namespace       string
	IncludeMetadata *bool
	IncludeValues   *bool
}

// Fetch retrieves vectors by ID.
func (c *VectorsClient) Fetch(ctx context.Context, p FetchVectorsParams) ([]map[string]interface{}, error) {
	q := url.Values{}
	q.Set("project_id", p.ProjectID)
	q.Set("ids", strings.Join(p.IDs, ","))
	q.Set("namespace", namespaceOrDefault(p.Namespace))
	q.Set("include_metadata", strconv.FormatBool(boolOrDefault(p.IncludeMetadata, true)))
	q.Set("include_values", strconv.FormatBool(boolOrDefault(p.IncludeValues, true)))

	var out struct {
		Vectors []map[string]interface{} `json:"vectors"`
	}
	if err := c.api.Get(ctx, vectorsPath, q, &out); err != nil {
		return nil, err
	}
	return out.Vectors, nil
}

// DeleteVectorsParams selects vectors to delete. Exactly one selector is
// used, in order of precedence: DeleteAll, IDs, Filter.
type DeleteVectorsParams struct {
	ProjectID string
	Namespace string
	IDs       []string
	DeleteAll bool
	Filter    map[string]interface{}
}

// Delete removes vectors matching the selector. It fails with a validation
// error when no selector is provided.
func (c *VectorsClient) Delete(ctx context.Context, p DeleteVectorsParams) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"project_id": p.ProjectID,
		"namespace":  namespaceOrDefault(p.Namespace),
	}

	switch {
	case p.DeleteAll:
		body["delete_all"] = true
	case len(p.IDs) > 0:
		body["ids"] = p.IDs
	case p.Filter != nil:
		body["filter"] = p.Filter
	default:
		return nil, ainative.NewError(ainative.CodeValidationError, "no vector selector provided").
			WithSuggestion("Set IDs, Filter, or DeleteAll on DeleteVectorsParams")
	}

	var out map[string]interface{}
	if err := c.api.Delete(ctx, vectorsPath, nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateVectorMetadataParams replaces the metadata of a single vector.
type UpdateVectorMetadataParams struct {
	ProjectID string
	ID        string
	Metadata  map[string]interface{}
	Namespace string
}

// UpdateMetadata replaces the metadata of one vector without touching its
// values.
func (c *VectorsClient) UpdateMetadata(ctx context.Context, p UpdateVectorMetadataParams) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"project_id": p.ProjectID,
		"id":         p.ID,
		"metadata":   p.Metadata,
		"namespace":  namespaceOrDefault(p.Namespace),
	}

	var out map[string]interface{}
	if err := c.api.Patch(ctx, vectorsPath+"/"+p.ID+"/metadata", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats returns index statistics for a project. namespace is optional.
func (c *VectorsClient) Stats(ctx context.Context, projectID, namespace string) (map[string]interface{}, error) {
	q := url.Values{}
	q.Set("project_id", projectID)
	if namespace != "" {
		q.Set("namespace", namespace)
	}

	var out map[string]interface{}
	if err := c.api.Get(ctx, vectorsPath+"/stats", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func namespaceOrDefault(ns string) string {
	if ns == "" {
		return defaultNamespace
	}
	return ns
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
