package zerodb

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ainative/ainative-go/pkg/ainative"
)

const projectsPath = "/zerodb/projects"

// ProjectStatus is the lifecycle state of a ZeroDB project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectSuspended ProjectStatus = "suspended"
	ProjectArchived  ProjectStatus = "archived"
	ProjectDeleted   ProjectStatus = "deleted"
)

// ProjectsClient manages ZeroDB projects.
type ProjectsClient struct {
	api *ainative.Client
}

// CreateProjectParams describes a new project.
type CreateProjectParams struct {
	Name        string
	Description string
	Metadata    map[string]interface{}
	Config      map[string]interface{}
}

// Create provisions a new project.
func (c *ProjectsClient) Create(ctx context.Context, p CreateProjectParams) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"metadata":    orEmpty(p.Metadata),
		"config":      orEmpty(p.Config),
	}

	var out map[string]interface{}
	if err := c.api.Post(ctx, projectsPath, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListProjectsParams filters and pages a project listing.
type ListProjectsParams struct {
	Limit          int
	Offset         int
	Status         ProjectStatus
	OrganizationID string
}

// List returns projects with pagination info.
func (c *ProjectsClient) List(ctx context.Context, p ListProjectsParams) (map[string]interface{}, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(p.Offset))
	if p.Status != "" {
		q.Set("status", string(p.Status))
	}
	if p.OrganizationID != "" {
		q.Set("organization_id", p.OrganizationID)
	}

	var out map[string]interface{}
	if err := c.api.Get(ctx, projectsPath, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single project.
func (c *ProjectsClient) Get(ctx context.Context, projectID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.api.Get(ctx, projectsPath+"/"+projectID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProjectParams carries the fields to change on a project. Nil fields
// are left untouched; pointer fields allow setting a value to the empty
// string (see ainative.String).
type UpdateProjectParams struct {
	Name        *string
	Description *string
	Metadata    map[string]interface{}
	Config      map[string]interface{}
}

// Update applies a partial update to a project.
func (c *ProjectsClient) Update(ctx context.Context, projectID string, p UpdateProjectParams) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if p.Name != nil {
		body["name"] = *p.Name
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.Metadata != nil {
		body["metadata"] = p.Metadata
	}
	if p.Config != nil {
		body["config"] = p.Config
	}

	var out map[string]interface{}
	if err := c.api.Patch(ctx, projectsPath+"/"+projectID, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus transitions a project to a new lifecycle state. reason is
// optional and recorded in the project's audit trail.
func (c *ProjectsClient) UpdateStatus(ctx context.Context, projectID string, status ProjectStatus, reason string) (map[string]interface{}, error) {
	var reasonVal interface{}
	if reason != "" {
		reasonVal = reason
	}
	body := map[string]interface{}{
		"status": string(status),
		"reason": reasonVal,
	}

	var out map[string]interface{}
	if err := c.api.Put(ctx, projectsPath+"/"+projectID+"/status", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Suspend moves a project to the suspended state.
func (c *ProjectsClient) Suspend(ctx context.Context, projectID, reason string) (map[string]interface{}, error) {
	return c.UpdateStatus(ctx, projectID, ProjectSuspended, reason)
}

// Activate moves a project back to the active state.
func (c *ProjectsClient) Activate(ctx context.Context, projectID string) (map[string]interface{}, error) {
	return c.UpdateStatus(ctx, projectID, ProjectActive, "")
}

// Delete removes a project and all of its data.
func (c *ProjectsClient) Delete(ctx context.Context, projectID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.api.Delete(ctx, projectsPath+"/"+projectID, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Statistics returns storage and query statistics for a project.
func (c *ProjectsClient) Statistics(ctx context.Context, projectID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.api.Get(ctx, projectsPath+"/"+projectID+"/statistics", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Collections lists the vector collections belonging to a project.
func (c *ProjectsClient) Collections(ctx context.Context, projectID string) ([]map[string]interface{}, error) {
	var out struct {
		Collections []map[string]interface{} `json:"collections"`
	}
	if err := c.api.Get(ctx, projectsPath+"/"+projectID+"/collections", nil, &out); err != nil {
		return nil, err
	}
	return out.Collections, nil
}
