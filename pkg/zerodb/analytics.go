package zerodb

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/ainative/ainative-go/pkg/ainative"
)

const (
	analyticsPath = "/zerodb/analytics"

	defaultGranularity   = "daily"
	defaultMetricType    = "all"
	defaultSeverity      = "all"
	defaultTrendPeriod   = 30
	defaultInsightsLimit = 100
	defaultReportType    = "summary"
	defaultReportFormat  = "json"
)

// AnalyticsClient reports usage, performance, and cost analytics for ZeroDB.
type AnalyticsClient struct {
	api *ainative.Client
}

// UsageAnalyticsParams scopes a usage report. Granularity is one of hourly,
// daily, weekly, or monthly and defaults to daily.
type UsageAnalyticsParams struct {
	ProjectID   string
	StartDate   time.Time
	EndDate     time.Time
	Granularity string
}

// Usage returns usage analytics over the requested window.
func (c *AnalyticsClient) Usage(ctx context.Context, p UsageAnalyticsParams) (map[string]interface{}, error) {
	granularity := p.Granularity
	if granularity == "" {
		granularity = defaultGranularity
	}

	q := url.Values{}
	q.Set("granularity", granularity)
	if p.ProjectID != "" {
		q.Set("project_id", p.ProjectID)
	}
	setDateRange(q, p.StartDate, p.EndDate)

	var out map[string]interface{}
	if err := c.api.Get(ctx, analyticsPath+"/usage", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Performance returns performance metrics. metricType is one of latency,
// throughput, errors, or all; the empty string means all. projectID is
// optional.
func (c *AnalyticsClient) Performance(ctx context.Context, projectID, metricType string) (map[string]interface{}, error) {
	if metricType == "" {
		metricType = defaultMetricType
	}

	q := url.Values{}
	q.Set("metric_type", metricType)
	if projectID != "" {
		q.Set("project_id", projectID)
	}

	var out map[string]interface{}
	if err := c.api.Get(ctx, analyticsPath+"/performance", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Storage returns storage statistics. projectID is optional.
func (c *AnalyticsClient) Storage(ctx context.Context, projectID string) (map[string]interface{}, error) {
	q := url.Values{}
	if projectID != "" {
		q.Set("project_id", projectID)
	}

	var out map[string]interface{}
	if err := c.api.Get(ctx, analyticsPath+"/storage", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Queries returns query pattern insights. limit defaults to 100 and
// projectID is optional.
func (c *AnalyticsClient) Queries(ctx context.Context, projectID string, limit int) (map[string]interface{}, error) {
	if limit <= 0 {
		limit = defaultInsightsLimit
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if projectID != "" {
		q.Set("project_id", projectID)
	}

	var out map[string]interface{}
	if err := c.api.Get(ctx, analyticsPath+"/queries", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CostAnalysisParams scopes a cost report.
type CostAnalysisParams struct {
	ProjectID string
	StartDate time.Time
	EndDate   time.Time
}

// Costs returns cost analysis and projections.
func (c *AnalyticsClient) Costs(ctx context.Context, p CostAnalysisParams) (map[string]interface{}, error) {
	q := url.Values{}
	if p.ProjectID != "" {
		q.Set("project_id", p.ProjectID)
	}
	setDateRange(q, p.StartDate, p.EndDate)

	var out map[string]interface{}
	if err := c.api.Get(ctx, analyticsPath+"/costs", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TrendsParams selects a metric trend. Metric is one of vectors, queries,
// storage, or errors. Period is in days and defaults to 30.
type TrendsParams struct {
	Metric    string
	ProjectID string
	Period    int
}

// Trends returns trend data points for a metric.
func (c *AnalyticsClient) Trends(ctx context.Context, p TrendsParams) ([]map[string]interface{}, error) {
	period := p.Period
	if period <= 0 {
		period = defaultTrendPeriod
	}

	q := url.Values{}
	q.Set("metric", p.Metric)
	q.Set("period", strconv.Itoa(period))
	if p.ProjectID != "" {
		q.Set("project_id", p.ProjectID)
	}

	var out struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := c.api.Get(ctx, analyticsPath+"/trends", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Anomalies returns detected usage anomalies. severity filters by low,
// medium, high, or critical; the empty string means all.
func (c *AnalyticsClient) Anomalies(ctx context.Context, projectID, severity string) ([]map[string]interface{}, error) {
	if severity == "" {
		severity = defaultSeverity
	}

	q := url.Values{}
	q.Set("severity", severity)
	if projectID != "" {
		q.Set("project_id", projectID)
	}

	var out struct {
		Anomalies []map[string]interface{} `json:"anomalies"`
	}
	if err := c.api.Get(ctx, analyticsPath+"/anomalies", q, &out); err != nil {
		return nil, err
	}
	return out.Anomalies, nil
}

// ExportReportParams describes an analytics report export. ReportType is one
// of summary, detailed, or custom (default summary); Format is one of json,
// csv, or pdf (default json).
type ExportReportParams struct {
	ReportType string
	Format     string
	ProjectID  string
	StartDate  time.Time
	EndDate    time.Time
}

// ExportReport generates an analytics report and returns its data or a
// download URL.
func (c *AnalyticsClient) ExportReport(ctx context.Context, p ExportReportParams) (map[string]interface{}, error) {
	reportType := p.ReportType
	if reportType == "" {
		reportType = defaultReportType
	}
	format := p.Format
	if format == "" {
		format = defaultReportFormat
	}

	body := map[string]interface{}{
		"report_type": reportType,
		"format":      format,
	}
	if p.ProjectID != "" {
		body["project_id"] = p.ProjectID
	}
	if !p.StartDate.IsZero() {
		body["start_date"] = p.StartDate.Format(time.RFC3339)
	}
	if !p.EndDate.IsZero() {
		body["end_date"] = p.EndDate.Format(time.RFC3339)
	}

	var out map[string]interface{}
	if err := c.api.Post(ctx, analyticsPath+"/export", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// setDateRange adds RFC3339 start_date/end_date params when set.
func setDateRange(q url.Values, start, end time.Time) {
	if !start.IsZero() {
		q.Set("start_date", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		q.Set("end_date", end.Format(time.RFC3339))
	}
}
