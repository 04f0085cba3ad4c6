package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ainative/ainative-go/pkg/zerodb"
)

var (
	analyticsProjectID   string
	analyticsDays        int
	analyticsGranularity string
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Report ZeroDB usage and costs",
	Long:  `Commands for usage, cost, and trend analytics.`,
}

var analyticsUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show usage analytics",
	RunE:  runAnalyticsUsage,
}

var analyticsCostsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Show cost analysis and projections",
	RunE:  runAnalyticsCosts,
}

var analyticsTrendsCmd = &cobra.Command{
	Use:   "trends <metric>",
	Short: "Show trend data for a metric",
	Long: `Show trend data points for a metric over time. Metric is one of
vectors, queries, storage, or errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyticsTrends,
}

func init() {
	analyticsCmd.PersistentFlags().StringVarP(&analyticsProjectID, "project-id", "p", "", "scope to a project")
	analyticsCmd.PersistentFlags().IntVar(&analyticsDays, "days", 30, "report window in days")

	analyticsUsageCmd.Flags().StringVar(&analyticsGranularity, "granularity", "", "bucket size (hourly, daily, weekly, monthly)")

	analyticsCmd.AddCommand(analyticsUsageCmd)
	analyticsCmd.AddCommand(analyticsCostsCmd)
	analyticsCmd.AddCommand(analyticsTrendsCmd)
}

// reportWindow converts the --days flag into a start/end pair ending now.
func reportWindow() (time.Time, time.Time) {
	end := time.Now()
	return end.AddDate(0, 0, -analyticsDays), end
}

func runAnalyticsUsage(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("analytics usage", map[string]interface{}{
		"project_id": analyticsProjectID,
		"days":       analyticsDays,
	})

	start, end := reportWindow()
	res, err := a.ZeroDB.Analytics.Usage(context.Background(), zerodb.UsageAnalyticsParams{
		ProjectID:   analyticsProjectID,
		StartDate:   start,
		EndDate:     end,
		Granularity: analyticsGranularity,
	})
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.Print(res)
}

func runAnalyticsCosts(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("analytics costs", map[string]interface{}{
		"project_id": analyticsProjectID,
		"days":       analyticsDays,
	})

	start, end := reportWindow()
	res, err := a.ZeroDB.Analytics.Costs(context.Background(), zerodb.CostAnalysisParams{
		ProjectID: analyticsProjectID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.Print(res)
}

func runAnalyticsTrends(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("analytics trends", map[string]interface{}{
		"metric": args[0],
		"days":   analyticsDays,
	})

	data, err := a.ZeroDB.Analytics.Trends(context.Background(), zerodb.TrendsParams{
		Metric:    args[0],
		ProjectID: analyticsProjectID,
		Period:    analyticsDays,
	})
	if err != nil {
		return a.Fail(err)
	}

	a.Done(map[string]interface{}{"points": len(data)})
	return a.PrintList(data, nil)
}
