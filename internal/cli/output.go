package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Print renders a single response object in the configured output format
func (a *app) Print(v map[string]interface{}) error {
	if a.Config.Output == "json" {
		return writeJSON(os.Stdout, v)
	}
	return writeKeyValues(os.Stdout, v)
}

// PrintList renders rows in the configured output format. Table mode shows
// the given columns; nil columns always renders JSON.
func (a *app) PrintList(rows []map[string]interface{}, columns []string) error {
	if a.Config.Output == "json" || columns == nil {
		return writeJSON(os.Stdout, rows)
	}
	if len(rows) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	return writeTable(os.Stdout, rows, columns)
}

// PrintRows unwraps a list from a response envelope and renders it. Falls
// back to the whole object when the key is missing.
func (a *app) PrintRows(v map[string]interface{}, key string, columns []string) error {
	rows := rowsFrom(v, key)
	if rows == nil {
		return a.Print(v)
	}
	return a.PrintList(rows, columns)
}

// rowsFrom extracts a list of objects from a decoded response envelope.
// A nil return means the shape was not a list of objects.
func rowsFrom(v map[string]interface{}, key string) []map[string]interface{} {
	items, ok := v[key].([]interface{})
	if !ok {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if row, ok := item.(map[string]interface{}); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeKeyValues(w io.Writer, v map[string]interface{}) error {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, formatValue(v[k]))
	}
	return tw.Flush()
}

// maxCellWidth caps table cells so one long field cannot wreck the layout.
const maxCellWidth = 60

func writeTable(w io.Writer, rows []map[string]interface{}, columns []string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(columns, "\t")))
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = truncate(formatValue(row[col]), maxCellWidth)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// formatValue renders a decoded JSON value for a table cell
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

// truncate shortens s for table display
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

// parseJSONObject parses a JSON object flag value. Empty input returns nil.
func parseJSONObject(flag, raw string) (map[string]interface{}, error) {
	if raw == "" {
		return nil, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("invalid JSON for --%s: %w", flag, err)
	}
	return m, nil
}

// confirm prompts for a yes/no answer on stdin
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
