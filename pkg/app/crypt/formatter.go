package crypt

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FormatOutput writes results to w according to the output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats results as a table
func formatTable(w io.Writer, response *Response) error {
	if len(response.Results) == 0 {
		fmt.Fprintln(w, "No assets processed.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Header
	fmt.Fprintf(tw, "PATH\tKIND\tSTATUS\tSEED\tBODY\tTAG\tOUTPUT\n")
	fmt.Fprintf(tw, "----\t----\t------\t----\t----\t---\t------\n")

	// Sort by path for consistent output
	results := make([]FileResult, len(response.Results))
	copy(results, response.Results)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	for _, r := range results {
		output := r.OutputPath
		if r.Failed() {
			output = r.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Path, r.Kind, r.Status, dash(r.Seed), formatBytes(int64(r.BodySize)), dash(r.Tag), dash(output))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, FormatSummary(response))
	return nil
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatSummary provides a one-line summary of a run
func FormatSummary(response *Response) string {
	total := len(response.Results)
	summary := fmt.Sprintf("%s: %d asset", response.Operation, total)
	if total != 1 {
		summary += "s"
	}
	summary += fmt.Sprintf(" (%d processed, %d skipped, %d failed)", response.Processed, response.Skipped, response.Failed)

	var totalSize int64
	for _, r := range response.Results {
		totalSize += int64(r.BodySize)
	}
	summary += fmt.Sprintf(", %s of body data in %v", formatBytes(totalSize), response.Duration)
	return summary
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatBytes formats byte count as human readable
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
