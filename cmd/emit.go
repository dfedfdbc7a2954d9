package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gaurav-prasanna/finpipe/core"
	"github.com/gaurav-prasanna/finpipe/core/output"
	"github.com/gaurav-prasanna/finpipe/core/render"
	"go.uber.org/zap"
)

// selectRenderer creates the Renderer named by --format.
func selectRenderer(format string) (core.Renderer, error) {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return render.NewMarkdownRenderer(), nil
	case "json":
		return render.NewJSONRenderer(), nil
	case "pdf":
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q: use markdown, json or pdf", format)
	}
}

// emit renders one result and writes it to stdout or --output_dir.
func emit(source, operation, param, markdown string, records any) error {
	renderer, err := selectRenderer(flagFormat)
	if err != nil {
		return err
	}
	out := core.Output{
		Meta: core.OutputMeta{
			Source:    source,
			Operation: operation,
			Param:     param,
			FetchedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Markdown: markdown,
		Records:  records,
	}
	if markdown == "" && records == nil {
		app.log.Info("no content", zap.String("source", source), zap.String("operation", operation), zap.String("param", param))
	}

	data, err := renderer.Render(out)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	writer, err := output.New(flagOutputDir, os.Stdout)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(out.Meta, data, renderer.Extension())
	if err != nil {
		return err
	}
	if path != "" {
		fmt.Fprintf(os.Stderr, "✓ Written: %s\n", path)
	}
	return nil
}

// matchesMarkdown renders ticker matches as a table.
func matchesMarkdown(matches []core.TickerMatch) string {
	if len(matches) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("| Code | Name | Market |\n| --- | --- | --- |\n")
	for _, m := range matches {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", m.Code, m.Name, m.Market)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// keyedMarkdown renders batch results as one section per key in sorted order.
func keyedMarkdown(results map[string]string) string {
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sections := make([]string, 0, len(keys))
	for _, k := range keys {
		body := results[k]
		if body == "" {
			body = "_no data_"
		}
		sections = append(sections, "## "+k+"\n\n"+body)
	}
	return strings.Join(sections, "\n\n")
}

// recordsMarkdown renders any JSON-serializable records as a fenced block.
func recordsMarkdown(records any) string {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return ""
	}
	return "```json\n" + string(data) + "\n```"
}
