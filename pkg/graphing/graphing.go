// Package graphing renders recorded .bench files as HTML line charts, one
// chart per dependent column, overlaying the same column across files so
// databases can be compared directly.
package graphing

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"GraphBench/pkg/results"
)

type loadedTable struct {
	label string
	xName string
	x     []float64
	table *results.Table
}

// Generate reads one or more .bench files and writes a single HTML page of
// charts. All files must share the same independent column.
func Generate(inputs []string, outputPath string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("graphing: no input files")
	}

	var (
		tables []loadedTable
		xName  string
	)
	for _, path := range inputs {
		t, err := results.Read(path)
		if err != nil {
			return err
		}
		name, x, err := t.XAxis()
		if err != nil {
			return err
		}
		if xName == "" {
			xName = name
		} else if name != xName {
			return fmt.Errorf("graphing: %s has x axis %q, want %q", path, name, xName)
		}
		tables = append(tables, loadedTable{
			label: DatabaseLabel(path),
			xName: name,
			x:     x,
			table: t,
		})
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	for _, header := range dependentHeaders(tables) {
		page.AddCharts(createLineChart(header, xName, tables))
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("graphing: create output: %w", err)
	}
	defer file.Close()

	if err := page.Render(file); err != nil {
		return fmt.Errorf("graphing: render page: %w", err)
	}
	return nil
}

// dependentHeaders returns the union of non-independent headers across all
// tables, in first-seen order.
func dependentHeaders(tables []loadedTable) []string {
	var headers []string
	seen := make(map[string]bool)
	for _, lt := range tables {
		for _, h := range lt.table.Headers {
			if strings.HasPrefix(h, "_") || seen[h] {
				continue
			}
			seen[h] = true
			headers = append(headers, h)
		}
	}
	return headers
}

func createLineChart(header, xName string, tables []loadedTable) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: header}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
	)

	for _, lt := range tables {
		col, ok := lt.table.Column(header)
		if !ok {
			continue
		}
		data := make([]opts.LineData, 0, len(col))
		for i, v := range col {
			if i < len(lt.x) {
				data = append(data, opts.LineData{Value: []interface{}{lt.x[i], v}})
			}
		}
		line.AddSeries(lt.label, data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), ShowSymbol: opts.Bool(true)}),
		)
	}

	return line
}

// DatabaseLabel derives a series label from a result file name of the form
// {workload}_{database}_{date}_{time}.bench. Workload names may themselves
// contain underscores; the timestamp always occupies the last two segments,
// putting the database identity third from the end.
func DatabaseLabel(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, results.Extension)

	parts := strings.Split(base, "_")
	if len(parts) < 4 {
		return base
	}
	return parts[len(parts)-3]
}
