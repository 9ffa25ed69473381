package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cxd309/intercept-engine/internal/engine"
	"github.com/cxd309/intercept-engine/internal/trajectory"
)

func lineData(tr trajectory.Trajectory) []opts.LineData {
	data := make([]opts.LineData, len(tr.Samples))
	for i, s := range tr.Samples {
		data[i] = opts.LineData{Value: []interface{}{s.X, s.Y}}
	}
	return data
}

// Chart builds the interactive chart of a report.
func Chart(r engine.Report) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Intercept", Width: "1000px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: Title(r), Subtitle: fmt.Sprintf("run=%s dt=%gs g=%g", r.Meta.RunID, r.Meta.TimeStep, r.Meta.Gravity)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "x (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "y (m)", Min: 0, NameLocation: "middle", NameGap: 30}),
	)

	line.AddSeries("attacker", lineData(r.Attacker.Trajectory),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))

	if r.Defender.Trajectory != nil && r.Solution != nil {
		line.AddSeries("defender", lineData(*r.Defender.Trajectory),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))

		impact := charts.NewScatter()
		impact.AddSeries("impact", []opts.ScatterData{
			{Value: []interface{}{r.Solution.ImpactPoint.X, r.Solution.ImpactPoint.Y}, SymbolSize: 12},
		})
		line.Overlap(impact)
	}
	return line
}

// WriteHTML renders r as a standalone HTML page.
func WriteHTML(r engine.Report, w io.Writer) error {
	if err := Chart(r).Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// SaveHTML renders r to an HTML file at path.
func SaveHTML(r engine.Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if err := WriteHTML(r, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
