// Package render draws run reports: a static PNG through gonum/plot and an
// interactive HTML chart through go-echarts.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/cxd309/intercept-engine/internal/engine"
	"github.com/cxd309/intercept-engine/internal/trajectory"
)

var (
	attackerColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	defenderColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	impactColor   = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
)

// Title returns the heading used for a report in both renderers.
func Title(r engine.Report) string {
	if !r.Intercepted || r.Solution == nil || r.Defender.Flight == nil {
		return fmt.Sprintf("No intercept possible (v0_a=%.2f m/s, v0_d max=%.2f m/s)",
			r.Attacker.Flight.V0, r.Defender.MaxSpeed)
	}
	return fmt.Sprintf("Intercept: θ_d=%.2f°, Δt=%.2fs, v0_a=%.2f m/s, v0_d=%.2f m/s (max %.2f)",
		r.Defender.Flight.ThetaDeg, r.Solution.Delay, r.Attacker.Flight.V0, r.Solution.V0D, r.Defender.MaxSpeed)
}

func xys(tr trajectory.Trajectory) plotter.XYs {
	pts := make(plotter.XYs, len(tr.Samples))
	for i, s := range tr.Samples {
		pts[i] = plotter.XY{X: s.X, Y: s.Y}
	}
	return pts
}

// Plot builds the x/y chart of a report.
func Plot(r engine.Report) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = Title(r)
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	attacker, err := plotter.NewLine(xys(r.Attacker.Trajectory))
	if err != nil {
		return nil, fmt.Errorf("attacker line: %w", err)
	}
	attacker.Color = attackerColor
	attacker.Width = vg.Points(1.5)
	p.Add(attacker)
	p.Legend.Add("attacker", attacker)

	if r.Defender.Trajectory != nil && r.Solution != nil {
		defender, err := plotter.NewLine(xys(*r.Defender.Trajectory))
		if err != nil {
			return nil, fmt.Errorf("defender line: %w", err)
		}
		defender.Color = defenderColor
		defender.Width = vg.Points(1.5)
		p.Add(defender)
		p.Legend.Add("defender", defender)

		impact, err := plotter.NewScatter(plotter.XYs{{X: r.Solution.ImpactPoint.X, Y: r.Solution.ImpactPoint.Y}})
		if err != nil {
			return nil, fmt.Errorf("impact marker: %w", err)
		}
		impact.GlyphStyle.Color = impactColor
		impact.GlyphStyle.Radius = vg.Points(4)
		impact.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(impact)
		p.Legend.Add("impact", impact)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// SavePNG renders r to path (the format follows the extension), creating the
// parent directory if needed.
func SavePNG(r engine.Report, path string) error {
	p, err := Plot(r)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating plot directory: %w", err)
	}
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
