// Package plotting renders labelled point sets.
package plotting

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Scatter plots the first two coordinates of every row of X, one colour and
// glyph per label. One-dimensional points are drawn on the x axis.
func Scatter(X mat.Matrix, labels []int, title string) (*plot.Plot, error) {
	n, d := X.Dims()
	if len(labels) != n {
		return nil, fmt.Errorf("plotting: %d labels for %d points", len(labels), n)
	}

	groups := make(map[int]plotter.XYs)
	for i, l := range labels {
		xy := plotter.XY{X: X.At(i, 0)}
		if d > 1 {
			xy.Y = X.At(i, 1)
		}
		groups[l] = append(groups[l], xy)
	}

	keys := make([]int, 0, len(groups))
	for l := range groups {
		keys = append(keys, l)
	}
	slices.Sort(keys)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x0"
	p.Y.Label.Text = "x1"

	for i, l := range keys {
		s, err := plotter.NewScatter(groups[l])
		if err != nil {
			return nil, fmt.Errorf("plotting: cluster %d: %w", l, err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Shape = plotutil.Shape(i)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("cluster %d", l), s)
	}

	return p, nil
}

// Save writes p to path; the format follows the file extension.
func Save(p *plot.Plot, path string) error {
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
