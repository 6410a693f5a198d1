// Offline map visualizer: renders road topology and spawn points to a
// static image for pre-route planning.
package mapviz

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"adasops/internal/simulator"
)

// TopologySource is the subset of world queries the visualizer needs.
type TopologySource interface {
	Name() string
	Topology() ([]simulator.RoadSegment, error)
	SpawnPoints() ([]simulator.Transform, error)
}

// RoadNetwork is the one-shot snapshot the plot is rendered from.
type RoadNetwork struct {
	MapName     string
	Segments    []simulator.RoadSegment
	SpawnPoints []simulator.Location
}

// Fetch queries topology and spawn points once.
func Fetch(src TopologySource) (*RoadNetwork, error) {
	segments, err := src.Topology()
	if err != nil {
		return nil, fmt.Errorf("get topology: %w", err)
	}
	transforms, err := src.SpawnPoints()
	if err != nil {
		return nil, fmt.Errorf("get spawn points: %w", err)
	}
	points := make([]simulator.Location, len(transforms))
	for i, tr := range transforms {
		points[i] = tr.Location
	}
	return &RoadNetwork{MapName: src.Name(), Segments: segments, SpawnPoints: points}, nil
}

var (
	roadColor  = color.Gray{Y: 0x80}
	spawnColor = color.RGBA{R: 0xcc, A: 0xff}
)

// Render draws the network to a PNG file: gray road segments, red spawn
// point markers with index labels, equal axis scale.
func (n *RoadNetwork) Render(outPath string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: road network and spawn points", n.MapName)
	p.X.Label.Text = "X (meters)"
	p.Y.Label.Text = "Y (meters)"
	p.Add(plotter.NewGrid())

	for _, seg := range n.Segments {
		line, err := plotter.NewLine(plotter.XYs{
			{X: seg.Start.X, Y: -seg.Start.Y},
			{X: seg.End.X, Y: -seg.End.Y},
		})
		if err != nil {
			return fmt.Errorf("road segment: %w", err)
		}
		line.Color = roadColor
		line.Width = vg.Points(0.5)
		p.Add(line)
	}

	if len(n.SpawnPoints) > 0 {
		pts := make(plotter.XYs, len(n.SpawnPoints))
		labels := make([]string, len(n.SpawnPoints))
		for i, loc := range n.SpawnPoints {
			pts[i] = plotter.XY{X: loc.X, Y: -loc.Y}
			labels[i] = strconv.Itoa(i)
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("spawn points: %w", err)
		}
		scatter.GlyphStyle.Color = spawnColor
		scatter.GlyphStyle.Radius = vg.Points(3)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add("spawn points", scatter)

		labeled := make(plotter.XYs, len(pts))
		for i, xy := range pts {
			labeled[i] = plotter.XY{X: xy.X + 5, Y: xy.Y + 5}
		}
		texts, err := plotter.NewLabels(plotter.XYLabels{XYs: labeled, Labels: labels})
		if err != nil {
			return fmt.Errorf("spawn labels: %w", err)
		}
		p.Add(texts)
	}

	squareAxes(p, n)

	if err := p.Save(16*vg.Inch, 16*vg.Inch, outPath); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// squareAxes pads the axis ranges to the same span so one meter renders
// the same length in X and Y.
func squareAxes(p *plot.Plot, n *RoadNetwork) {
	xmin, xmax, ymin, ymax := bounds(n)
	if xmin > xmax {
		return // nothing plotted
	}
	xspan := xmax - xmin
	yspan := ymax - ymin
	span := xspan
	if yspan > span {
		span = yspan
	}
	if span == 0 {
		span = 1
	}
	pad := span * 0.05
	xc := (xmin + xmax) / 2
	yc := (ymin + ymax) / 2
	p.X.Min = xc - span/2 - pad
	p.X.Max = xc + span/2 + pad
	p.Y.Min = yc - span/2 - pad
	p.Y.Max = yc + span/2 + pad
}

// bounds returns the plotted coordinate extents (with Y already negated).
func bounds(n *RoadNetwork) (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = 1, 1
	xmax, ymax = -1, -1
	first := true
	visit := func(x, y float64) {
		if first {
			xmin, xmax, ymin, ymax = x, x, y, y
			first = false
			return
		}
		if x < xmin {
			xmin = x
		}
		if x > xmax {
			xmax = x
		}
		if y < ymin {
			ymin = y
		}
		if y > ymax {
			ymax = y
		}
	}
	for _, seg := range n.Segments {
		visit(seg.Start.X, -seg.Start.Y)
		visit(seg.End.X, -seg.End.Y)
	}
	for _, loc := range n.SpawnPoints {
		visit(loc.X, -loc.Y)
	}
	return xmin, xmax, ymin, ymax
}
