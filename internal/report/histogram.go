package report

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const histogramBins = 16

// CreateHistogram renders the distribution of one normalized feature
// array as a PNG image.
func CreateHistogram(values []float64, title string) ([]byte, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no values to plot for %q", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "normalized value"
	p.Y.Label.Text = "events"
	p.Add(plotter.NewGrid())

	h, err := plotter.NewHist(plotter.Values(values), histogramBins)
	if err != nil {
		return nil, fmt.Errorf("failed to build histogram for %q: %w", title, err)
	}
	h.FillColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)

	writer, err := p.WriterTo(vg.Points(480), vg.Points(320), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}
