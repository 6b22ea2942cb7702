package main

import (
	"bytes"
	"os"
	"strings"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/canvas/renderers"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
	"github.com/tdewolff/plot"
)

// Bubble renders a bubble chart from a CSV file: x vs y, bubbles colored by
// a discrete column and sized by a numeric column.
type Bubble struct {
	Input  string  `index:"0" desc:"Input CSV file"`
	Output string  `short:"o" default:"bubble.svg" desc:"Output filename (svg, pdf, eps, png, jpg)"`
	Width  float64 `default:"170" desc:"Canvas width in mm"`
	Height float64 `default:"120" desc:"Canvas height in mm"`
	X      string  `default:"income" desc:"Column mapped to x"`
	Y      string  `default:"life_expectancy" desc:"Column mapped to y"`
	Color  string  `default:"region" desc:"Column mapped to color (empty to disable)"`
	Size   string  `default:"population" desc:"Column mapped to bubble size (empty to disable)"`
	Label  string  `desc:"Column drawn as text labels (empty to disable)"`
	LogX   bool    `desc:"Use a log-10 x axis"`
	Title  string  `desc:"Plot title"`
	Minify bool    `short:"m" desc:"Minify SVG output"`
}

func main() {
	root := argp.NewCmd(&Bubble{}, "Render a bubble chart from a CSV file")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Bubble) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	ds, err := plot.ReadCSVFile(cmd.Input)
	if err != nil {
		return err
	}

	aes := plot.Mapping{plot.X: plot.Col(cmd.X), plot.Y: plot.Col(cmd.Y)}
	local := plot.Mapping{}
	if cmd.Color != "" {
		local[plot.Color] = plot.Col(cmd.Color)
	}
	if cmd.Size != "" {
		local[plot.Size] = plot.Col(cmd.Size)
	}

	p, err := plot.New(ds, aes)
	if err != nil {
		return err
	}
	if p, err = p.Layer(plot.GeomPoint, local, plot.Params{Alpha: 0.8}); err != nil {
		return err
	}
	if cmd.Label != "" {
		if p, err = p.Layer(plot.GeomText, plot.Mapping{plot.Label: plot.Col(cmd.Label)}, plot.Params{}); err != nil {
			return err
		}
	}
	if cmd.LogX {
		if p, err = p.Scale(plot.ScaleXLog10()); err != nil {
			return err
		}
	}
	if cmd.Size != "" {
		if p, err = p.Scale(plot.ScaleSizeRange(1.0, 5.0)); err != nil {
			return err
		}
	}
	p = p.Theme(plot.ThemeMinimal()).Labels(plot.Labels{Title: cmd.Title})

	if cmd.Minify && strings.HasSuffix(strings.ToLower(cmd.Output), ".svg") {
		c, err := p.Render(cmd.Width, cmd.Height)
		if err != nil {
			return err
		}
		buf := &bytes.Buffer{}
		if err := renderers.SVG()(buf, c); err != nil {
			return err
		}

		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		m := minify.New()
		m.AddFunc("image/svg+xml", svg.Minify)
		if err := m.Minify("image/svg+xml", f, buf); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return p.WriteFile(cmd.Output, cmd.Width, cmd.Height)
}
