package plot

import (
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
)

// legendEntry is one key in the legend: a swatch next to its label.
type legendEntry struct {
	label  string
	color  color.Color
	radius float64
}

type legendBlock struct {
	title   string
	entries []legendEntry
}

func (b legendBlock) maxRadius() float64 {
	r := 0.0
	for _, e := range b.entries {
		r = math.Max(r, e.radius)
	}
	return r
}

// legends collects the legend blocks of the specification. Presence and
// order derive only from which channels are mapped, the guide overrides and
// the declared or first-appearance level order, so repeated renders of the
// same specification are identical.
func (p *Plot) legends(st *renderState) []legendBlock {
	if p.theme.Legend == LegendNone {
		return nil
	}
	blocks := []legendBlock{}

	if st.colorMap != nil && p.guideShown(st.colorChan) {
		title := p.labels.Legend[st.colorChan]
		if title == "" {
			title = st.colorTerm.Name()
		}
		block := legendBlock{title: title}
		for _, level := range st.colorLevels {
			block.entries = append(block.entries, legendEntry{
				label:  level,
				color:  st.colorMap[level],
				radius: 1.4,
			})
		}
		blocks = append(blocks, block)
	}

	// A numeric color mapping gets a sampled gradient key, largest value on
	// top.
	if st.colorChan != "" && st.colorMap == nil && st.colorLo < st.colorHi && p.guideShown(st.colorChan) {
		title := p.labels.Legend[st.colorChan]
		if title == "" {
			title = st.colorTerm.Name()
		}
		block := legendBlock{title: title}
		for _, v := range []float64{st.colorHi, (st.colorLo + st.colorHi) / 2.0, st.colorLo} {
			block.entries = append(block.entries, legendEntry{
				label:  formatTick(v),
				color:  gradientAt(v, st.colorLo, st.colorHi),
				radius: 1.4,
			})
		}
		blocks = append(blocks, block)
	}

	if !math.IsInf(st.sizeLo, 1) && st.sizeLo < st.sizeHi && p.guideShown(Size) {
		if t, ok := p.firstTerm(Size); ok {
			title := p.labels.Legend[Size]
			if title == "" {
				title = t.Name()
			}
			block := legendBlock{title: title}
			for _, v := range []float64{st.sizeLo, (st.sizeLo + st.sizeHi) / 2.0, st.sizeHi} {
				block.entries = append(block.entries, legendEntry{
					label:  formatTick(v),
					color:  canvas.Grey,
					radius: st.sizeScale.radius(v, st.sizeLo, st.sizeHi),
				})
			}
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// guideShown resolves the legend visibility of a channel: an explicit Guide
// override wins, else mapped channels show their legend.
func (p *Plot) guideShown(c Channel) bool {
	if show, ok := p.guides[c]; ok {
		return show
	}
	return true
}

const legendGap = 3.0 // between panel and legend block, mm

func (p *Plot) legendWidth(st *renderState, face *canvas.FontFace) float64 {
	w := 0.0
	for _, block := range p.legends(st) {
		bw := face.TextWidth(block.title)
		r := block.maxRadius()
		for _, e := range block.entries {
			bw = math.Max(bw, r*2.0+1.5+face.TextWidth(e.label))
		}
		w = math.Max(w, bw)
	}
	if w == 0.0 {
		return 0.0
	}
	return legendGap + w + 1.0
}

func (p *Plot) drawLegend(ctx *canvas.Context, st *renderState, face *canvas.FontFace) {
	blocks := p.legends(st)
	if len(blocks) == 0 {
		return
	}

	lineH := face.Metrics().LineHeight
	x := st.panel.x0 + st.panel.w + legendGap
	y := st.panel.y0 + st.panel.h

	ctx.SetStrokeColor(canvas.Transparent)
	for _, block := range blocks {
		y -= lineH
		ctx.SetFillColor(canvas.Black)
		ctx.DrawText(x, y, canvas.NewTextLine(face, block.title, canvas.Left))
		y -= 1.0

		r := block.maxRadius()
		for _, e := range block.entries {
			rowH := math.Max(lineH, e.radius*2.0+0.8)
			y -= rowH
			cy := y + face.Metrics().CapHeight/2.0
			ctx.SetFillColor(e.color)
			ctx.DrawPath(x+r, cy, canvas.Circle(e.radius))
			ctx.SetFillColor(canvas.Black)
			ctx.DrawText(x+r*2.0+1.5, y, canvas.NewTextLine(face, e.label, canvas.Left))
		}
		y -= lineH * 0.6
	}
}
