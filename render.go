package plot

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers"
)

var defaultFont = sync.OnceValues(func() (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily("latin-modern")
	if err := family.LoadFont(lmroman10regular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	if err := family.LoadFont(lmroman10bold.TTF, 0, canvas.FontBold); err != nil {
		return nil, err
	}
	return family, nil
})

// Render draws the specification onto a new canvas of w by h millimeters.
func (p *Plot) Render(w, h float64) (*canvas.Canvas, error) {
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	if err := p.Draw(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// WriteFile renders the specification to a w by h millimeter canvas and
// writes it to filename, with the format derived from its extension (svg,
// pdf, eps, png, jpg, ...).
func (p *Plot) WriteFile(filename string, w, h float64) error {
	c, err := p.Render(w, h)
	if err != nil {
		return err
	}
	return renderers.Write(filename, c, canvas.DPMM(5.0))
}

// Draw renders the specification onto ctx. This is the sole side-effecting
// operation on a Plot; the specification itself is not modified and can be
// drawn again, also against an updated dataset snapshot bound to a derived
// specification.
func (p *Plot) Draw(ctx *canvas.Context) error {
	st, err := p.train()
	if err != nil {
		return err
	}

	theme := p.theme
	if theme.Font == nil {
		family, err := defaultFont()
		if err != nil {
			return fmt.Errorf("load default font: %w", err)
		}
		theme.Font = family
	}
	if theme.Background == nil {
		theme.Background = canvas.White
	}
	if theme.GridColor == nil {
		theme.GridColor = color.RGBA{229, 229, 229, 255}
	}
	if theme.BaseFontPt == 0.0 {
		theme.BaseFontPt = 8.0
	}
	if theme.Margin == 0.0 {
		theme.Margin = 4.0
	}
	st.theme = theme

	W, H := ctx.Size()
	ctx.SetFillColor(theme.Background)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0.0, 0.0, canvas.Rectangle(W, H))

	tickFace := theme.Font.Face(theme.BaseFontPt, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	titleStyle := canvas.FontRegular
	if theme.BoldTitle {
		titleStyle = canvas.FontBold
	}
	titleFace := theme.Font.Face(theme.BaseFontPt*1.7, canvas.Black, titleStyle, canvas.FontNormal)
	subtitleFace := theme.Font.Face(theme.BaseFontPt*1.2, canvas.Grey, canvas.FontRegular, canvas.FontNormal)
	captionFace := theme.Font.Face(theme.BaseFontPt*0.85, canvas.Grey, canvas.FontRegular, canvas.FontNormal)

	// Panel layout: reserve room for tick labels and axis titles on the left
	// and bottom, titles at the top, the legend at the right.
	lineH := tickFace.Metrics().LineHeight
	yTickW := 0.0
	for _, b := range st.y.breaks {
		yTickW = math.Max(yTickW, tickFace.TextWidth(b.Label))
	}
	left := theme.Margin + yTickW + 2.0
	if st.y.title != "" {
		left += lineH + 1.0
	}
	bottom := theme.Margin + lineH + 1.0
	if st.x.title != "" {
		bottom += lineH + 1.0
	}
	if p.labels.Caption != "" {
		bottom += captionFace.Metrics().LineHeight
	}
	top := theme.Margin
	if p.labels.Title != "" {
		top += titleFace.Metrics().LineHeight + 1.0
	}
	if p.labels.Subtitle != "" {
		top += subtitleFace.Metrics().LineHeight + 1.0
	}
	right := theme.Margin + p.legendWidth(st, tickFace)

	panel := panelRect{
		x0: left,
		y0: bottom,
		w:  W - left - right,
		h:  H - bottom - top,
	}
	if panel.w <= 0.0 || panel.h <= 0.0 {
		return fmt.Errorf("canvas of %gx%gmm is too small for the plot layout", W, H)
	}
	st.panel = panel

	p.drawGrid(ctx, st)
	p.drawAxes(ctx, st, tickFace)
	for _, layer := range p.layers {
		if err := p.drawLayer(ctx, st, layer); err != nil {
			return err
		}
	}
	p.drawLegend(ctx, st, tickFace)

	// Decorations.
	y := H - theme.Margin
	if p.labels.Title != "" {
		y -= titleFace.Metrics().Ascent
		ctx.DrawText(theme.Margin, y, canvas.NewTextLine(titleFace, p.labels.Title, canvas.Left))
		y -= titleFace.Metrics().Descent + 1.0
	}
	if p.labels.Subtitle != "" {
		y -= subtitleFace.Metrics().Ascent
		ctx.DrawText(theme.Margin, y, canvas.NewTextLine(subtitleFace, p.labels.Subtitle, canvas.Left))
	}
	if p.labels.Caption != "" {
		ctx.DrawText(W-theme.Margin, theme.Margin*0.5, canvas.NewTextLine(captionFace, p.labels.Caption, canvas.Right))
	}
	return nil
}

type panelRect struct {
	x0, y0, w, h float64
}

type axisInfo struct {
	trans  Transform
	lo, hi float64 // transformed data units
	breaks []Break // transformed positions
	title  string
}

// renderState holds the trained scales and panel geometry for one draw.
type renderState struct {
	x, y        axisInfo
	theme       Theme
	panel       panelRect
	sizeScale   *SizeScale
	sizeLo      float64
	sizeHi      float64
	colorChan   Channel
	colorTerm   Term
	colorLevels []string
	colorMap    map[string]color.Color
	colorLo     float64 // numeric color domain
	colorHi     float64
}

func (st *renderState) xpos(v float64) float64 {
	return st.panel.x0 + (v-st.x.lo)/(st.x.hi-st.x.lo)*st.panel.w
}

func (st *renderState) ypos(v float64) float64 {
	return st.panel.y0 + (v-st.y.lo)/(st.y.hi-st.y.lo)*st.panel.h
}

func (st *renderState) inside(x, y float64) bool {
	const eps = 1e-9
	return st.x.lo-eps <= x && x <= st.x.hi+eps && st.y.lo-eps <= y && y <= st.y.hi+eps
}

// train resolves every layer's effective mapping and computes axis ranges,
// breaks, the size domain, and the color levels and palette. The result
// depends only on the specification value, so repeated renders are
// identical.
func (p *Plot) train() (*renderState, error) {
	st := &renderState{}

	var err error
	if st.x, err = p.trainAxis(X, p.xlim); err != nil {
		return nil, err
	}
	if st.y, err = p.trainAxis(Y, p.ylim); err != nil {
		return nil, err
	}

	// Size domain over all layers that map it.
	st.sizeLo, st.sizeHi = math.Inf(1), math.Inf(-1)
	for _, eff := range p.effectiveMappings() {
		t, ok := eff[Size]
		if !ok || t.isZero() {
			continue
		}
		if !t.numeric(p.ds) {
			return nil, fmt.Errorf("size aesthetic must be numeric, %q is not", t.Name())
		}
		for _, v := range t.floats(p.ds) {
			if !math.IsNaN(v) {
				st.sizeLo = math.Min(st.sizeLo, v)
				st.sizeHi = math.Max(st.sizeHi, v)
			}
		}
	}
	st.sizeScale = &SizeScale{Min: 1.0, Max: 4.0}
	if s, ok := p.scales[Size].(*SizeScale); ok {
		st.sizeScale = s
	}

	// Color levels and palette. The first layer that maps color (or fill)
	// determines the legend; level order follows an explicit scale level
	// list, else first appearance in the dataset.
	for _, c := range []Channel{Color, Fill} {
		term, ok := p.firstTerm(c)
		if !ok {
			continue
		}
		st.colorChan = c
		st.colorTerm = term
		scale, _ := p.scales[c].(*DiscreteColorScale)
		if term.numeric(p.ds) && scale == nil {
			st.colorLo, st.colorHi = math.Inf(1), math.Inf(-1)
			for _, v := range term.floats(p.ds) {
				if !math.IsNaN(v) {
					st.colorLo = math.Min(st.colorLo, v)
					st.colorHi = math.Max(st.colorHi, v)
				}
			}
		} else {
			if scale != nil && len(scale.Levels) != 0 {
				st.colorLevels = append([]string{}, scale.Levels...)
			} else {
				st.colorLevels = uniqueInOrder(term.strings(p.ds))
			}
			st.colorMap = scale.colors(st.colorLevels)
		}
		break
	}
	return st, nil
}

func (p *Plot) trainAxis(c Channel, lim *Range) (axisInfo, error) {
	ax := axisInfo{lo: math.Inf(1), hi: math.Inf(-1)}

	var scale *ContinuousScale
	if s, ok := p.scales[c].(*ContinuousScale); ok {
		scale = s
		ax.trans = s.Trans
	}

	mapped := false
	for _, eff := range p.effectiveMappings() {
		t, ok := eff[c]
		if !ok || t.isZero() {
			continue
		}
		if !t.numeric(p.ds) {
			return ax, fmt.Errorf("%s aesthetic must be numeric, %q is not", c, t.Name())
		}
		mapped = true
		if ax.title == "" {
			ax.title = t.Name()
		}
		for _, v := range t.floats(p.ds) {
			v = ax.trans.apply(v)
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				ax.lo = math.Min(ax.lo, v)
				ax.hi = math.Max(ax.hi, v)
			}
		}
	}
	if !mapped {
		// No data on this axis; any geom that needs it was rejected when its
		// layer was added, so an empty unit range suffices for the frame.
		ax.lo, ax.hi = 0.0, 1.0
	}

	// Bars are drawn from a zero baseline; make sure it is in range.
	if c == Y && ax.trans == Linear {
		for _, layer := range p.layers {
			if layer.Geom == GeomBar {
				ax.lo = math.Min(ax.lo, 0.0)
				ax.hi = math.Max(ax.hi, 0.0)
			}
		}
	}

	pad := true
	if scale != nil && scale.Limits != nil {
		ax.lo = ax.trans.apply(scale.Limits.Min)
		ax.hi = ax.trans.apply(scale.Limits.Max)
		pad = false
	}
	if lim != nil {
		ax.lo = ax.trans.apply(lim.Min)
		ax.hi = ax.trans.apply(lim.Max)
		pad = false
	}
	if ax.hi <= ax.lo {
		ax.hi = ax.lo + 1.0
	} else if pad {
		margin := (ax.hi - ax.lo) * 0.05
		ax.lo -= margin
		ax.hi += margin
	}
	// A zero or negative limit on a log axis transforms to -Inf or NaN.
	if math.IsNaN(ax.lo) || math.IsNaN(ax.hi) || math.IsInf(ax.lo, 0) || math.IsInf(ax.hi, 0) {
		return ax, fmt.Errorf("%s axis range [%g,%g] is not finite", c, ax.lo, ax.hi)
	}

	format := formatTick
	if scale != nil && scale.Format != nil {
		format = scale.Format
	}
	if scale != nil && len(scale.Breaks) != 0 {
		for _, b := range scale.Breaks {
			at := ax.trans.apply(b.At)
			label := b.Label
			if label == "" {
				label = format(b.At)
			}
			if ax.lo <= at && at <= ax.hi {
				ax.breaks = append(ax.breaks, Break{At: at, Label: label})
			}
		}
	} else if ax.trans == LogTen {
		for _, e := range logTicks(ax.lo, ax.hi) {
			ax.breaks = append(ax.breaks, Break{At: e, Label: format(math.Pow(10.0, e))})
		}
	} else {
		step := tickStep(ax.hi - ax.lo)
		for _, v := range ticks(ax.lo, ax.hi) {
			label := formatTickStep(v, step)
			if scale != nil && scale.Format != nil {
				label = format(v)
			}
			ax.breaks = append(ax.breaks, Break{At: v, Label: label})
		}
	}

	// Label overrides beat the mapped term's name.
	if c == X && p.labels.X != "" {
		ax.title = p.labels.X
	} else if c == Y && p.labels.Y != "" {
		ax.title = p.labels.Y
	}
	return ax, nil
}

// effectiveMappings returns the overlay of each layer's mapping onto the
// default mapping, or just the default mapping if there are no layers, so
// that a bare base still trains its axes.
func (p *Plot) effectiveMappings() []Mapping {
	if len(p.layers) == 0 {
		return []Mapping{p.aes}
	}
	ms := make([]Mapping, len(p.layers))
	for i, layer := range p.layers {
		ms[i] = p.aes.overlay(layer.Aes)
	}
	return ms
}

// firstTerm returns the first term mapped to c, searching the default
// mapping and then the layers in order.
func (p *Plot) firstTerm(c Channel) (Term, bool) {
	if t, ok := p.aes[c]; ok && !t.isZero() {
		return t, true
	}
	for _, layer := range p.layers {
		if t, ok := layer.Aes[c]; ok && !t.isZero() {
			return t, true
		}
	}
	return Term{}, false
}

func (p *Plot) drawGrid(ctx *canvas.Context, st *renderState) {
	if st.theme.Grid == VisHide {
		return
	}
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(st.theme.GridColor)
	ctx.SetStrokeWidth(0.2)
	for _, b := range st.x.breaks {
		x := st.xpos(b.At)
		ctx.MoveTo(x, st.panel.y0)
		ctx.LineTo(x, st.panel.y0+st.panel.h)
	}
	for _, b := range st.y.breaks {
		y := st.ypos(b.At)
		ctx.MoveTo(st.panel.x0, y)
		ctx.LineTo(st.panel.x0+st.panel.w, y)
	}
	ctx.Stroke()
}

func (p *Plot) drawAxes(ctx *canvas.Context, st *renderState, tickFace *canvas.FontFace) {
	panel := st.panel
	lineH := tickFace.Metrics().LineHeight

	if st.theme.AxisLines != VisHide {
		ctx.SetFillColor(canvas.Transparent)
		ctx.SetStrokeColor(canvas.Black)
		ctx.SetStrokeWidth(0.25)
		ctx.MoveTo(panel.x0, panel.y0+panel.h)
		ctx.LineTo(panel.x0, panel.y0)
		ctx.LineTo(panel.x0+panel.w, panel.y0)
		for _, b := range st.x.breaks {
			x := st.xpos(b.At)
			ctx.MoveTo(x, panel.y0)
			ctx.LineTo(x, panel.y0-1.0)
		}
		for _, b := range st.y.breaks {
			y := st.ypos(b.At)
			ctx.MoveTo(panel.x0, y)
			ctx.LineTo(panel.x0-1.0, y)
		}
		ctx.Stroke()
	}

	for _, b := range st.x.breaks {
		ctx.DrawText(st.xpos(b.At), panel.y0-1.4-lineH*0.8, canvas.NewTextLine(tickFace, b.Label, canvas.Center))
	}
	for _, b := range st.y.breaks {
		ctx.DrawText(panel.x0-1.6, st.ypos(b.At)-tickFace.Metrics().CapHeight/2.0, canvas.NewTextLine(tickFace, b.Label, canvas.Right))
	}

	if st.x.title != "" {
		ctx.DrawText(panel.x0+panel.w/2.0, panel.y0-1.4-lineH*1.9, canvas.NewTextLine(tickFace, st.x.title, canvas.Center))
	}
	if st.y.title != "" {
		// Rotating the view by 90 degrees maps a draw at (x,y) to (-y,x).
		ctx.Push()
		ctx.ComposeView(canvas.Identity.Rotate(90))
		baseline := st.theme.Margin + lineH*0.8
		ctx.DrawText(panel.y0+panel.h/2.0, -baseline, canvas.NewTextLine(tickFace, st.y.title, canvas.Center))
		ctx.Pop()
	}
}

func (p *Plot) drawLayer(ctx *canvas.Context, st *renderState, layer Layer) error {
	eff := p.aes.overlay(layer.Aes)

	var xs, ys []float64
	if t := eff[X]; !t.isZero() {
		xs = transformAll(t.floats(p.ds), st.x.trans)
	}
	if t := eff[Y]; !t.isZero() {
		ys = transformAll(t.floats(p.ds), st.y.trans)
	}
	if layer.Geom != GeomRug && (xs == nil || ys == nil) {
		// Only reachable when the dataset was swapped from under a validated
		// specification; report it like the build-time check would have.
		c := X
		if xs != nil {
			c = Y
		}
		return MissingRequiredAestheticError{Geom: layer.Geom, Channel: c}
	}

	switch layer.Geom {
	case GeomPoint:
		return p.drawPoints(ctx, st, layer, eff, xs, ys)
	case GeomLine:
		return p.drawLines(ctx, st, layer, eff, xs, ys)
	case GeomSmooth:
		return p.drawSmooth(ctx, st, layer, xs, ys)
	case GeomText:
		return p.drawTexts(ctx, st, layer, eff, xs, ys)
	case GeomRug:
		return p.drawRug(ctx, st, layer, xs, ys)
	case GeomBar:
		return p.drawBars(ctx, st, layer, eff, xs, ys)
	}
	return fmt.Errorf("unsupported %v", layer.Geom)
}

func transformAll(vs []float64, trans Transform) []float64 {
	if trans == Linear {
		return vs
	}
	ts := make([]float64, len(vs))
	for i, v := range vs {
		ts[i] = trans.apply(v)
	}
	return ts
}

// markColor resolves the color of record i: mapped channel first, then the
// layer's fixed color, then fallback.
func (st *renderState) markColor(eff Mapping, fixed Params, ds *Dataset, i int, fallback color.Color) color.Color {
	if st.colorChan != "" {
		if t, ok := eff[st.colorChan]; ok && !t.isZero() {
			if st.colorMap != nil {
				if col, ok := st.colorMap[ds.recordString(t, i)]; ok {
					return col
				}
			} else {
				return gradient(t.fn, t.column, ds, i, st.colorLo, st.colorHi)
			}
		}
	}
	if fixed.Color != nil {
		return fixed.Color
	}
	return fallback
}

func (ds *Dataset) recordString(t Term, i int) string {
	if t.fn != nil {
		return formatFloat(t.fn(Record{ds, i}))
	}
	return ds.String(t.column, i)
}

var gradientLo = colorful.Hcl(260.0, 0.45, 0.25)
var gradientHi = colorful.Hcl(190.0, 0.35, 0.85)

func gradient(fn func(Record) float64, column string, ds *Dataset, i int, lo, hi float64) color.Color {
	v := ds.Float(column, i)
	if fn != nil {
		v = fn(Record{ds, i})
	}
	return gradientAt(v, lo, hi)
}

func gradientAt(v, lo, hi float64) color.Color {
	t := 0.5
	if lo < hi {
		t = math.Max(0.0, math.Min(1.0, (v-lo)/(hi-lo)))
	}
	c := gradientLo.BlendHcl(gradientHi, t).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}
}

func applyAlpha(col color.Color, alpha float64) color.Color {
	if alpha <= 0.0 || 1.0 <= alpha {
		return col
	}
	r, g, b, a := col.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * alpha),
		G: uint16(float64(g) * alpha),
		B: uint16(float64(b) * alpha),
		A: uint16(float64(a) * alpha),
	}
}

func (p *Plot) drawPoints(ctx *canvas.Context, st *renderState, layer Layer, eff Mapping, xs, ys []float64) error {
	var sizes []float64
	if t, ok := eff[Size]; ok && !t.isZero() {
		sizes = t.floats(p.ds)
	}

	stroke := layer.Fixed.Stroke
	if stroke > 0.0 {
		ctx.SetStrokeColor(canvas.Black)
		ctx.SetStrokeWidth(stroke)
	} else {
		ctx.SetStrokeColor(canvas.Transparent)
	}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || !st.inside(xs[i], ys[i]) {
			continue
		}
		r := layer.Fixed.Size
		if r == 0.0 {
			r = 1.0
		}
		if sizes != nil {
			r = st.sizeScale.radius(sizes[i], st.sizeLo, st.sizeHi)
		}
		col := st.markColor(eff, layer.Fixed, p.ds, i, canvas.Black)
		ctx.SetFillColor(applyAlpha(col, layer.Fixed.Alpha))
		ctx.DrawPath(st.xpos(xs[i]), st.ypos(ys[i]), canvas.Circle(r))
	}
	return nil
}

func (p *Plot) drawLines(ctx *canvas.Context, st *renderState, layer Layer, eff Mapping, xs, ys []float64) error {
	// Group records by discrete color level so each series becomes its own
	// polyline, like ggplot's implicit grouping.
	groups := map[string][]int{}
	order := []string{}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		g := ""
		if st.colorChan != "" && st.colorMap != nil {
			if t, ok := eff[st.colorChan]; ok && !t.isZero() {
				g = p.ds.recordString(t, i)
			}
		}
		if _, ok := groups[g]; !ok {
			order = append(order, g)
		}
		groups[g] = append(groups[g], i)
	}

	width := layer.Fixed.Stroke
	if width == 0.0 {
		width = 0.4
	}
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeWidth(width)
	ctx.SetDashes(0.0, layer.Fixed.Line.dashes()...)
	for _, g := range order {
		idx := groups[g]
		sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })
		col := st.markColor(eff, layer.Fixed, p.ds, idx[0], canvas.Black)
		ctx.SetStrokeColor(applyAlpha(col, layer.Fixed.Alpha))
		for j, i := range idx {
			if j == 0 {
				ctx.MoveTo(st.xpos(xs[i]), st.ypos(ys[i]))
			} else {
				ctx.LineTo(st.xpos(xs[i]), st.ypos(ys[i]))
			}
		}
		ctx.Stroke()
	}
	ctx.SetDashes(0.0)
	return nil
}

func (p *Plot) drawSmooth(ctx *canvas.Context, st *renderState, layer Layer, xs, ys []float64) error {
	slope, intercept, ok := leastSquares(xs, ys)
	if !ok {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range xs {
		if !math.IsNaN(xs[i]) && !math.IsNaN(ys[i]) {
			lo = math.Min(lo, xs[i])
			hi = math.Max(hi, xs[i])
		}
	}
	lo = math.Max(lo, st.x.lo)
	hi = math.Min(hi, st.x.hi)

	col := layer.Fixed.Color
	if col == nil {
		col = canvas.Steelblue
	}
	width := layer.Fixed.Stroke
	if width == 0.0 {
		width = 0.5
	}
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(applyAlpha(col, layer.Fixed.Alpha))
	ctx.SetStrokeWidth(width)
	ctx.SetDashes(0.0, layer.Fixed.Line.dashes()...)
	ctx.MoveTo(st.xpos(lo), st.ypos(clamp(intercept+slope*lo, st.y.lo, st.y.hi)))
	ctx.LineTo(st.xpos(hi), st.ypos(clamp(intercept+slope*hi, st.y.lo, st.y.hi)))
	ctx.Stroke()
	ctx.SetDashes(0.0)
	return nil
}

// leastSquares fits y = intercept + slope*x, ignoring NaN records.
func leastSquares(xs, ys []float64) (slope, intercept float64, ok bool) {
	n, sx, sy, sxx, sxy := 0.0, 0.0, 0.0, 0.0, 0.0
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		n += 1.0
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	det := n*sxx - sx*sx
	if n < 2.0 || det == 0.0 {
		return 0.0, 0.0, false
	}
	slope = (n*sxy - sx*sy) / det
	intercept = (sy - slope*sx) / n
	return slope, intercept, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func (p *Plot) drawTexts(ctx *canvas.Context, st *renderState, layer Layer, eff Mapping, xs, ys []float64) error {
	labels := eff[Label].strings(p.ds)

	sizePt := layer.Fixed.Size
	if sizePt == 0.0 {
		sizePt = st.theme.BaseFontPt
	}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || !st.inside(xs[i], ys[i]) || labels[i] == "" {
			continue
		}
		col := st.markColor(eff, layer.Fixed, p.ds, i, canvas.Black)
		face := st.theme.Font.Face(sizePt, applyAlpha(col, layer.Fixed.Alpha), canvas.FontRegular, canvas.FontNormal)
		ctx.DrawText(st.xpos(xs[i]), st.ypos(ys[i])+0.8, canvas.NewTextLine(face, labels[i], canvas.Center))
	}
	return nil
}

func (p *Plot) drawRug(ctx *canvas.Context, st *renderState, layer Layer, xs, ys []float64) error {
	col := layer.Fixed.Color
	if col == nil {
		col = canvas.Black
	}
	width := layer.Fixed.Stroke
	if width == 0.0 {
		width = 0.15
	}
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(applyAlpha(col, layer.Fixed.Alpha))
	ctx.SetStrokeWidth(width)
	const tick = 1.5
	for _, x := range xs {
		if !math.IsNaN(x) && st.x.lo <= x && x <= st.x.hi {
			ctx.MoveTo(st.xpos(x), st.panel.y0)
			ctx.LineTo(st.xpos(x), st.panel.y0+tick)
		}
	}
	for _, y := range ys {
		if !math.IsNaN(y) && st.y.lo <= y && y <= st.y.hi {
			ctx.MoveTo(st.panel.x0, st.ypos(y))
			ctx.LineTo(st.panel.x0+tick, st.ypos(y))
		}
	}
	ctx.Stroke()
	return nil
}

func (p *Plot) drawBars(ctx *canvas.Context, st *renderState, layer Layer, eff Mapping, xs, ys []float64) error {
	width := layer.Fixed.BarWidth
	if width == 0.0 {
		width = 0.8 * minGap(xs)
	}
	base := clamp(0.0, st.y.lo, st.y.hi)

	ctx.SetStrokeColor(canvas.Transparent)
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		fallback := layer.Fixed.Fill
		if fallback == nil {
			fallback = canvas.Grey
		}
		col := st.markColor(eff, layer.Fixed, p.ds, i, fallback)
		ctx.SetFillColor(applyAlpha(col, layer.Fixed.Alpha))

		x0 := clamp(xs[i]-width/2.0, st.x.lo, st.x.hi)
		x1 := clamp(xs[i]+width/2.0, st.x.lo, st.x.hi)
		y0 := st.ypos(base)
		y1 := st.ypos(clamp(ys[i], st.y.lo, st.y.hi))
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		ctx.DrawPath(st.xpos(x0), y0, canvas.Rectangle(st.xpos(x1)-st.xpos(x0), y1-y0))
	}
	return nil
}

// minGap returns the smallest gap between adjacent distinct x values, or 1
// when fewer than two distinct values exist.
func minGap(xs []float64) float64 {
	vs := []float64{}
	for _, v := range xs {
		if !math.IsNaN(v) {
			vs = append(vs, v)
		}
	}
	sort.Float64s(vs)
	gap := math.Inf(1)
	for i := 1; i < len(vs); i++ {
		if d := vs[i] - vs[i-1]; 0.0 < d {
			gap = math.Min(gap, d)
		}
	}
	if math.IsInf(gap, 1) {
		return 1.0
	}
	return gap
}
