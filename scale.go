package plot

import (
	"image/color"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Scale is a per-channel policy mapping data values to visual values. At
// most one scale is active per channel; adding a scale for a channel that
// already has one replaces it.
type Scale interface {
	Channel() Channel
}

// Transform is an axis transformation applied to position values before
// scaling to the panel.
type Transform int

const (
	Linear Transform = iota
	LogTen
)

func (t Transform) apply(v float64) float64 {
	if t == LogTen {
		return math.Log10(v)
	}
	return v
}

// Range is a closed numeric interval.
type Range struct {
	Min, Max float64
}

// Break is an explicit axis break: a position in data units and the tick
// label drawn there.
type Break struct {
	At    float64
	Label string
}

// ContinuousScale overrides the default behavior of a continuous channel.
// Explicit Breaks are positions in (untransformed) data units; they are not
// recomputed when the dataset changes, so breaks that no longer fall inside
// the data range are the caller's responsibility.
type ContinuousScale struct {
	channel Channel
	Trans   Transform
	Limits  *Range
	Breaks  []Break
	Format  func(float64) string
}

func (s *ContinuousScale) Channel() Channel { return s.channel }

// ContinuousOpts configures a continuous position scale.
type ContinuousOpts struct {
	Trans  Transform
	Limits *Range
	Breaks []Break
	Format func(float64) string
}

// ScaleXContinuous returns a continuous scale for the x channel.
func ScaleXContinuous(o ContinuousOpts) Scale {
	return &ContinuousScale{channel: X, Trans: o.Trans, Limits: o.Limits, Breaks: o.Breaks, Format: o.Format}
}

// ScaleYContinuous returns a continuous scale for the y channel.
func ScaleYContinuous(o ContinuousOpts) Scale {
	return &ContinuousScale{channel: Y, Trans: o.Trans, Limits: o.Limits, Breaks: o.Breaks, Format: o.Format}
}

// ScaleXLog10 returns a log-10 transformed x scale.
func ScaleXLog10() Scale {
	return ScaleXContinuous(ContinuousOpts{Trans: LogTen})
}

// ScaleYLog10 returns a log-10 transformed y scale.
func ScaleYLog10() Scale {
	return ScaleYContinuous(ContinuousOpts{Trans: LogTen})
}

// SizeScale maps a numeric channel to a circle radius range in millimeters.
// Mapping is by area so that perceived magnitude tracks the data value.
type SizeScale struct {
	Min, Max float64
}

func (s *SizeScale) Channel() Channel { return Size }

// ScaleSizeRange returns a size scale with the given radius range in mm.
func ScaleSizeRange(min, max float64) Scale {
	return &SizeScale{Min: min, Max: max}
}

// radius maps v in [lo,hi] to a radius with area interpolated linearly.
func (s *SizeScale) radius(v, lo, hi float64) float64 {
	t := 0.5
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	t = math.Max(0.0, math.Min(1.0, t))
	amin, amax := s.Min*s.Min, s.Max*s.Max
	return math.Sqrt(amin + t*(amax-amin))
}

// DiscreteColorScale assigns colors to the levels of a discrete channel.
// With a Values table it behaves as a manual scale; otherwise colors are
// generated deterministically from evenly spaced HCL hues. An explicit
// Levels list fixes both legend order and color assignment; without one,
// levels follow first appearance in the dataset.
type DiscreteColorScale struct {
	channel Channel
	Levels  []string
	Values  map[string]color.Color
}

func (s *DiscreteColorScale) Channel() Channel { return s.channel }

// ScaleColorDiscrete returns a discrete color scale, optionally with an
// explicit level order.
func ScaleColorDiscrete(levels ...string) Scale {
	return &DiscreteColorScale{channel: Color, Levels: levels}
}

// ScaleColorManual returns a color scale with an explicit value table.
func ScaleColorManual(values map[string]color.Color, levels ...string) Scale {
	return &DiscreteColorScale{channel: Color, Levels: levels, Values: values}
}

// ScaleFillDiscrete returns a discrete fill scale, optionally with an
// explicit level order.
func ScaleFillDiscrete(levels ...string) Scale {
	return &DiscreteColorScale{channel: Fill, Levels: levels}
}

// ScaleFillManual returns a fill scale with an explicit value table.
func ScaleFillManual(values map[string]color.Color, levels ...string) Scale {
	return &DiscreteColorScale{channel: Fill, Levels: levels, Values: values}
}

// cloneScale returns a copy of s that shares no mutable state with it, so
// that a specification holds its own scale values.
func cloneScale(s Scale) Scale {
	switch s := s.(type) {
	case *ContinuousScale:
		q := *s
		if s.Limits != nil {
			r := *s.Limits
			q.Limits = &r
		}
		q.Breaks = append([]Break{}, s.Breaks...)
		return &q
	case *SizeScale:
		q := *s
		return &q
	case *DiscreteColorScale:
		q := *s
		q.Levels = append([]string{}, s.Levels...)
		if s.Values != nil {
			q.Values = make(map[string]color.Color, len(s.Values))
			for level, col := range s.Values {
				q.Values[level] = col
			}
		}
		return &q
	}
	return s
}

func (s *DiscreteColorScale) colors(levels []string) map[string]color.Color {
	m := make(map[string]color.Color, len(levels))
	pal := palette(len(levels))
	for i, level := range levels {
		if s != nil && s.Values != nil {
			if col, ok := s.Values[level]; ok {
				m[level] = col
				continue
			}
		}
		m[level] = pal[i]
	}
	return m
}

// palette returns n distinct colors from evenly spaced HCL hues. The output
// depends only on n.
func palette(n int) []color.Color {
	pal := make([]color.Color, n)
	for i := 0; i < n; i++ {
		h := math.Mod(15.0+360.0*float64(i)/float64(maxInt(n, 1)), 360.0)
		c := colorful.Hcl(h, 0.55, 0.55).Clamped()
		r, g, b := c.RGB255()
		pal[i] = color.RGBA{r, g, b, 255}
	}
	return pal
}

////////////////////////////////////////////////////////////////

// ticks returns 1/2/5-stepped break positions covering the finite range
// [lo,hi].
func ticks(lo, hi float64) []float64 {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	if hi <= lo {
		return []float64{lo}
	}
	step := tickStep(hi - lo)
	vs := []float64{}
	for i := int(math.Ceil(lo/step - 1e-9)); float64(i)*step <= hi+step*1e-9; i++ {
		vs = append(vs, float64(i)*step)
	}
	return vs
}

// tickStep returns a step of the form 1, 2 or 5 times a power of ten that
// yields roughly five ticks over span.
func tickStep(span float64) float64 {
	raw := span / 5.0
	mag := math.Pow(10.0, math.Floor(math.Log10(raw)))
	switch {
	case raw/mag < 1.5:
		return mag
	case raw/mag < 3.5:
		return 2.0 * mag
	case raw/mag < 7.5:
		return 5.0 * mag
	}
	return 10.0 * mag
}

// logTicks returns breaks at integer powers of ten covering the transformed
// range [lo,hi].
func logTicks(lo, hi float64) []float64 {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	vs := []float64{}
	for e := math.Floor(lo); e <= math.Ceil(hi)+1e-9; e++ {
		if lo-1e-9 <= e && e <= hi+1e-9 {
			vs = append(vs, e)
		}
	}
	if len(vs) == 0 {
		vs = append(vs, lo)
	}
	return vs
}

var groupedPrinter = message.NewPrinter(language.English)

// formatTick renders an axis tick label. Integral values of at least 10000
// get grouped digits (10,000); everything else uses %g.
func formatTick(v float64) string {
	if v == math.Trunc(v) && 10000.0 <= math.Abs(v) {
		return groupedPrinter.Sprintf("%.0f", v)
	}
	return formatFloat(v)
}

// formatTickStep renders an auto-generated tick label with just enough
// decimals for the break step, avoiding float noise such as
// 0.6000000000000001 for 3*0.2.
func formatTickStep(v, step float64) string {
	if v == math.Trunc(v) {
		return formatTick(v)
	}
	decimals := 0
	if step < 1.0 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
