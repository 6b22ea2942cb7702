package plot

import "image/color"

// Geom is a geometric-object kind. Each geom declares which channels it
// requires; a layer whose merged mapping leaves a required channel unset is
// rejected when the layer is added.
type Geom int

const (
	GeomPoint Geom = iota
	GeomLine
	GeomSmooth
	GeomText
	GeomRug
	GeomBar
)

func (g Geom) String() string {
	switch g {
	case GeomPoint:
		return "geom point"
	case GeomLine:
		return "geom line"
	case GeomSmooth:
		return "geom smooth"
	case GeomText:
		return "geom text"
	case GeomRug:
		return "geom rug"
	case GeomBar:
		return "geom bar"
	}
	return "geom unknown"
}

// required returns the channels the geom cannot draw without. GeomRug is
// special-cased in checkRequired as it needs either position channel.
func (g Geom) required() []Channel {
	switch g {
	case GeomText:
		return []Channel{X, Y, Label}
	case GeomRug:
		return nil
	}
	return []Channel{X, Y}
}

func (g Geom) checkRequired(eff Mapping) error {
	if g == GeomRug {
		if eff[X].isZero() && eff[Y].isZero() {
			return MissingRequiredAestheticError{Geom: g, Channel: X}
		}
		return nil
	}
	for _, c := range g.required() {
		if eff[c].isZero() {
			return MissingRequiredAestheticError{Geom: g, Channel: c}
		}
	}
	return nil
}

// LineStyle selects the dash pattern of line-drawing geoms.
type LineStyle int

const (
	Solid LineStyle = iota
	Dashed
	Dotted
)

func (s LineStyle) dashes() []float64 {
	switch s {
	case Dashed:
		return []float64{2.0, 1.2}
	case Dotted:
		return []float64{0.4, 0.8}
	}
	return nil
}

// Params are fixed aesthetics, applied uniformly to a layer instead of being
// computed per record. Zero values mean unset.
type Params struct {
	Color    color.Color
	Fill     color.Color
	Size     float64 // point radius in mm, or text size in points
	Alpha    float64 // 0 means opaque
	Stroke   float64 // stroke width in mm for line geoms and point borders
	Line     LineStyle
	BarWidth float64 // bar width in x units
}

// Layer is one geom plus its local aesthetic overrides and fixed aesthetics.
type Layer struct {
	Geom  Geom
	Aes   Mapping
	Fixed Params
}
