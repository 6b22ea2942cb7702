package plot

import (
	"image/color"

	"github.com/tdewolff/canvas"
)

// Visibility is a tri-state toggle so that theme overlays can distinguish
// "unset" from an explicit off.
type Visibility int

const (
	VisDefault Visibility = iota
	VisShow
	VisHide
)

// LegendPosition places the legend block.
type LegendPosition int

const (
	LegendDefault LegendPosition = iota
	LegendRight
	LegendNone
)

// Theme is a set of key-level style overrides layered onto the base style.
// Zero-valued fields are unset; merging two themes keeps the later non-zero
// value per key.
type Theme struct {
	Background color.Color
	GridColor  color.Color
	Grid       Visibility
	AxisLines  Visibility
	BaseFontPt float64 // text size of tick and legend labels in points
	BoldTitle  bool
	Legend     LegendPosition
	Margin     float64 // outer margin in mm
	Font       *canvas.FontFamily
}

// merge overlays o onto t, later keys winning.
func (t Theme) merge(o Theme) Theme {
	if o.Background != nil {
		t.Background = o.Background
	}
	if o.GridColor != nil {
		t.GridColor = o.GridColor
	}
	if o.Grid != VisDefault {
		t.Grid = o.Grid
	}
	if o.AxisLines != VisDefault {
		t.AxisLines = o.AxisLines
	}
	if o.BaseFontPt != 0.0 {
		t.BaseFontPt = o.BaseFontPt
	}
	if o.BoldTitle {
		t.BoldTitle = true
	}
	if o.Legend != LegendDefault {
		t.Legend = o.Legend
	}
	if o.Margin != 0.0 {
		t.Margin = o.Margin
	}
	if o.Font != nil {
		t.Font = o.Font
	}
	return t
}

// ThemeMinimal is a light theme without axis lines, close to ggplot2's
// theme_minimal.
func ThemeMinimal() Theme {
	return Theme{
		Background: canvas.White,
		GridColor:  color.RGBA{235, 235, 235, 255},
		Grid:       VisShow,
		AxisLines:  VisHide,
	}
}

// Labels are text overrides for the plot decorations. Empty fields are
// unset; merging keeps the later non-empty value per key.
type Labels struct {
	Title    string
	Subtitle string
	X        string
	Y        string
	Caption  string
	Legend   map[Channel]string // legend title per channel
}

func (l Labels) merge(o Labels) Labels {
	if o.Title != "" {
		l.Title = o.Title
	}
	if o.Subtitle != "" {
		l.Subtitle = o.Subtitle
	}
	if o.X != "" {
		l.X = o.X
	}
	if o.Y != "" {
		l.Y = o.Y
	}
	if o.Caption != "" {
		l.Caption = o.Caption
	}
	if len(o.Legend) != 0 {
		legend := map[Channel]string{}
		for c, title := range l.Legend {
			legend[c] = title
		}
		for c, title := range o.Legend {
			legend[c] = title
		}
		l.Legend = legend
	}
	return l
}
