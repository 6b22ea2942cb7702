// Package plot builds plots as immutable specification values in the style
// of a grammar of graphics: a base of data and default aesthetic mappings is
// extended with geom layers, scales, themes and labels, each operation
// deriving a new specification. Rendering is delegated to
// github.com/tdewolff/canvas.
//
// A specification is never mutated; any intermediate value can be kept as a
// named checkpoint and reused as the base for divergent continuations.
package plot

// Plot is a complete, immutable plot specification: dataset, default
// aesthetic mapping, ordered layers, per-channel scales, guide overrides,
// theme, labels and coordinate limits. All methods derive a new Plot and
// leave the receiver untouched.
type Plot struct {
	ds     *Dataset
	aes    Mapping
	layers []Layer
	scales map[Channel]Scale
	guides map[Channel]bool
	theme  Theme
	labels Labels
	xlim   *Range
	ylim   *Range
}

// New constructs the base specification from a dataset and its default
// aesthetic mapping. It fails with InvalidMappingError if the mapping
// references a column absent from ds.
func New(ds *Dataset, aes Mapping) (*Plot, error) {
	if aes == nil {
		aes = Mapping{}
	}
	if err := aes.validate(ds); err != nil {
		return nil, err
	}
	return &Plot{ds: ds, aes: aes}, nil
}

// clone copies p one level deep; slices and maps are fresh so that derived
// specifications share no mutable structure with their base.
func (p *Plot) clone() *Plot {
	q := *p
	q.layers = append([]Layer{}, p.layers...)
	q.scales = make(map[Channel]Scale, len(p.scales))
	for c, s := range p.scales {
		q.scales[c] = s
	}
	q.guides = make(map[Channel]bool, len(p.guides))
	for c, show := range p.guides {
		q.guides[c] = show
	}
	return &q
}

// Dataset returns the dataset the specification is bound to.
func (p *Plot) Dataset() *Dataset {
	return p.ds
}

// Aes returns the effective default mapping of the specification.
func (p *Plot) Aes() Mapping {
	m := make(Mapping, len(p.aes))
	for c, t := range p.aes {
		m[c] = t
	}
	return m
}

// Layers returns the number of layers in the specification.
func (p *Plot) Layers() int {
	return len(p.layers)
}

// Layer derives a specification with one additional geom layer. The layer's
// effective mapping is the default mapping overlaid by local; local entries
// replace same-named default entries. It fails with InvalidMappingError if
// local references an unknown column, and with
// MissingRequiredAestheticError if a channel required by g is unset after
// the overlay.
func (p *Plot) Layer(g Geom, local Mapping, fixed Params) (*Plot, error) {
	if err := local.validate(p.ds); err != nil {
		return nil, err
	}
	if err := g.checkRequired(p.aes.overlay(local)); err != nil {
		return nil, err
	}
	q := p.clone()
	q.layers = append(q.layers, Layer{Geom: g, Aes: local, Fixed: fixed})
	return q, nil
}

// Scale derives a specification in which s replaces any prior scale for the
// same channel. The scale is copied on insert, so mutating the caller's value
// afterwards does not reach the specification. It fails with
// UnknownChannelError if the scale targets an unrecognized channel.
func (p *Plot) Scale(s Scale) (*Plot, error) {
	if !channels[s.Channel()] {
		return nil, UnknownChannelError{Channel: s.Channel()}
	}
	q := p.clone()
	q.scales[s.Channel()] = cloneScale(s)
	return q, nil
}

// Guide derives a specification with the legend for channel c shown or
// hidden, overriding the default of showing legends for mapped discrete
// channels. It fails with UnknownChannelError for unrecognized channels.
func (p *Plot) Guide(c Channel, show bool) (*Plot, error) {
	if !channels[c] {
		return nil, UnknownChannelError{Channel: c}
	}
	q := p.clone()
	q.guides[c] = show
	return q, nil
}

// Theme derives a specification with t's non-zero keys overlaid onto the
// current theme, later keys winning.
func (p *Plot) Theme(t Theme) *Plot {
	q := p.clone()
	q.theme = q.theme.merge(t)
	return q
}

// Labels derives a specification with l's non-empty keys overlaid onto the
// current labels, later keys winning.
func (p *Plot) Labels(l Labels) *Plot {
	q := p.clone()
	q.labels = q.labels.merge(l)
	return q
}

// CoordLim derives a specification with viewport limits on either axis.
// Limits clip the view; they do not filter the data that trains the scales.
// A nil range leaves that axis free.
func (p *Plot) CoordLim(xlim, ylim *Range) *Plot {
	q := p.clone()
	if xlim != nil {
		r := *xlim
		q.xlim = &r
	}
	if ylim != nil {
		r := *ylim
		q.ylim = &r
	}
	return q
}
