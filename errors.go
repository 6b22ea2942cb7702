package plot

import "fmt"

// InvalidMappingError is returned when an aesthetic mapping references a
// column that does not exist in the dataset in scope.
type InvalidMappingError struct {
	Channel Channel
	Column  string
}

func (e InvalidMappingError) Error() string {
	return fmt.Sprintf("mapping for %s references unknown column %q", e.Channel, e.Column)
}

// MissingRequiredAestheticError is returned when a geom's required channel is
// unset after overlaying the layer mapping onto the plot's default mapping.
type MissingRequiredAestheticError struct {
	Geom    Geom
	Channel Channel
}

func (e MissingRequiredAestheticError) Error() string {
	return fmt.Sprintf("%v requires aesthetic %s but it is not mapped", e.Geom, e.Channel)
}

// UnknownChannelError is returned when a scale or guide targets a channel
// that is not a recognized aesthetic channel.
type UnknownChannelError struct {
	Channel Channel
}

func (e UnknownChannelError) Error() string {
	return fmt.Sprintf("unknown aesthetic channel %q", string(e.Channel))
}

// MalformedDatasetError is returned by the CSV loader on rows that cannot be
// parsed into the dataset's column structure.
type MalformedDatasetError struct {
	Row int
	Err error
}

func (e MalformedDatasetError) Error() string {
	return fmt.Sprintf("malformed dataset at row %d: %v", e.Row, e.Err)
}

func (e MalformedDatasetError) Unwrap() error {
	return e.Err
}
