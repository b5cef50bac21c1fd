// SPDX-License-Identifier: MIT
package graphio

import "errors"

// Default attribute names.
const (
	DefaultDistrictField = "cd"
	DefaultIDField       = "id"
	DefaultGeoIDField    = "geoid"

	fieldTotalPop    = "total_pop"
	fieldALand       = "aland"
	fieldPerim       = "perim"
	fieldSource      = "source"
	fieldTarget      = "target"
	fieldSharedPerim = "shared_perim"
	fieldDistance    = "distance"
)

// Sentinel errors.
var (
	// ErrBadFormat indicates input that is not the expected document shape.
	ErrBadFormat = errors.New("graphio: malformed input")

	// ErrMissingField indicates a required attribute is absent.
	ErrMissingField = errors.New("graphio: missing field")

	// ErrDirected indicates a directed or multigraph node-link document.
	ErrDirected = errors.New("graphio: directed or multigraph input")
)

// Option customizes attribute names.
type Option func(*options)

type options struct {
	districtField string
	idField       string
	indent        bool
}

func newOptions(opts []Option, idField string) options {
	o := options{districtField: DefaultDistrictField, idField: idField}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithDistrictField names the node attribute that holds the district label.
func WithDistrictField(name string) Option {
	return func(o *options) {
		if name != "" {
			o.districtField = name
		}
	}
}

// WithIDField names the attribute that holds the unit ID. Node-link input
// defaults to "id", GeoJSON properties to "geoid".
func WithIDField(name string) Option {
	return func(o *options) {
		if name != "" {
			o.idField = name
		}
	}
}

// WithIndent pretty-prints written JSON.
func WithIndent() Option {
	return func(o *options) { o.indent = true }
}
