// SPDX-License-Identifier: MIT
package graphio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/redistrict/core"
	"github.com/paulmach/orb/geojson"
)

// ReadGeoJSON builds a graph from a FeatureCollection of units and a CSV
// adjacency list. Unit IDs come from the "geoid" property unless
// WithIDField says otherwise, falling back to the feature id.
//
// The CSV must start with a header naming at least source and target;
// shared_perim and distance columns are optional, and an empty cell leaves
// the attribute absent.
func ReadGeoJSON(features, adjacency io.Reader, opts ...Option) (*core.Graph, error) {
	o := newOptions(opts, DefaultGeoIDField)
	data, err := io.ReadAll(features)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	g := core.NewGraph(core.WithCapacity(len(fc.Features), 0))
	skip := reserved(o)
	for i, f := range fc.Features {
		props := map[string]any(f.Properties)
		if _, ok := props[o.idField]; !ok && f.ID != nil {
			props = f.Properties.Clone()
			props[o.idField] = f.ID
		}
		u, err := unitFrom(props, o)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		for k, v := range f.Properties {
			if !skip[k] {
				if u.Attrs == nil {
					u.Attrs = make(map[string]interface{})
				}
				u.Attrs[k] = v
			}
		}
		if err := g.AddUnit(u); err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
	}

	if err := readAdjacency(g, adjacency); err != nil {
		return nil, err
	}

	return g, nil
}

func readAdjacency(g *core.Graph, r io.Reader) error {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("%w: adjacency header: %v", ErrBadFormat, err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, need := range []string{fieldSource, fieldTarget} {
		if _, ok := col[need]; !ok {
			return fmt.Errorf("%w: adjacency column %q", ErrMissingField, need)
		}
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: adjacency line %d: %v", ErrBadFormat, line, err)
		}
		props := make(map[string]any, len(col))
		for name, i := range col {
			if i < len(rec) && rec[i] != "" {
				props[name] = rec[i]
			}
		}
		src, _ := attrString(props[fieldSource])
		dst, _ := attrString(props[fieldTarget])
		if _, err := g.AddEdge(src, dst, edgeOpts(props)...); err != nil {
			return fmt.Errorf("adjacency line %d: %w", line, err)
		}
	}
}

// LoadFile reads a graph from path. Files ending in .geojson need the
// adjacency CSV in adjacencyPath; anything else is read as node-link JSON.
func LoadFile(path, adjacencyPath string, opts ...Option) (*core.Graph, error) {
	geo := strings.EqualFold(filepath.Ext(path), ".geojson")
	if geo && adjacencyPath == "" {
		return nil, fmt.Errorf("%w: %s needs an adjacency file", ErrMissingField, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if !geo {
		return ReadNodeLink(f, opts...)
	}

	adj, err := os.Open(adjacencyPath)
	if err != nil {
		return nil, err
	}
	defer adj.Close()

	return ReadGeoJSON(f, adj, opts...)
}

// SaveFile writes g to path as node-link JSON.
func SaveFile(path string, g *core.Graph, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteNodeLink(f, g, opts...); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
