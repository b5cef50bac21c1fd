// SPDX-License-Identifier: MIT
package graphio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/katalvlaran/redistrict/core"
)

type nodeLinkDoc struct {
	Directed   bool             `json:"directed"`
	Multigraph bool             `json:"multigraph"`
	Graph      map[string]any   `json:"graph"`
	Nodes      []map[string]any `json:"nodes"`
	Links      []map[string]any `json:"links,omitempty"`
	Edges      []map[string]any `json:"edges,omitempty"`
}

// reserved node keys are consumed into core.Unit fields; everything else
// is carried in Unit.Attrs.
func reserved(o options) map[string]bool {
	return map[string]bool{
		o.idField:       true,
		o.districtField: true,
		fieldTotalPop:   true,
		fieldALand:      true,
		fieldPerim:      true,
	}
}

// ReadNodeLink decodes a node-link JSON document into a new graph.
// Links may appear under "links" or "edges". Links naming unknown nodes,
// self-loops and repeated pairs are errors.
func ReadNodeLink(r io.Reader, opts ...Option) (*core.Graph, error) {
	o := newOptions(opts, DefaultIDField)
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc nodeLinkDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if doc.Directed || doc.Multigraph {
		return nil, ErrDirected
	}
	links := doc.Links
	if len(links) == 0 {
		links = doc.Edges
	}

	g := core.NewGraph(core.WithCapacity(len(doc.Nodes), len(links)))
	skip := reserved(o)
	for i, n := range doc.Nodes {
		u, err := unitFrom(n, o)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		for k, v := range n {
			if skip[k] {
				continue
			}
			if u.Attrs == nil {
				u.Attrs = make(map[string]interface{})
			}
			u.Attrs[k] = v
		}
		if err := g.AddUnit(u); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}

	for i, l := range links {
		src, ok1 := attrString(l[fieldSource])
		dst, ok2 := attrString(l[fieldTarget])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("link %d: %w: source/target", i, ErrMissingField)
		}
		if _, err := g.AddEdge(src, dst, edgeOpts(l)...); err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
	}

	return g, nil
}

// WriteNodeLink encodes g as node-link JSON. Nodes are written in ID order
// and links in edge-ID order, so equal graphs produce equal bytes.
func WriteNodeLink(w io.Writer, g *core.Graph, opts ...Option) error {
	o := newOptions(opts, DefaultIDField)
	doc := nodeLinkDoc{
		Graph: map[string]any{},
		Nodes: make([]map[string]any, 0, g.UnitCount()),
		Links: make([]map[string]any, 0, g.EdgeCount()),
	}

	for _, u := range g.Units() {
		n := make(map[string]any, len(u.Attrs)+5)
		for k, v := range u.Attrs {
			n[k] = v
		}
		n[o.idField] = u.ID
		n[fieldTotalPop] = u.TotalPop
		n[fieldALand] = u.ALand
		n[fieldPerim] = u.Perim
		n[o.districtField] = u.Label
		doc.Nodes = append(doc.Nodes, n)
	}
	for _, e := range g.Edges() {
		l := map[string]any{
			fieldSource:   e.From,
			fieldTarget:   e.To,
			fieldDistance: e.Distance,
		}
		if e.SharedPerim != nil {
			l[fieldSharedPerim] = *e.SharedPerim
		}
		doc.Links = append(doc.Links, l)
	}

	enc := json.NewEncoder(w)
	if o.indent {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(doc)
}
