// SPDX-License-Identifier: MIT
// Package graphio loads and stores labeled dual graphs.
//
// Two input forms are supported:
//
//   - node-link JSON, the layout networkx writes with node_link_data:
//     {"directed": false, "nodes": [...], "links": [{"source", "target", ...}]}
//   - a GeoJSON FeatureCollection carrying unit attributes in feature
//     properties, plus a CSV adjacency list (source,target[,shared_perim][,distance]).
//
// Node attributes are total_pop, aland, perim and the district field, which
// defaults to "cd" and is chosen with WithDistrictField. Geometry is never
// inspected; areas and perimeters must already be present.
//
// WriteNodeLink emits the node-link form, so a finished run's graph can seed
// another run.
package graphio
