// Package redistrict samples congressional district plans with the
// recombination (ReCom) Markov chain.
//
// What is redistrict?
//
//	A dual graph of census units (one vertex per unit, one edge per shared
//	boundary) carries a district label on every unit. Each chain step merges
//	two adjacent districts, draws a random spanning tree of the merger, cuts
//	it into two population-balanced connected pieces and relabels them. Runs
//	are seeded and reproducible; many seeds run in parallel.
//
// Packages:
//
//	core/       - dual graph: units, adjacency edges, labels, subgraph views
//	bfs/        - traversal, connected components, contiguity checks
//	spanning/   - Kruskal/Prim spanning trees, random-weight tree sampling
//	centrality/ - edge betweenness ranking of tree edges (gonum)
//	stats/      - per-district population, area, perimeter, Polsby–Popper
//	plan/       - plan fingerprints, visited-plan history, plan validation
//	recom/      - the recombination move generator
//	chain/      - one seeded chain: stepping, stop conditions, sinks
//	runner/     - many seeds on a bounded worker pool
//	graphio/    - node-link JSON and GeoJSON+CSV loaders, node-link writer
//	sink/       - CSV, SQL (gorm) and bolt output stores
//	metrics/    - Prometheus collectors
//	config/     - YAML configuration
//	builder/    - synthetic grid and path plans for tests and dry runs
//	cmd/redistrict - the command-line entry point
//
// Quick ASCII example, two districts on a 2×2 grid of units A B / C D:
//
//	    A(1)───B(2)
//	     │      │
//	    C(1)───D(2)
//
// merging 1 and 2 and drawing the spanning tree A─B─D─C, cutting B─D gives
// the plan {A, B} / {C, D}; piece size and land continuity then decide
// which piece keeps label 1.
//
//	go install github.com/katalvlaran/redistrict/cmd/redistrict@latest
package redistrict
