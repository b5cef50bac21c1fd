// SPDX-License-Identifier: MIT
// Package builder constructs synthetic, fully attributed redistricting plans:
// grids and strips of square cells with populations, land areas, perimeters,
// shared boundaries and an initial district labeling.
//
// The package offers the following key components:
//
//   - BuildGraph: the single orchestrator; resolves options and runs constructors in order.
//   - Constructors: Grid(rows, cols), Path(n).
//   - GridPlan: a rows×cols grid split into vertical stripe districts.
//   - Population policies (PopFn): ConstantPop, UniformPop, PopList.
//   - Labeling policies (LabelFn): SingleDistrict, Stripes, Cells.
//   - Options: WithSeed, WithRand, WithPopFn, WithLabelFn, WithCellGeometry.
//
// Guarantees:
//
//   - Deterministic IDs ("r,c"), edge order and, with WithSeed, populations.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Constructors return sentinel errors (ErrTooFewVertices, ErrNeedRandSource,
//     ErrConstructFailed) wrapped with the method name; they never panic.
package builder
