// SPDX-License-Identifier: MIT
// Package recom implements the recombination (ReCom) move of a redistricting
// Markov chain.
//
// One successful Propose merges two districts, draws a random spanning tree
// of the merger, cuts one tree edge so that both pieces stay connected and
// the plan stays within the population tolerance, and relabels the pieces.
//
// Search order
//
//  1. PairOrder: districts sorted by population. A balanced plan visits every
//     pair in random order; an unbalanced plan pairs small with large districts
//     first and only accepts moves that do not worsen the imbalance.
//  2. Pairs whose merged district is disconnected are skipped without drawing trees.
//  3. Up to MaxTrees trees per pair: uniform random edge weights, then Kruskal.
//     Trees already tried for the pair are skipped but still count.
//  4. Cut candidates are the most central tree edges (edge betweenness),
//     capped at int(min(MaxCuts, CutFraction·edges)).
//  5. The larger piece keeps D0 unless swapping labels keeps more land area
//     under its old label.
//  6. The candidate labeling is a detached core.Assignment. Its statistics are
//     recomputed and must reproduce the acceptance imbalance within
//     ConsistencyEps, else ErrInconsistentImbalance.
//  7. Plans whose fingerprint is already in the history are rejected and the
//     search continues.
//
// Propose never writes to the graph or the history; the caller commits.
package recom
