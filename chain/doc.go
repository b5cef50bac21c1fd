// SPDX-License-Identifier: MIT
// Package chain drives a single seeded run of the ReCom redistricting chain.
//
// A Chain owns a labeled core.Graph, a seeded RNG and the plan history.
// New records plan 0; every Step asks recom for one move and commits it;
// Run loops until max_steps plans were accepted or, with early stopping,
// the population imbalance is within tolerance. Every accepted plan is
// streamed to a Sink as a Record, and the final labeled graph is delivered
// through Sink.Finish.
//
// Life cycle:
//
//	INITIALIZING --Step--> STEPPING --stop condition / error--> STOPPED
//
// Two chains built from equal graphs and equal configurations produce
// identical record streams.
package chain
