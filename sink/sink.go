// SPDX-License-Identifier: MIT
// Package sink holds what the chain.Sink implementations share: run naming
// and the final-close hook. Concrete stores live in csvsink, sqlsink and
// boltsink.
package sink

import (
	"fmt"
	"io"

	"github.com/katalvlaran/redistrict/chain"
)

// TableName returns the per-seed name prefix, e.g. "pa_seed_0003".
func TableName(name string, seed int64) string {
	return fmt.Sprintf("%s_seed_%04d", name, seed)
}

// Close closes s if it holds resources. A run that stops without Finish
// still has to release its files.
func Close(s chain.Sink) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
