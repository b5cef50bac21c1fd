// SPDX-License-Identifier: MIT
// Package core_test verifies thread-safety of core.Graph under concurrent operations.
package core_test

import (
	"sync"
	"testing"

	"github.com/katalvlaran/redistrict/core"
	"github.com/stretchr/testify/assert"
)

// TestConcurrentReadersAndLabelWriter runs snapshot readers alongside a label writer
// and cloners; the race detector is the real assertion here.
func TestConcurrentReadersAndLabelWriter(t *testing.T) {
	g := newSquare(t)
	var wg sync.WaitGroup
	wg.Add(NReaders + 2*NWriters)

	for i := 0; i < NReaders; i++ {
		go func() {
			defer wg.Done()
			_ = g.Labels()
			_ = g.Edges()
			_, _ = g.NeighborIDs(UnitA)
		}()
	}
	for i := 0; i < NWriters; i++ {
		go func(i int) {
			defer wg.Done()
			label := Label1
			if i%2 == 1 {
				label = Label2
			}
			_ = g.SetLabel(UnitD, label)
		}(i)
		go func() {
			defer wg.Done()
			_ = core.SubgraphOf(g, []string{UnitA, UnitB}).EdgeCount()
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, g.UnitCount())
	assert.Equal(t, 4, g.EdgeCount())
}
