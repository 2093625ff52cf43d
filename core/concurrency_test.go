// SPDX-License-Identifier: MIT

// Package core_test verifies thread-safety of core.Graph under concurrent operations.
package core_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pathgraph/core"
)

// TestConcurrentSetEdge ensures that concurrent SetEdge calls are safe and
// every neighbor appears exactly once.
func TestConcurrentSetEdge(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)

	errs := make(chan error, num)
	for i := 1; i <= num; i++ {
		go func(id int) {
			defer wg.Done()
			if _, err := g.SetEdge(0, id, float64(id)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	nbs, err := g.NeighborIDs(0)
	require.NoError(t, err)
	require.Len(t, nbs, num)
	require.Equal(t, num, g.Stats().EdgeCount)
}

// TestConcurrentReadersAndWriters validates that enumeration and stats do not
// race with writers.
func TestConcurrentReadersAndWriters(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	for i := 0; i < 50; i++ {
		_, _ = g.SetEdge(i, i+1, 1)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			for _, u := range g.Vertices() {
				_, _ = g.NeighborIDs(u)
			}
		}()
		go func() {
			defer wg.Done()
			_ = g.Stats()
		}()
		go func(id int) {
			defer wg.Done()
			_, _ = g.SetEdge(id, id+2, 2)
		}(i)
	}
	wg.Wait()
}
