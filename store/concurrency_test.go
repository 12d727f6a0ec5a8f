/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package store

import (
	"sync"
	"testing"

	"github.com/krotik/graphstore/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestConcurrentReadersSeeConsistentSnapshots runs 16 readers listing
every node while one writer commits 1,000 inserts, and checks that
every node returned by a List call has an id and, when it carries a
graph id, a nodes-by-graph index entry; afterwards the per-type count
and the node list must both show every write.
*/
func TestConcurrentReadersSeeConsistentSnapshots(t *testing.T) {
	a := newTestAdapter(t)

	const writes = 1000
	const readers = 16

	var wg sync.WaitGroup
	wg.Add(1 + readers)

	errCh := make(chan error, readers)

	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			_, err := a.Insert(entity.KindNode, entity.Node{Type: "Person"})
			if err != nil {
				errCh <- err
				return
			}
		}
	}()

	for r := 0; r < readers; r++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				nodes, err := a.List(entity.KindNode, map[string]interface{}{})
				if err != nil {
					errCh <- err
					return
				}
				for _, rec := range nodes {
					n := rec.(entity.Node)
					if n.ID == "" {
						errCh <- assertErr("node with empty id observed mid-write")
						return
					}
					if _, ok := a.nodesByGraph[n.GraphID]; n.GraphID != "" && !ok {
						errCh <- assertErr("node observed without its graph index populated")
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	stats := a.Stats()
	assert.Equal(t, writes, stats.Nodes["Person"])

	nodes, err := a.List(entity.KindNode, map[string]interface{}{})
	require.NoError(t, err)
	assert.Len(t, nodes, writes)
}

type assertionError string

func (e assertionError) Error() string { return string(e) }

func assertErr(msg string) error { return assertionError(msg) }
