/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectedComponentsPartition(t *testing.T) {
	g := newTestGraph()
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		g.addNode(n)
	}
	g.addEdge("e1", "A", "B", 1)
	g.addEdge("e2", "B", "C", 1)
	g.addEdge("e3", "D", "E", 1)

	groups := ConnectedComponents(g, ComponentsOptions{})

	assert.Len(t, groups, 2)
	assert.Equal(t, []string{"A", "B", "C"}, groups[0])
	assert.Equal(t, []string{"D", "E"}, groups[1])
}

func TestConnectedComponentsIsolatedNode(t *testing.T) {
	g := newTestGraph()
	g.addNode("solo")

	groups := ConnectedComponents(g, ComponentsOptions{})
	assert.Equal(t, [][]string{{"solo"}}, groups)
}
