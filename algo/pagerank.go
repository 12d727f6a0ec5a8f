/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package algo

/*
PageRankOptions configures the PageRank iteration.
*/
type PageRankOptions struct {
	Iterations           int
	Damping              float64
	Weighted             bool
	WeightProperty       string
	ConvergenceThreshold float64
}

/*
DefaultPageRankOptions returns the options PageRank uses for
zero-valued fields.
*/
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		Iterations:           20,
		Damping:              0.85,
		WeightProperty:       "weight",
		ConvergenceThreshold: 1e-4,
	}
}

func (o PageRankOptions) withDefaults() PageRankOptions {
	d := DefaultPageRankOptions()
	if o.Iterations != 0 {
		d.Iterations = o.Iterations
	}
	if o.Damping != 0 {
		d.Damping = o.Damping
	}
	d.Weighted = o.Weighted
	if o.WeightProperty != "" {
		d.WeightProperty = o.WeightProperty
	}
	if o.ConvergenceThreshold != 0 {
		d.ConvergenceThreshold = o.ConvergenceThreshold
	}
	return d
}

/*
PageRank computes the stationary rank of every node. Nodes with no
outgoing edges ("dangling nodes") distribute their mass uniformly
across every node, themselves included. Terminates at Iterations or when the L1
difference between successive rank vectors falls below
ConvergenceThreshold.
*/
func PageRank(g GraphReader, opts PageRankOptions) map[string]float64 {
	opts = opts.withDefaults()

	nodes := g.AllNodeIDs()
	n := len(nodes)
	if n == 0 {
		return map[string]float64{}
	}

	outWeight := make(map[string]float64, n)
	outEdges := make(map[string][]EdgeRef, n)

	for _, node := range nodes {
		edges := g.EdgesOf(node, Out, "")
		outEdges[node] = edges

		total := 0.0
		for _, e := range edges {
			if opts.Weighted {
				total += Weight(e, opts.WeightProperty, 1.0)
			} else {
				total++
			}
		}
		outWeight[node] = total
	}

	rank := make(map[string]float64, n)
	for _, node := range nodes {
		rank[node] = 1.0 / float64(n)
	}

	base := (1 - opts.Damping) / float64(n)

	for iter := 0; iter < opts.Iterations; iter++ {
		next := make(map[string]float64, n)
		for _, node := range nodes {
			next[node] = base
		}

		danglingMass := 0.0

		for _, node := range nodes {
			edges := outEdges[node]

			if len(edges) == 0 {
				danglingMass += rank[node]
				continue
			}

			total := outWeight[node]

			for _, e := range edges {
				w := 1.0
				if opts.Weighted {
					w = Weight(e, opts.WeightProperty, 1.0)
				}
				if total > 0 {
					next[otherEnd(e, node)] += opts.Damping * rank[node] * (w / total)
				}
			}
		}

		if danglingMass > 0 {
			share := opts.Damping * danglingMass / float64(n)
			for _, node := range nodes {
				next[node] += share
			}
		}

		diff := 0.0
		for _, node := range nodes {
			d := next[node] - rank[node]
			if d < 0 {
				d = -d
			}
			diff += d
		}

		rank = next

		if diff < opts.ConvergenceThreshold {
			break
		}
	}

	return rank
}
