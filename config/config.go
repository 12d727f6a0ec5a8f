/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package config holds the options a store is started with. Unlike the
teacher's file-backed global Config map (this module has no disk
persistence per its Non-goals), Config here is a value threaded
through Registry.Start, with a DefaultConfig constructor and a Merge
method in the teacher's defaults-then-overrides idiom.
*/
package config

import "github.com/krotik/graphstore/algo"

/*
Config carries every store-wide option exposed through the adapter's
init(opts) contract.
*/
type Config struct {

	/*
		DefaultWeight is the store-wide default edge weight. It is not
		passed to the algorithms, which take their default weight
		from their own options (1.0 when unset).
	*/
	DefaultWeight float64

	/*
		WeightProperty is the store-wide data map key for edge
		weights. It is not passed to the algorithms, which take the
		key from their own options ("weight" when unset).
	*/
	WeightProperty string

	/*
		MaxSubscriberBuffer bounds the per-subscriber delivery queue
		in the subscription bus. Overflow drops the oldest undelivered
		event and increments that subscriber's drop counter.
	*/
	MaxSubscriberBuffer int

	/*
		DefaultDirection is the store-wide default traversal
		direction. It is not passed to BFS or connected components,
		whose zero-valued Direction option means Out.
	*/
	DefaultDirection algo.Direction

	/*
		DefaultMaxDepth is the store-wide default BFS depth bound. It
		is not passed to BFS, which uses 10 when its MaxDepth option
		is unset.
	*/
	DefaultMaxDepth int
}

/*
DefaultConfig returns the configuration a store is started with when
the caller supplies no overrides.
*/
func DefaultConfig() Config {
	return Config{
		DefaultWeight:       1.0,
		WeightProperty:      "weight",
		MaxSubscriberBuffer: 256,
		DefaultDirection:    algo.Out,
		DefaultMaxDepth:     10,
	}
}

/*
Merge returns a copy of this config with every key present in
overrides applied on top. Unknown keys are ignored rather than
rejected, mirroring the teacher's permissive file-config merge.
*/
func (c Config) Merge(overrides map[string]interface{}) Config {
	out := c

	if v, ok := overrides["DefaultWeight"].(float64); ok {
		out.DefaultWeight = v
	}
	if v, ok := overrides["WeightProperty"].(string); ok {
		out.WeightProperty = v
	}
	if v, ok := overrides["MaxSubscriberBuffer"].(int); ok {
		out.MaxSubscriberBuffer = v
	}
	if v, ok := overrides["DefaultDirection"].(algo.Direction); ok {
		out.DefaultDirection = v
	}
	if v, ok := overrides["DefaultMaxDepth"].(int); ok {
		out.DefaultMaxDepth = v
	}

	return out
}
