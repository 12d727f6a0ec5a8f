/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package entity

import "sync"

/*
TypeModule is a user-declared named type for a node or edge, carrying
its data schema and, for edges, its source/target bindings. At
runtime every entity produced by a module is tagged with the
module's Symbol() in its metadata, so bindings can be checked by
simple set membership instead of a type comparison.
*/
type TypeModule interface {

	/*
	   Symbol is the interned name recorded in metadata.module.
	*/
	Symbol() string

	/*
	   DataSchema is the schema validated against an entity's data map.
	   A nil schema means no validation is performed.
	*/
	DataSchema() Schema
}

/*
EdgeTypeModule is a TypeModule that additionally declares the
bindings its edges must satisfy.
*/
type EdgeTypeModule interface {
	TypeModule

	SourceBinding() Binding
	TargetBinding() Binding
}

/*
BasicModule is a minimal TypeModule implementation for node and
graph types that carry no binding.
*/
type BasicModule struct {
	Sym    string
	Schema Schema
}

func (m BasicModule) Symbol() string     { return m.Sym }
func (m BasicModule) DataSchema() Schema { return m.Schema }

/*
BasicEdgeModule is a minimal EdgeTypeModule implementation.
*/
type BasicEdgeModule struct {
	BasicModule
	Source Binding
	Target Binding
}

func (m BasicEdgeModule) SourceBinding() Binding { return m.Source }
func (m BasicEdgeModule) TargetBinding() Binding { return m.Target }

/*
ModuleRegistry is a process-wide catalogue of declared type modules,
looked up by symbol when the store needs to validate an entity or
evaluate an edge binding. The store resolves an entity's
metadata.module symbol only through this registry: an entity whose
module symbol is not registered here is stored without schema
validation, default filling or binding checks.
*/
type ModuleRegistry struct {
	mu      sync.RWMutex
	modules map[string]TypeModule
}

/*
NewModuleRegistry returns an empty module registry.
*/
func NewModuleRegistry() *ModuleRegistry {
	return &ModuleRegistry{modules: make(map[string]TypeModule)}
}

/*
Register adds or replaces a type module under its own symbol.
*/
func (r *ModuleRegistry) Register(m TypeModule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules[m.Symbol()] = m
}

/*
Lookup returns the type module registered under symbol, if any.
*/
func (r *ModuleRegistry) Lookup(symbol string) (TypeModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.modules[symbol]
	return m, ok
}
