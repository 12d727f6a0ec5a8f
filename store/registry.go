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

	"github.com/krotik/graphstore/access"
	"github.com/krotik/graphstore/config"
	"github.com/krotik/graphstore/entity"
	"github.com/krotik/graphstore/gerr"
	"github.com/krotik/graphstore/pubsub"
)

/*
Options configures a single named store at Start time.
*/
type Options struct {

	/*
		Adapter is the storage backend to use. A nil Adapter starts a
		fresh InMemoryAdapter.
	*/
	Adapter Adapter

	/*
		Config is passed to the adapter's Init and sizes the
		subscription bus (MaxSubscriberBuffer). Algorithms run through
		Store.Traverse do not read it; they use their own option
		defaults.
	*/
	Config config.Config

	/*
		Modules is consulted for schema/binding validation. A nil
		registry is treated as empty - every insert validates against
		no schema and no binding.
	*/
	Modules *entity.ModuleRegistry

	/*
		Overlay is the access-control hook set. Nil means access.NoOverlay{}.
	*/
	Overlay access.Overlay

	/*
		Rules overrides the default GraphRule set. Nil means DefaultRules().
	*/
	Rules []GraphRule
}

/*
handle is what the registry keeps per named store.
*/
type handle struct {
	adapter Adapter
	bus     *pubsub.Bus
	overlay access.Overlay
	cfg     config.Config
}

/*
Registry is the process-wide catalogue of named, running stores. Its
own lock only ever guards start/stop/lookup - never a store's own
CRUD traffic.
*/
type Registry struct {
	mu      sync.RWMutex
	handles map[string]*handle
}

/*
NewRegistry returns an empty store registry.
*/
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]*handle)}
}

/*
Start registers and initializes a new named store. Starting a name
that is already running returns InvalidOperation.
*/
func (r *Registry) Start(name string, opts Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handles[name]; exists {
		return gerr.InvalidOp(0, "store "+name+" is already running")
	}

	cfg := opts.Config
	if (cfg == config.Config{}) {
		cfg = config.DefaultConfig()
	}

	modules := opts.Modules
	if modules == nil {
		modules = entity.NewModuleRegistry()
	}

	overlay := opts.Overlay
	if overlay == nil {
		overlay = access.NoOverlay{}
	}

	bus := pubsub.NewBus(cfg.MaxSubscriberBuffer)

	adapter := opts.Adapter
	if adapter == nil {
		adapter = NewInMemoryAdapter(modules, bus, opts.Rules)
	}

	if err := adapter.Init(cfg); err != nil {
		return err
	}

	r.handles[name] = &handle{adapter: adapter, bus: bus, overlay: overlay, cfg: cfg}

	return nil
}

/*
Stop tears down and unregisters a named store. Stopping an unknown
name returns StoreNotFound.
*/
func (r *Registry) Stop(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.handles[name]
	if !ok {
		return &gerr.StoreError{Type: gerr.ErrStoreNotFound, Fields: map[string]interface{}{"name": name}}
	}

	h.bus.Stop()
	delete(r.handles, name)

	return h.adapter.Stop()
}

/*
lookup returns the handle for name, or StoreNotFound.
*/
func (r *Registry) lookup(name string) (*handle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handles[name]
	if !ok {
		return nil, &gerr.StoreError{Type: gerr.ErrStoreNotFound, Fields: map[string]interface{}{"name": name}}
	}

	return h, nil
}

/*
Names returns every currently running store name.
*/
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.handles))
	for name := range r.handles {
		out = append(out, name)
	}
	return out
}
