/*
 * GraphStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package pubsub

import (
	"fmt"
	"sync"

	"github.com/krotik/common/datautil"
	"github.com/krotik/common/pools"
	applog "github.com/krotik/graphstore/log"
)

/*
FilterFunc decides whether a matched event should actually be
delivered to a subscriber.
*/
type FilterFunc func(Event) bool

/*
Handler receives delivered events. It must not block for long -
the bus already runs it off the publisher's goroutine, but a stuck
handler still occupies its subscription's delivery worker.
*/
type Handler func(Event)

/*
LivenessFunc reports whether a subscriber handle is still valid. The
bus calls it before every delivery attempt and before every
ListSubscriptions call; once it returns false the subscription is
removed.
*/
type LivenessFunc func() bool

/*
SubscribeOptions configures a single subscription.
*/
type SubscribeOptions struct {
	Filter     FilterFunc
	EventKinds []EventKind
	Alive      LivenessFunc
}

/*
Info is the read-only view of a subscription returned by
ListSubscriptions.
*/
type Info struct {
	ID      string
	Topic   Topic
	Dropped uint64
}

/*
Bus is the store's subscription bus: best-effort, non-blocking
delivery to many subscribers with bounded per-subscriber buffering.
A slow subscriber never stalls a writer - Publish only ever appends
to a ring buffer and wakes a pooled delivery worker.
*/
type Bus struct {
	mu         sync.RWMutex
	subs       map[string]*subscription
	bufferSize int
	pool       *pools.ThreadPool
	logger     applog.Logger
	idSeq      uint64
}

/*
NewBus creates a subscription bus whose per-subscriber delivery
buffers hold bufferSize events before the oldest undelivered event is
dropped.
*/
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = 256
	}

	pool := pools.NewThreadPool()
	pool.SetWorkerCount(4, false)

	return &Bus{
		subs:       make(map[string]*subscription),
		bufferSize: bufferSize,
		pool:       pool,
		logger:     applog.GetLogger("graphstore/pubsub"),
	}
}

/*
Stop waits for in-flight deliveries to finish and tears down the
delivery worker pool.
*/
func (b *Bus) Stop() {
	b.pool.JoinAll()
}

type subscription struct {
	id     string
	topic  Topic
	filter FilterFunc
	kinds  map[EventKind]bool
	handler Handler
	alive  LivenessFunc

	mu        sync.Mutex
	buf       *datautil.RingBuffer
	scheduled bool
	dropped   uint64
}

/*
Subscribe registers handler to receive events matching topic,
optionally narrowed by a filter predicate and a set of event kinds.
Returns the subscription id used with Unsubscribe.
*/
func (b *Bus) Subscribe(topic Topic, handler Handler, opts SubscribeOptions) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idSeq++
	id := fmt.Sprintf("sub-%d", b.idSeq)

	var kinds map[EventKind]bool
	if len(opts.EventKinds) > 0 {
		kinds = make(map[EventKind]bool, len(opts.EventKinds))
		for _, k := range opts.EventKinds {
			kinds[k] = true
		}
	}

	b.subs[id] = &subscription{
		id:      id,
		topic:   topic,
		filter:  opts.Filter,
		kinds:   kinds,
		handler: handler,
		alive:   opts.Alive,
		buf:     datautil.NewRingBuffer(b.bufferSize),
	}

	return id
}

/*
Unsubscribe removes a subscription. Unknown ids are a no-op.
*/
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subs, id)
}

/*
ListSubscriptions returns every live subscription, sweeping out any
whose handle has become invalid first so a dead subscriber never
appears here even if no event has been published since it died.
*/
func (b *Bus) ListSubscriptions() []Info {
	b.sweep()

	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Info, 0, len(b.subs))
	for _, s := range b.subs {
		s.mu.Lock()
		dropped := s.dropped
		s.mu.Unlock()
		out = append(out, Info{ID: s.id, Topic: s.topic, Dropped: dropped})
	}

	return out
}

func (b *Bus) sweep() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, s := range b.subs {
		if s.alive != nil && !s.alive() {
			delete(b.subs, id)
		}
	}
}

/*
Publish delivers ev to every matching, live subscription. Matching is
topic pattern AND (no filter OR filter(ev)) AND (no event-kind
restriction OR ev.Kind is allowed). Delivery itself is handed to the
subscription's own serial delivery worker so that events from one
Publish call (and from the same transaction) are never reordered for
a single subscriber; no ordering is guaranteed across subscribers.
*/
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	snapshot := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		snapshot = append(snapshot, s)
	}
	b.mu.RUnlock()

	var dead []string

	for _, s := range snapshot {
		if s.alive != nil && !s.alive() {
			dead = append(dead, s.id)
			continue
		}

		if !s.topic.Matches(ev) {
			continue
		}
		if s.filter != nil && !s.filter(ev) {
			continue
		}
		if s.kinds != nil && !s.kinds[ev.Kind] {
			continue
		}

		b.enqueue(s, ev)
	}

	if len(dead) > 0 {
		b.mu.Lock()
		for _, id := range dead {
			delete(b.subs, id)
		}
		b.mu.Unlock()
	}
}

func (b *Bus) enqueue(s *subscription, ev Event) {
	s.mu.Lock()

	full := s.buf.Size() == b.bufferSize
	s.buf.Add(ev)
	if full {
		s.dropped++
		b.logger.Warning("dropped oldest event for subscriber ", s.id)
	}

	needSchedule := !s.scheduled
	s.scheduled = true
	s.mu.Unlock()

	if needSchedule {
		b.pool.AddTask(&deliveryTask{sub: s, bus: b})
	}
}

/*
deliveryTask drains a subscription's pending events in order, off the
writer's goroutine, until the buffer runs dry.
*/
type deliveryTask struct {
	sub *subscription
	bus *Bus
}

func (t *deliveryTask) Run() error {
	for {
		t.sub.mu.Lock()
		if t.sub.buf.IsEmpty() {
			t.sub.scheduled = false
			t.sub.mu.Unlock()
			return nil
		}
		item := t.sub.buf.Poll()
		t.sub.mu.Unlock()

		ev, ok := item.(Event)
		if !ok {
			continue
		}

		t.deliver(ev)
	}
}

func (t *deliveryTask) deliver(ev Event) {
	defer func() {
		if r := recover(); r != nil {
			t.bus.logger.Error(fmt.Sprintf("subscriber %s panicked handling event: %v", t.sub.id, r))
		}
	}()

	t.sub.handler(ev)
}

func (t *deliveryTask) HandleError(e error) {
	t.bus.logger.Error(fmt.Sprintf("subscriber %s delivery error: %v", t.sub.id, e))
}
