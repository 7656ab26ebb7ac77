package repository

import "sync"

// subscriber carries one callback with its own lock so Unsubscribe can
// guarantee no invocation happens after it returns.
type subscriber struct {
	mu     sync.Mutex
	closed bool
	colFn  func([]Document)
	docFn  func(Document)
}

func (s *subscriber) notifyCollection(docs []Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed && s.colFn != nil {
		s.colFn(docs)
	}
}

func (s *subscriber) notifyDoc(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed && s.docFn != nil {
		s.docFn(doc)
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// hub tracks live subscriptions for a store and fans changes out to them.
// Both store implementations deliver through it; the contract only promises
// eventual delivery and silence after unsubscribe, not any transport.
type hub struct {
	mu      sync.Mutex
	colSubs map[string]map[int]*subscriber
	docSubs map[string]map[int]*subscriber
	next    int
}

func newHub() *hub {
	return &hub{
		colSubs: make(map[string]map[int]*subscriber),
		docSubs: make(map[string]map[int]*subscriber),
	}
}

func docKey(collection, id string) string {
	return collection + "\x00" + id
}

func (h *hub) addCollection(collection string, fn func([]Document)) Unsubscribe {
	sub := &subscriber{colFn: fn}

	h.mu.Lock()
	id := h.next
	h.next++
	if h.colSubs[collection] == nil {
		h.colSubs[collection] = make(map[int]*subscriber)
	}
	h.colSubs[collection][id] = sub
	h.mu.Unlock()

	return func() {
		sub.close()
		h.mu.Lock()
		delete(h.colSubs[collection], id)
		h.mu.Unlock()
	}
}

func (h *hub) addDoc(collection, id string, fn func(Document)) Unsubscribe {
	sub := &subscriber{docFn: fn}
	key := docKey(collection, id)

	h.mu.Lock()
	subID := h.next
	h.next++
	if h.docSubs[key] == nil {
		h.docSubs[key] = make(map[int]*subscriber)
	}
	h.docSubs[key][subID] = sub
	h.mu.Unlock()

	return func() {
		sub.close()
		h.mu.Lock()
		delete(h.docSubs[key], subID)
		h.mu.Unlock()
	}
}

// broadcast delivers a collection snapshot and the changed document (nil on
// delete) to the relevant subscribers. Callbacks run outside the hub lock.
func (h *hub) broadcast(collection, id string, snapshot []Document, doc Document) {
	h.mu.Lock()
	colTargets := make([]*subscriber, 0, len(h.colSubs[collection]))
	for _, s := range h.colSubs[collection] {
		colTargets = append(colTargets, s)
	}
	key := docKey(collection, id)
	docTargets := make([]*subscriber, 0, len(h.docSubs[key]))
	for _, s := range h.docSubs[key] {
		docTargets = append(docTargets, s)
	}
	h.mu.Unlock()

	for _, s := range colTargets {
		s.notifyCollection(snapshot)
	}
	for _, s := range docTargets {
		s.notifyDoc(doc)
	}
}
