// Package message holds the text that text zones cycle through
package message

import "sync"

// Group is a rotating list of messages contributed by several sources
// Messages are kept per source so one feed can be refreshed without touching the others
type Group struct {
	mu      sync.Mutex
	sources map[string][]string
	order   []string // Source ids in first-seen order
	cursor  int
}

// NewGroup creates an empty group
func NewGroup() *Group {
	return &Group{
		sources: make(map[string][]string),
	}
}

// Add appends messages under source
func (g *Group) Add(source string, msgs ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.sources[source]; !ok {
		g.order = append(g.order, source)
	}
	g.sources[source] = append(g.sources[source], msgs...)
}

// Replace swaps every message of source for msgs
func (g *Group) Replace(source string, msgs ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.sources[source]; !ok {
		g.order = append(g.order, source)
	}
	g.sources[source] = append([]string(nil), msgs...)
}

// ClearSource drops the messages of one source
func (g *Group) ClearSource(source string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.sources[source]; !ok {
		return
	}
	delete(g.sources, source)
	for i, id := range g.order {
		if id == source {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Clear drops every message and rewinds the rotation
func (g *Group) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sources = make(map[string][]string)
	g.order = nil
	g.cursor = 0
}

// List returns all messages, sources in first-seen order
func (g *Group) List() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.list()
}

func (g *Group) list() []string {
	var out []string
	for _, id := range g.order {
		out = append(out, g.sources[id]...)
	}
	return out
}

// Len returns the number of messages
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, msgs := range g.sources {
		n += len(msgs)
	}
	return n
}

// Next returns the next message round-robin, false when the group is empty
func (g *Group) Next() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	all := g.list()
	if len(all) == 0 {
		return "", false
	}
	idx := g.cursor % len(all)
	g.cursor = idx + 1
	return all[idx], true
}
