// Package realtime carries push messages to live websocket connections.
// Connections join a named group; a group send reaches every connection of the group
// on this instance, or on every instance when a RedisGroupLayer sits in front of the hub.
package realtime

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/SscSPs/currency_exchange_app/internal/monitoring"
)

// Hub is the in-process group registry.
type Hub struct {
	mu      sync.RWMutex
	groups  map[string]map[*Connection]struct{}
	logger  *slog.Logger
	metrics monitoring.MetricsService
}

func NewHub(logger *slog.Logger, metrics monitoring.MetricsService) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = monitoring.NoopMetrics{}
	}
	return &Hub{
		groups:  make(map[string]map[*Connection]struct{}),
		logger:  logger,
		metrics: metrics,
	}
}

func (h *Hub) Register(group string, c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[group]
	if !ok {
		members = make(map[*Connection]struct{})
		h.groups[group] = members
	}
	members[c] = struct{}{}
}

func (h *Hub) Unregister(group string, c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.groups[group]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.groups, group)
	}
}

// GroupSend queues msg on every local connection of group. It never blocks on a slow connection.
func (h *Hub) GroupSend(_ context.Context, group string, msg domain.PushMessage) error {
	h.mu.RLock()
	members := make([]*Connection, 0, len(h.groups[group]))
	for c := range h.groups[group] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		c.Enqueue(msg)
	}
	if len(members) == 0 {
		h.logger.Debug("Group has no local connections", slog.String("group", group), slog.String("type", msg.Type))
	}
	return nil
}

// ConnectionCount returns the number of local connections in group.
func (h *Hub) ConnectionCount(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

// Close shuts every registered connection down.
func (h *Hub) Close() {
	h.mu.Lock()
	var all []*Connection
	for _, members := range h.groups {
		for c := range members {
			all = append(all, c)
		}
	}
	h.groups = make(map[string]map[*Connection]struct{})
	h.mu.Unlock()

	for _, c := range all {
		c.Close()
	}
}
