package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/currency_exchange_app/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

// RedisGroupLayer fans group sends out through Redis pub/sub so that every instance
// delivers to its own local connections.
type RedisGroupLayer struct {
	client redis.UniversalClient
	prefix string
	local  *Hub
	logger *slog.Logger
}

func NewRedisGroupLayer(client redis.UniversalClient, prefix string, local *Hub, logger *slog.Logger) *RedisGroupLayer {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisGroupLayer{client: client, prefix: prefix, local: local, logger: logger}
}

func (l *RedisGroupLayer) channelPrefix() string {
	return l.prefix + "group:"
}

// GroupSend publishes msg for group. Delivery to local connections happens in Run.
func (l *RedisGroupLayer) GroupSend(ctx context.Context, group string, msg domain.PushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode push message: %w", err)
	}
	if err := l.client.Publish(ctx, l.channelPrefix()+group, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to group %s: %w", group, err)
	}
	return nil
}

// Run relays published messages to the local hub until ctx is done.
func (l *RedisGroupLayer) Run(ctx context.Context) error {
	sub := l.client.PSubscribe(ctx, l.channelPrefix()+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to group channels: %w", err)
	}
	l.logger.Info("Group layer subscribed", slog.String("pattern", l.channelPrefix()+"*"))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var msg domain.PushMessage
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				l.logger.Warn("Discarding malformed group message", slog.String("channel", m.Channel), slog.String("error", err.Error()))
				continue
			}
			group := strings.TrimPrefix(m.Channel, l.channelPrefix())
			_ = l.local.GroupSend(ctx, group, msg)
		}
	}
}
