package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/query"
)

const streamMaxLen = 10000

// Invalidation asks every visitor to treat the given query keys as stale.
type Invalidation struct {
	Keys   []query.Key
	Origin string
}

type Handler func(ctx context.Context, inv Invalidation)

// Bus fans invalidations out to local subscribers and, when a Redis client
// is set, to every other instance through a stream.
type Bus struct {
	client *redis.Client
	stream string
	origin string
	log    zerolog.Logger

	mu       sync.RWMutex
	handlers []Handler
}

func NewBus(client *redis.Client, stream, origin string, log zerolog.Logger) *Bus {
	return &Bus{
		client: client,
		stream: stream,
		origin: origin,
		log:    log,
	}
}

func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	b.handlers = append(b.handlers, h)
	b.mu.Unlock()
}

// Publish delivers locally first. A stream write failure is returned but
// local subscribers have already seen the event.
func (b *Bus) Publish(ctx context.Context, keys ...query.Key) error {
	if len(keys) == 0 {
		return nil
	}
	inv := Invalidation{Keys: keys, Origin: b.origin}
	b.dispatch(ctx, inv)

	if b.client == nil {
		return nil
	}
	raw, err := encodeKeys(keys)
	if err != nil {
		return err
	}
	err = b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]any{"origin": b.origin, "keys": raw},
	}).Err()
	if err != nil {
		b.log.Warn().Err(err).Str("stream", b.stream).Msg("publish invalidation failed")
		return fmt.Errorf("xadd %s: %w", b.stream, err)
	}
	return nil
}

// Handle applies an invalidation read from the stream. Events this
// instance published were already delivered locally and are skipped.
func (b *Bus) Handle(ctx context.Context, msg redis.XMessage) error {
	origin, _ := msg.Values["origin"].(string)
	if origin == b.origin {
		return nil
	}
	raw, _ := msg.Values["keys"].(string)
	keys, err := decodeKeys(raw)
	if err != nil {
		return fmt.Errorf("decode keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	b.dispatch(ctx, Invalidation{Keys: keys, Origin: origin})
	return nil
}

func (b *Bus) dispatch(ctx context.Context, inv Invalidation) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, inv)
	}
}

func encodeKeys(keys []query.Key) (string, error) {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.String())
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeKeys(raw string) ([]query.Key, error) {
	if raw == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	keys := make([]query.Key, 0, len(list))
	for _, s := range list {
		if k := query.ParseKey(s); len(k) > 0 {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
