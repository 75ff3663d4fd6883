package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultBoardEventsStream is the stream board events are appended to.
const DefaultBoardEventsStream = "kaiban:board-events"

// BoardEvent announces a committed operation so other sessions can refresh.
type BoardEvent struct {
	ID             string // stream entry id, set when read back
	Action         string
	ConversationID int64
	BoardID        *int64
	Payload        []byte // JSON-encoded operation result
}

// Publisher announces committed operations.
type Publisher interface {
	Publish(ctx context.Context, event BoardEvent) error
	Close() error
}

type redisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisPublisher appends events to stream, trimming it to roughly maxLen
// entries. A maxLen of zero disables trimming.
func NewRedisPublisher(client *redis.Client, stream string, maxLen int64) Publisher {
	if stream == "" {
		stream = DefaultBoardEventsStream
	}
	return &redisPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

func (p *redisPublisher) Publish(ctx context.Context, event BoardEvent) error {
	fields := map[string]any{
		"action":          event.Action,
		"conversation_id": event.ConversationID,
		"payload":         string(event.Payload),
	}
	if event.BoardID != nil {
		fields["board_id"] = *event.BoardID
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("publish board event: %w", err)
	}

	slog.DebugContext(ctx, "published board event", "stream", p.stream, "entry_id", id, "action", event.Action)
	return nil
}

func (p *redisPublisher) Close() error {
	return p.client.Close()
}

// NopPublisher drops every event. It is used when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BoardEvent) error { return nil }
func (NopPublisher) Close() error                              { return nil }

// EventReader tails the board events stream without a consumer group. Every
// reader sees every event. A non-positive block duration makes Read return
// immediately.
type EventReader struct {
	client *redis.Client
	stream string
	block  time.Duration
	count  int64
}

func NewEventReader(client *redis.Client, stream string, block time.Duration) *EventReader {
	if stream == "" {
		stream = DefaultBoardEventsStream
	}
	return &EventReader{client: client, stream: stream, block: block, count: 100}
}

// Read returns events after lastID. Use "0" for the whole stream and "$" for
// only new events. An empty slice means the block timeout elapsed.
func (r *EventReader) Read(ctx context.Context, lastID string) ([]BoardEvent, error) {
	block := r.block
	if block <= 0 {
		block = -1 // no BLOCK argument; zero would wait forever
	}

	streams, err := r.client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{r.stream, lastID},
		Count:   r.count,
		Block:   block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []BoardEvent{}, nil
		}
		return nil, fmt.Errorf("reading from stream: %w", err)
	}

	var events []BoardEvent
	for _, stream := range streams {
		for _, msg := range stream.Messages {
			event, parseErr := ParseBoardEvent(msg)
			if parseErr != nil {
				slog.WarnContext(ctx, "skipping malformed board event",
					"error", parseErr,
					"entry_id", msg.ID,
					"stream", r.stream)
				continue
			}
			events = append(events, event)
		}
	}
	return events, nil
}

// ParseBoardEvent decodes one stream entry.
func ParseBoardEvent(msg redis.XMessage) (BoardEvent, error) {
	event := BoardEvent{ID: msg.ID}

	action, ok := msg.Values["action"].(string)
	if !ok || action == "" {
		return event, fmt.Errorf("missing action")
	}
	event.Action = action

	convID, err := parseInt64(msg.Values["conversation_id"])
	if err != nil {
		return event, fmt.Errorf("conversation_id: %w", err)
	}
	event.ConversationID = convID

	if raw, ok := msg.Values["board_id"]; ok {
		boardID, err := parseInt64(raw)
		if err != nil {
			return event, fmt.Errorf("board_id: %w", err)
		}
		event.BoardID = &boardID
	}

	if payload, ok := msg.Values["payload"].(string); ok {
		event.Payload = []byte(payload)
	}
	return event, nil
}

func parseInt64(v any) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected type %T", v)
	}
	return strconv.ParseInt(s, 10, 64)
}
