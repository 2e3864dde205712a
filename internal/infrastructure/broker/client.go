package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultRequestTimeout = 10 * time.Second

// Client issues pattern-keyed requests to a service queue and awaits the
// correlated reply.
type Client struct {
	rdb     *redis.Client
	queue   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewClient creates a Client for the given service queue. If timeout is
// not positive, defaultRequestTimeout is used.
func NewClient(rdb *redis.Client, queue string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{rdb: rdb, queue: queue, timeout: timeout, log: log}
}

// Request sends payload under the given pattern and blocks until the
// correlated reply arrives or the timeout elapses. A handler failure on
// the remote side is returned as *RemoteError; an elapsed timeout as
// ErrTimeout. On success the reply body is returned verbatim.
func (c *Client) Request(ctx context.Context, pattern Pattern, payload any) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request payload: %w", err)
	}

	correlationID := uuid.NewString()
	replyTo := replyKey(c.queue, correlationID)

	env, err := json.Marshal(request{
		Pattern:       pattern,
		CorrelationID: correlationID,
		ReplyTo:       replyTo,
		Data:          data,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request envelope: %w", err)
	}

	if err := c.rdb.LPush(ctx, c.queue, env).Err(); err != nil {
		return nil, fmt.Errorf("publish request: %w", err)
	}

	// Each in-flight request blocks on its own reply list, so concurrent
	// callers on the same queue cannot receive each other's replies.
	res, err := c.rdb.BRPop(ctx, c.timeout, replyTo).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.log.Warn().
				Str("pattern", string(pattern)).
				Str("correlation_id", correlationID).
				Dur("timeout", c.timeout).
				Msg("broker request timed out")
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("await reply: %w", err)
	}

	// BRPop returns [key, value].
	var rep reply
	if err := json.Unmarshal([]byte(res[1]), &rep); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if rep.Error != nil {
		return nil, rep.Error
	}
	return rep.Data, nil
}
