package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mesafina/restaurant-backend/internal/observability"
)

const (
	defaultWorkers = 4
	popBlock       = 2 * time.Second
	replyTTL       = 30 * time.Second
)

// Handler processes the payload of one inbound message and returns the
// reply body. A returned error becomes an error reply; its status and
// message are derived by the server's ErrorResolver.
type Handler func(ctx context.Context, data json.RawMessage) (any, error)

// ErrorResolver classifies a handler error into a transportable status
// code and client-safe message.
type ErrorResolver func(err error) (status int, message string)

// Server consumes a service queue and dispatches messages to the handler
// registered for their pattern. Multiple Server instances may share one
// queue; each message is delivered to exactly one of them.
type Server struct {
	rdb      *redis.Client
	queue    string
	workers  int
	handlers map[Pattern]Handler
	resolve  ErrorResolver
	log      zerolog.Logger
}

// NewServer creates a Server for queue with numWorkers consumers.
// If numWorkers <= 0, defaultWorkers is used.
func NewServer(rdb *redis.Client, queue string, numWorkers int, resolve ErrorResolver, log zerolog.Logger) *Server {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if resolve == nil {
		resolve = func(error) (int, string) {
			return http.StatusInternalServerError, "internal error"
		}
	}
	return &Server{
		rdb:      rdb,
		queue:    queue,
		workers:  numWorkers,
		handlers: make(map[Pattern]Handler),
		resolve:  resolve,
		log:      log,
	}
}

// Register binds a handler to a pattern. Registering the same pattern
// twice is a wiring bug and is rejected.
func (s *Server) Register(pattern Pattern, h Handler) error {
	if _, dup := s.handlers[pattern]; dup {
		return fmt.Errorf("broker: handler already registered for pattern %q", pattern)
	}
	s.handlers[pattern] = h
	return nil
}

// Registered reports whether a handler is bound to the pattern.
func (s *Server) Registered(pattern Pattern) bool {
	_, ok := s.handlers[pattern]
	return ok
}

// Run launches the consumer workers and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	for i := 0; i < s.workers; i++ {
		go s.runWorker(ctx, i)
	}
	<-ctx.Done()
}

func (s *Server) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := s.rdb.BRPop(ctx, popBlock, s.queue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			s.log.Error().Err(err).Int("worker_id", id).Msg("queue pop failed")
			continue
		}

		s.process(ctx, []byte(res[1]))
	}
}

// process decodes one inbound envelope, dispatches it, and publishes the
// reply. Handlers run under the server's lifecycle context, not the
// caller's: a requester that gives up does not cancel the work already
// in flight, its reply simply expires unread.
func (s *Server) process(ctx context.Context, raw []byte) {
	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		s.log.Error().Err(err).Msg("discarding undecodable message")
		return
	}

	start := time.Now()
	rep := s.dispatch(ctx, req)
	outcome := "ok"
	if rep.Error != nil {
		outcome = "error"
	}
	observability.BrokerRequestsTotal.WithLabelValues(string(req.Pattern), outcome).Inc()
	observability.BrokerRequestDuration.WithLabelValues(string(req.Pattern)).Observe(time.Since(start).Seconds())

	if req.ReplyTo == "" {
		return // fire-and-forget event
	}

	env, err := json.Marshal(rep)
	if err != nil {
		s.log.Error().Err(err).Str("pattern", string(req.Pattern)).Msg("marshal reply failed")
		return
	}

	pipe := s.rdb.Pipeline()
	pipe.LPush(ctx, req.ReplyTo, env)
	pipe.Expire(ctx, req.ReplyTo, replyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Error().Err(err).
			Str("pattern", string(req.Pattern)).
			Str("correlation_id", req.CorrelationID).
			Msg("publish reply failed")
	}
}

// dispatch routes a request to its handler and shapes the reply. An
// unregistered pattern is a loud failure, not a dropped message.
func (s *Server) dispatch(ctx context.Context, req request) reply {
	h, ok := s.handlers[req.Pattern]
	if !ok {
		s.log.Error().
			Str("pattern", string(req.Pattern)).
			Str("correlation_id", req.CorrelationID).
			Msg("no handler registered for pattern")
		return reply{
			CorrelationID: req.CorrelationID,
			Error: &RemoteError{
				Status:  http.StatusInternalServerError,
				Message: fmt.Sprintf("no handler registered for pattern %q", req.Pattern),
			},
		}
	}

	out, err := h(ctx, req.Data)
	if err != nil {
		status, msg := s.resolve(err)
		return reply{
			CorrelationID: req.CorrelationID,
			Error:         &RemoteError{Status: status, Message: msg},
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		s.log.Error().Err(err).Str("pattern", string(req.Pattern)).Msg("marshal handler result failed")
		return reply{
			CorrelationID: req.CorrelationID,
			Error: &RemoteError{
				Status:  http.StatusInternalServerError,
				Message: "internal error",
			},
		}
	}
	return reply{CorrelationID: req.CorrelationID, Data: data}
}
