package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashgraph-online/desktop-bridge/internal/domain/event"
	"github.com/hashgraph-online/desktop-bridge/internal/errkind"
	"github.com/hashgraph-online/desktop-bridge/internal/metrics"
	"github.com/hashgraph-online/desktop-bridge/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// HandlerFunc processes one decoded bridge request and returns the reply
// payload. A returned error becomes a {success:false, error} reply; it
// never crosses the transport as a panic.
type HandlerFunc func(ctx context.Context, req event.BridgeRequest) (json.RawMessage, error)

// Channel turns the fire-and-forget Transport into request/reply pairs.
// Correlation is purely by reply-channel name: each request gets its own
// uniquely named reply event, so concurrent requests on one event name
// cannot observe each other's replies. The channel enforces no timeout of
// its own; timeout policy belongs to the caller of Request.
type Channel struct {
	transport Transport
	logger    *slog.Logger
}

func NewChannel(transport Transport, logger *slog.Logger) *Channel {
	return &Channel{
		transport: transport,
		logger:    logger.With("component", "bridge_channel"),
	}
}

// RegisterHandler subscribes handler to eventName and returns an unregister
// func. When the transport is unavailable (non-privileged context) this is
// a silent no-op: degraded mode, not a crash.
func (c *Channel) RegisterHandler(eventName string, handler HandlerFunc) func() {
	if c.transport == nil {
		c.logger.Debug("transport unavailable, handler not registered", "event", eventName)
		return func() {}
	}

	unsubscribe, err := c.transport.Subscribe(eventName, func(payload []byte) {
		c.dispatch(eventName, handler, payload)
	})
	if err != nil {
		c.logger.Warn("subscribe failed, handler not registered", "event", eventName, "error", err)
		return func() {}
	}
	return unsubscribe
}

func (c *Channel) dispatch(eventName string, handler HandlerFunc, payload []byte) {
	var req event.BridgeRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		c.logger.Warn("malformed bridge request dropped", "event", eventName, "error", err)
		metrics.BridgeHandlerInvocations.WithLabelValues(eventName, "malformed").Inc()
		return
	}

	ctx := context.Background()
	data, err := handler(ctx, req)

	reply := event.BridgeReply{Success: err == nil, Data: data}
	status := "ok"
	if err != nil {
		reply.Error = err.Error()
		status = "error"
	}
	metrics.BridgeHandlerInvocations.WithLabelValues(eventName, status).Inc()

	if sendErr := c.Reply(ctx, eventName, req.RequestID, reply); sendErr != nil {
		c.logger.Error("bridge reply failed", "event", eventName, "request_id", req.RequestID, "error", sendErr)
	}
}

// Reply publishes a reply envelope on the uniquely named reply channel for
// one request. Exactly one reply must be sent per request.
func (c *Channel) Reply(ctx context.Context, eventName, requestID string, reply event.BridgeReply) error {
	if c.transport == nil {
		return errkind.New(errkind.KindMissingCredentials, "bridge transport is not ready")
	}
	payload, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}
	return c.transport.Publish(ctx, event.ReplyEvent(eventName, requestID), payload)
}

// Request sends a correlated request and waits for its reply, the caller's
// timeout, or ctx cancellation, whichever comes first. A late reply after
// timeout is discarded, never delivered to a finished caller.
func (c *Channel) Request(ctx context.Context, eventName string, request any, network string, timeout time.Duration) (json.RawMessage, error) {
	if c.transport == nil {
		return nil, errkind.New(errkind.KindMissingCredentials, "bridge transport is not ready")
	}

	ctx, span := tracing.Tracer("bridge").Start(ctx, "bridge.request")
	span.SetAttributes(attribute.String("bridge.event", eventName), attribute.String("bridge.network", network))
	defer span.End()

	rawRequest, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	requestID := uuid.NewString()
	replyCh := make(chan event.BridgeReply, 1)

	unsubscribe, err := c.transport.Subscribe(event.ReplyEvent(eventName, requestID), func(payload []byte) {
		var reply event.BridgeReply
		if err := json.Unmarshal(payload, &reply); err != nil {
			reply = event.BridgeReply{Success: false, Error: "malformed wallet reply payload"}
		}
		select {
		case replyCh <- reply:
		default:
		}
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe reply channel: %w", err)
	}
	defer unsubscribe()

	envelope := event.BridgeRequest{
		RequestID: requestID,
		Request:   rawRequest,
		Network:   network,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	start := time.Now()
	if err := c.transport.Publish(ctx, eventName, payload); err != nil {
		metrics.BridgeRequestsTotal.WithLabelValues(eventName, "publish_error").Inc()
		return nil, fmt.Errorf("publish %s: %w", eventName, err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case reply := <-replyCh:
		metrics.BridgeRequestLatency.WithLabelValues(eventName).Observe(time.Since(start).Seconds())
		if !reply.Success {
			metrics.BridgeRequestsTotal.WithLabelValues(eventName, "error").Inc()
			msg := reply.Error
			if msg == "" {
				msg = "unknown wallet error"
			}
			return nil, fmt.Errorf("%s", msg)
		}
		metrics.BridgeRequestsTotal.WithLabelValues(eventName, "ok").Inc()
		return NormalizeBinary(reply.Data), nil
	case <-timer.C:
		metrics.BridgeRequestsTotal.WithLabelValues(eventName, "timeout").Inc()
		return nil, errkind.New(errkind.KindTimeout, fmt.Sprintf("bridge request %s timed out after %s", eventName, timeout))
	case <-ctx.Done():
		metrics.BridgeRequestsTotal.WithLabelValues(eventName, "cancelled").Inc()
		return nil, ctx.Err()
	}
}
