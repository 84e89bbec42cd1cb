package fix

import (
	"fmt"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/metrics"

	"go.uber.org/zap"

	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/tag"
)

type routeKey struct {
	beginString string
	msgType     string
}

// Router dispatches inbound messages by type to one handler each. Message types without a route
// are dropped silently. A failing or panicking handler is logged and counted, its message is
// dropped and nothing is reported back to the engine.
type Router struct {
	*quickfix.MessageRouter

	provider string
	service  string
	logger   *zap.Logger
	routes   map[routeKey]struct{}
}

// NewRouter creates an empty router
func NewRouter(provider string, service ServiceType, logger *zap.Logger) *Router {
	return &Router{
		MessageRouter: quickfix.NewMessageRouter(),
		provider:      provider,
		service:       service.String(),
		logger:        logger,
		routes:        make(map[routeKey]struct{}),
	}
}

// AddRoute registers a handler. Routes must be added before the engine starts.
func (r *Router) AddRoute(beginString, msgType string, route quickfix.MessageRoute) {
	r.routes[routeKey{beginString, msgType}] = struct{}{}
	r.MessageRouter.AddRoute(beginString, msgType, route)
}

// Handles reports whether a route exists for the message type
func (r *Router) Handles(beginString, msgType string) bool {
	_, ok := r.routes[routeKey{beginString, msgType}]
	return ok
}

// Dispatch routes msg to its handler
func (r *Router) Dispatch(msg *quickfix.Message, sID quickfix.SessionID) {
	beginString, err := msg.Header.GetString(tag.BeginString)
	if err != nil {
		return
	}
	msgType, err := msg.Header.GetString(tag.MsgType)
	if err != nil {
		return
	}
	if !r.Handles(beginString, msgType) {
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.failed(msgType, sID, fmt.Errorf("handler panic: %v", rec))
		}
	}()

	metrics.MessagesDispatched.WithLabelValues(r.provider, r.service, msgType).Inc()
	if rej := r.Route(msg, sID); rej != nil {
		r.failed(msgType, sID, rej)
	}
}

func (r *Router) failed(msgType string, sID quickfix.SessionID, err error) {
	metrics.DecodeFailures.WithLabelValues(r.provider, r.service, msgType).Inc()
	r.logger.Error("dropped message", zap.String("MsgType", msgType), zap.String("SessionID", sID.String()), zap.Error(err))
}
