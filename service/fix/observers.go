package fix

import (
	"sync"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/log"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/metrics"

	"go.uber.org/zap"
)

// Observers is a listener list safe for concurrent registration and delivery. Listeners are
// called in registration order on the caller's goroutine.
type Observers[T any] struct {
	lock sync.RWMutex
	list []T
}

// Add registers a listener
func (o *Observers[T]) Add(l T) {
	o.lock.Lock()
	o.list = append(o.list, l)
	o.lock.Unlock()
}

// Len is the number of registered listeners
func (o *Observers[T]) Len() int {
	o.lock.RLock()
	defer o.lock.RUnlock()
	return len(o.list)
}

// Each calls fn for every listener. The list is copied first so listeners may register others.
func (o *Observers[T]) Each(fn func(T)) {
	o.lock.RLock()
	list := make([]T, len(o.list))
	copy(list, o.list)
	o.lock.RUnlock()
	for _, l := range list {
		fn(l)
	}
}

// Offer sends v on ch without blocking. A full channel drops v, which is logged and counted.
func Offer[T any](ch chan<- T, v T, provider string, service ServiceType, event string) bool {
	select {
	case ch <- v:
		return true
	default:
		metrics.EventsDropped.WithLabelValues(provider, service.String(), event).Inc()
		log.Logger.Warn("listener channel full, event dropped",
			zap.String("provider", provider), zap.String("service", service.String()), zap.String("event", event))
		return false
	}
}
