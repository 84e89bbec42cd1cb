package orders

import (
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/metrics"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/fix"
)

// Channels is a Listener that buffers events for a consumer on another goroutine. When a channel
// is full the event is dropped.
type Channels struct {
	Logon          chan string
	Logout         chan string
	New            chan domain.Order
	Cancellation   chan domain.Order
	Execution      chan domain.Execution
	Rejection      chan domain.Rejection
	OrderRejection chan domain.Rejection
}

// NewChannels creates channels buffering n events each
func NewChannels(n int) *Channels {
	return &Channels{
		Logon:          make(chan string, n),
		Logout:         make(chan string, n),
		New:            make(chan domain.Order, n),
		Cancellation:   make(chan domain.Order, n),
		Execution:      make(chan domain.Execution, n),
		Rejection:      make(chan domain.Rejection, n),
		OrderRejection: make(chan domain.Rejection, n),
	}
}

func (c *Channels) LogonArrived(provider string) {
	fix.Offer(c.Logon, provider, provider, fix.OrderRoutingService, metrics.EventLogon)
}

func (c *Channels) LogoutArrived(provider string) {
	fix.Offer(c.Logout, provider, provider, fix.OrderRoutingService, metrics.EventLogout)
}

func (c *Channels) NewArrived(order domain.Order) {
	fix.Offer(c.New, order, order.Provider, fix.OrderRoutingService, metrics.EventNew)
}

func (c *Channels) CancellationArrived(order domain.Order) {
	fix.Offer(c.Cancellation, order, order.Provider, fix.OrderRoutingService, metrics.EventCancellation)
}

func (c *Channels) ExecutionArrived(exec domain.Execution) {
	fix.Offer(c.Execution, exec, exec.Fill.Provider, fix.OrderRoutingService, metrics.EventExecution)
}

func (c *Channels) RejectionArrived(rejection domain.Rejection) {
	fix.Offer(c.Rejection, rejection, rejection.Provider, fix.OrderRoutingService, metrics.EventRejection)
}

func (c *Channels) OrderRejectionArrived(rejection domain.Rejection) {
	fix.Offer(c.OrderRejection, rejection, rejection.Provider, fix.OrderRoutingService, metrics.EventOrderRejection)
}
