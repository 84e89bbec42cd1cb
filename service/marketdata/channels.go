package marketdata

import (
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/metrics"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/fix"
)

// Channels is a Listener that buffers events for a consumer on another goroutine. When a channel
// is full the event is dropped.
type Channels struct {
	Logon     chan string
	Logout    chan string
	Tick      chan domain.Tick
	Rejection chan domain.MarketDataEvent
}

// NewChannels creates channels buffering n events each
func NewChannels(n int) *Channels {
	return &Channels{
		Logon:     make(chan string, n),
		Logout:    make(chan string, n),
		Tick:      make(chan domain.Tick, n),
		Rejection: make(chan domain.MarketDataEvent, n),
	}
}

func (c *Channels) LogonArrived(provider string) {
	fix.Offer(c.Logon, provider, provider, fix.MarketDataService, metrics.EventLogon)
}

func (c *Channels) LogoutArrived(provider string) {
	fix.Offer(c.Logout, provider, provider, fix.MarketDataService, metrics.EventLogout)
}

func (c *Channels) TickArrived(tick domain.Tick) {
	fix.Offer(c.Tick, tick, tick.Provider, fix.MarketDataService, metrics.EventTick)
}

func (c *Channels) MarketDataRejectionArrived(evt domain.MarketDataEvent) {
	fix.Offer(c.Rejection, evt, evt.Provider, fix.MarketDataService, metrics.EventMarketDataReject)
}
