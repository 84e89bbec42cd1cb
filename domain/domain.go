// Package domain is the provider-agnostic trading model exchanged with trading logic.
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Forexware is the provider name stamped on every event raised by the adapters.
const Forexware = "Forexware"

// Security identifies an instrument by symbol.
type Security struct {
	Symbol string
}

func (s Security) String() string {
	return s.Symbol
}

// Side is the direction of an order or fill.
type Side int

const (
	// Buy side
	Buy Side = iota + 1
	// Sell side
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// TimeInForce is how long a resting order stays working.
type TimeInForce int

const (
	// Day orders expire at the end of the trading day.
	Day TimeInForce = iota
	// GTC orders rest until cancelled.
	GTC
	// IOC orders fill what they can immediately and cancel the rest.
	IOC
	// FOK orders fill completely and immediately or not at all.
	FOK
)

func (t TimeInForce) String() string {
	switch t {
	case Day:
		return "DAY"
	case GTC:
		return "GTC"
	case IOC:
		return "IOC"
	case FOK:
		return "FOK"
	}
	return fmt.Sprintf("TimeInForce(%d)", int(t))
}

// Tick is a single market data update. At most one of the bid and ask sides is populated.
type Tick struct {
	Security Security
	Provider string
	Time     time.Time
	BidPrice decimal.NullDecimal
	BidSize  decimal.NullDecimal
	AskPrice decimal.NullDecimal
	AskSize  decimal.NullDecimal
}

// NewTick creates a tick with no side populated.
func NewTick(security Security, provider string, t time.Time) Tick {
	return Tick{Security: security, Provider: provider, Time: t}
}

// SetBid populates the bid side.
func (t *Tick) SetBid(price, size decimal.Decimal) {
	t.BidPrice = decimal.NewNullDecimal(price)
	t.BidSize = decimal.NewNullDecimal(size)
}

// SetAsk populates the ask side.
func (t *Tick) SetAsk(price, size decimal.Decimal) {
	t.AskPrice = decimal.NewNullDecimal(price)
	t.AskSize = decimal.NewNullDecimal(size)
}

// HasBid reports whether the bid side is populated.
func (t Tick) HasBid() bool {
	return t.BidPrice.Valid
}

// HasAsk reports whether the ask side is populated.
func (t Tick) HasAsk() bool {
	return t.AskPrice.Valid
}

// Subscribe asks for a tick stream on a security.
type Subscribe struct {
	ID       string
	Security Security
}

// Unsubscribe cancels a previous Subscribe with the same ID.
type Unsubscribe struct {
	ID       string
	Security Security
}

// MarketDataEvent is raised when the venue rejects a market data request.
type MarketDataEvent struct {
	Security  Security
	Provider  string
	RequestID string
	Reason    string
	Text      string
}

// Rejection is raised when the venue refuses an order or a cancel. Reason carries the raw
// OrdRejReason or CxlRejReason value.
type Rejection struct {
	Security Security
	Provider string
	Time     time.Time
	OrderID  string
	Reason   string
}
