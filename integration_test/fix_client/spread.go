package main

import (
	"log"
	"sync"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"

	"github.com/shopspring/decimal"
)

type entry struct {
	Price, Volume decimal.Decimal
}

type spread struct {
	Bid, Ask *entry
}

func (s *spread) String() string {
	return "Spread: " + s.Ask.Price.Sub(s.Bid.Price).String() +
		", Bid: " + s.Bid.Price.String() + " x " + s.Bid.Volume.String() +
		", Ask: " + s.Ask.Price.String() + " x " + s.Ask.Volume.String()
}

// book keeps the last bid and ask of every symbol and prints the spread on each tick
type book struct {
	lock    sync.Mutex
	spreads map[string]*spread
}

func newBook() *book {
	return &book{spreads: make(map[string]*spread)}
}

// update applies a tick and reports the symbol's spread once both sides are known
func (b *book) update(t domain.Tick) (*spread, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	s, ok := b.spreads[t.Security.Symbol]
	if !ok {
		s = &spread{}
		b.spreads[t.Security.Symbol] = s
	}
	if t.HasBid() {
		s.Bid = &entry{Price: t.BidPrice.Decimal, Volume: t.BidSize.Decimal}
	}
	if t.HasAsk() {
		s.Ask = &entry{Price: t.AskPrice.Decimal, Volume: t.AskSize.Decimal}
	}
	if s.Bid == nil || s.Ask == nil {
		return nil, false
	}
	cp := *s
	return &cp, true
}

func (b *book) LogonArrived(provider string) {
	log.Printf("[MARKETDATA] logon %s", provider)
}

func (b *book) LogoutArrived(provider string) {
	log.Printf("[MARKETDATA] logout %s", provider)
}

func (b *book) TickArrived(t domain.Tick) {
	if s, ok := b.update(t); ok {
		log.Printf("[MARKETDATA] %s %s", t.Security.Symbol, s)
	}
}

func (b *book) MarketDataRejectionArrived(evt domain.MarketDataEvent) {
	log.Printf("[MARKETDATA] rejected %s: %s %s", evt.RequestID, evt.Reason, evt.Text)
}

// blotter prints order events
type blotter struct{}

func (blotter) LogonArrived(provider string) {
	log.Printf("[ORDER] logon %s", provider)
}

func (blotter) LogoutArrived(provider string) {
	log.Printf("[ORDER] logout %s", provider)
}

func (blotter) NewArrived(o domain.Order) {
	log.Printf("[ORDER] new %s", o)
}

func (blotter) CancellationArrived(o domain.Order) {
	log.Printf("[ORDER] cancelled %s", o)
}

func (blotter) ExecutionArrived(e domain.Execution) {
	log.Printf("[ORDER] %s %s: %s @ %s, cum %s leaves %s", e.Fill.Type, e.Fill.OrderID, e.Fill.Size, e.Fill.Price, e.Fill.CumQty, e.Fill.LeavesQty)
}

func (blotter) RejectionArrived(r domain.Rejection) {
	log.Printf("[ORDER] cancel of %s rejected: %s", r.OrderID, r.Reason)
}

func (blotter) OrderRejectionArrived(r domain.Rejection) {
	log.Printf("[ORDER] %s rejected: %s", r.OrderID, r.Reason)
}
