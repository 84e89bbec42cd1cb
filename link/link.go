// Package link pairs the market data and order routing adapters of one Forexware account.
package link

import (
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/log"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/fix"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/marketdata"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/orders"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/symbol"

	"github.com/quickfixgo/quickfix"
	"go.uber.org/zap"
)

// Link owns both sessions. Either adapter may be used on its own once established.
type Link struct {
	MarketData *marketdata.Adapter
	Orders     *orders.Adapter

	logger *zap.Logger
}

// Factories builds the engine of each session
type Factories struct {
	MarketData fix.EngineFactory
	Orders     fix.EngineFactory
}

// InitiatorFactories connects both sessions through quickfix initiators
func InitiatorFactories() Factories {
	return Factories{
		MarketData: fix.NewInitiatorFactory(fix.MarketDataService),
		Orders:     fix.NewInitiatorFactory(fix.OrderRoutingService),
	}
}

// NewLink creates both adapters, stopped
func NewLink(md, ord *quickfix.Settings, symbology symbol.Symbology, f Factories) *Link {
	return &Link{
		MarketData: marketdata.New(md, symbology, f.MarketData),
		Orders:     orders.New(ord, symbology, f.Orders),
		logger:     log.Logger,
	}
}

// Establish starts the market data session, then the order session. If the order session
// fails to start the market data session is stopped again.
func (l *Link) Establish() error {
	if err := l.MarketData.Start(); err != nil {
		l.logger.Error("could not start market data session", zap.Error(err))
		return err
	}
	if err := l.Orders.Start(); err != nil {
		l.logger.Error("could not start order session", zap.Error(err))
		_ = l.MarketData.Stop()
		return err
	}
	return nil
}

// Close stops both sessions and returns the first error
func (l *Link) Close() error {
	err := l.Orders.Stop()
	if mdErr := l.MarketData.Stop(); err == nil {
		err = mdErr
	}
	return err
}
