// Package marketdata is the Forexware market data adapter: tick subscriptions in, ticks out.
package marketdata

import (
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/convert"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/metrics"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/fix"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/symbol"

	"go.uber.org/zap"

	mdrr "github.com/quickfixgo/fix44/marketdatarequestreject"
	mdsfr "github.com/quickfixgo/fix44/marketdatasnapshotfullrefresh"
	"github.com/quickfixgo/quickfix"
)

// Listener receives market data events on the engine's callback goroutine. Implementations
// must not block.
type Listener interface {
	fix.LifecycleListener
	TickArrived(tick domain.Tick)
	MarketDataRejectionArrived(evt domain.MarketDataEvent)
}

// Adapter subscribes to Forexware quotes over one FIX 4.4 session
type Adapter struct {
	*fix.Session
	symbol.Symbology

	listeners fix.Observers[Listener]
}

// New creates a stopped adapter. A nil symbology passes symbols through.
func New(s *quickfix.Settings, symbology symbol.Symbology, newEngine fix.EngineFactory) *Adapter {
	if symbology == nil {
		symbology = symbol.NewPassthroughSymbology()
	}
	a := &Adapter{
		Session:   fix.NewSession(domain.Forexware, fix.MarketDataService, s, newEngine),
		Symbology: symbology,
	}
	a.AddRoute(mdsfr.Route(a.OnFIX44MarketDataSnapshotFullRefresh))
	a.AddRoute(mdrr.Route(a.OnFIX44MarketDataRequestReject))
	return a
}

// AddListener registers l for ticks, rejections and lifecycle events
func (a *Adapter) AddListener(l Listener) {
	a.listeners.Add(l)
	a.AddLifecycleListener(l)
}

// SubscribeTickData asks for top of book updates on the request's security
func (a *Adapter) SubscribeTickData(req domain.Subscribe) error {
	if !a.IsConnected() {
		a.Logger().Debug("not connected, subscription not sent", zap.String("MDReqID", req.ID))
		return fix.ErrNotConnected
	}
	m := convert.FIX44SubscribeRequest(req, a.Symbology, a.Settings().TargetCompID)
	if err := a.Send(m); err != nil {
		a.Logger().Error("could not send subscription", zap.String("MDReqID", req.ID), zap.Error(err))
		return err
	}
	a.Logger().Debug("subscription sent", zap.String("MDReqID", req.ID), zap.String("Symbol", req.Security.Symbol))
	return nil
}

// UnsubscribeTickData cancels the subscription with the request's id
func (a *Adapter) UnsubscribeTickData(req domain.Unsubscribe) error {
	if !a.IsConnected() {
		a.Logger().Debug("not connected, unsubscription not sent", zap.String("MDReqID", req.ID))
		return fix.ErrNotConnected
	}
	m := convert.FIX44UnsubscribeRequest(req, a.Symbology, a.Settings().TargetCompID)
	if err := a.Send(m); err != nil {
		a.Logger().Error("could not send unsubscription", zap.String("MDReqID", req.ID), zap.Error(err))
		return err
	}
	a.Logger().Debug("unsubscription sent", zap.String("MDReqID", req.ID), zap.String("Symbol", req.Security.Symbol))
	return nil
}

// OnFIX44MarketDataSnapshotFullRefresh raises one tick per snapshot entry
func (a *Adapter) OnFIX44MarketDataSnapshotFullRefresh(msg mdsfr.MarketDataSnapshotFullRefresh, sID quickfix.SessionID) quickfix.MessageRejectError {
	return convert.TicksFromFIX44Snapshot(msg, a.Provider, a.Symbology, sID.TargetCompID, a.tickArrived)
}

func (a *Adapter) tickArrived(tick domain.Tick) {
	a.Emitted(metrics.EventTick)
	a.listeners.Each(func(l Listener) { l.TickArrived(tick) })
}

// OnFIX44MarketDataRequestReject raises a market data rejection
func (a *Adapter) OnFIX44MarketDataRequestReject(msg mdrr.MarketDataRequestReject, sID quickfix.SessionID) quickfix.MessageRejectError {
	evt, err := convert.MarketDataEventFromFIX44Reject(msg, a.Provider)
	if err != nil {
		return err
	}
	a.Logger().Info("market data request rejected", zap.String("MDReqID", evt.RequestID),
		zap.String("MDReqRejReason", evt.Reason), zap.String("Text", evt.Text))
	a.Emitted(metrics.EventMarketDataReject)
	a.listeners.Each(func(l Listener) { l.MarketDataRejectionArrived(evt) })
	return nil
}
