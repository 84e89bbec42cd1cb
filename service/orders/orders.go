// Package orders is the Forexware order execution adapter: orders and cancels in, order
// events and executions out.
package orders

import (
	"errors"
	"sync"
	"time"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/convert"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/metrics"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/fix"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/symbol"

	"go.uber.org/zap"

	"github.com/quickfixgo/enum"
	er "github.com/quickfixgo/fix44/executionreport"
	ocj "github.com/quickfixgo/fix44/ordercancelreject"
	"github.com/quickfixgo/quickfix"
)

// ErrWrongOrderKind is returned when an order is sent with the command of another kind
var ErrWrongOrderKind = errors.New("wrong order kind for command")

// Listener receives order events on the engine's callback goroutine. Implementations must not
// block.
type Listener interface {
	fix.LifecycleListener
	NewArrived(order domain.Order)
	CancellationArrived(order domain.Order)
	ExecutionArrived(exec domain.Execution)
	RejectionArrived(rejection domain.Rejection)
	OrderRejectionArrived(rejection domain.Rejection)
}

// Adapter routes orders to Forexware over one FIX 4.4 session
type Adapter struct {
	*fix.Session
	symbol.Symbology

	listeners fix.Observers[Listener]
	now       func() time.Time

	cancelLock sync.Mutex
	lastCancel time.Time
}

// New creates a stopped adapter. A nil symbology passes symbols through.
func New(s *quickfix.Settings, symbology symbol.Symbology, newEngine fix.EngineFactory) *Adapter {
	if symbology == nil {
		symbology = symbol.NewPassthroughSymbology()
	}
	a := &Adapter{
		Session:   fix.NewSession(domain.Forexware, fix.OrderRoutingService, s, newEngine),
		Symbology: symbology,
		now:       time.Now,
	}
	a.AddRoute(er.Route(a.OnFIX44ExecutionReport))
	a.AddRoute(ocj.Route(a.OnFIX44OrderCancelReject))
	return a
}

// AddListener registers l for order events and lifecycle events
func (a *Adapter) AddListener(l Listener) {
	a.listeners.Add(l)
	a.AddLifecycleListener(l)
}

// SendMarketOrder sends a market order
func (a *Adapter) SendMarketOrder(o domain.Order) error {
	if _, ok := o.Kind.(domain.Market); !ok {
		return ErrWrongOrderKind
	}
	return a.sendOrder(o)
}

// SendLimitOrder sends a limit order
func (a *Adapter) SendLimitOrder(o domain.Order) error {
	if _, ok := o.Kind.(domain.Limit); !ok {
		return ErrWrongOrderKind
	}
	return a.sendOrder(o)
}

// SendStopOrder sends a stop order
func (a *Adapter) SendStopOrder(o domain.Order) error {
	if _, ok := o.Kind.(domain.Stop); !ok {
		return ErrWrongOrderKind
	}
	return a.sendOrder(o)
}

func (a *Adapter) sendOrder(o domain.Order) error {
	if !a.IsConnected() {
		a.Logger().Debug("not connected, order not sent", zap.String("ClOrdID", o.ID))
		return fix.ErrNotConnected
	}
	cfg := a.Settings()
	m, err := convert.FIX44NewOrderSingle(o, cfg.Account, a.Symbology, cfg.TargetCompID)
	if err != nil {
		a.Logger().Error("could not build order", zap.String("ClOrdID", o.ID), zap.Error(err))
		return err
	}
	if err = a.Send(m); err != nil {
		a.Logger().Error("could not send order", zap.String("ClOrdID", o.ID), zap.Error(err))
		return err
	}
	a.Logger().Debug("order sent", zap.Stringer("order", o))
	return nil
}

// CancelLimitOrder asks Forexware to cancel a working order
func (a *Adapter) CancelLimitOrder(o domain.Order) error {
	if !a.IsConnected() {
		a.Logger().Debug("not connected, cancel not sent", zap.String("OrigClOrdID", o.ID))
		return fix.ErrNotConnected
	}
	cfg := a.Settings()
	m, err := convert.FIX44OrderCancelRequest(o, cfg.Account, a.cancelTime(), a.Symbology, cfg.TargetCompID)
	if err != nil {
		a.Logger().Error("could not build cancel", zap.String("OrigClOrdID", o.ID), zap.Error(err))
		return err
	}
	if err = a.Send(m); err != nil {
		a.Logger().Error("could not send cancel", zap.String("OrigClOrdID", o.ID), zap.Error(err))
		return err
	}
	a.Logger().Debug("cancel sent", zap.Stringer("order", o))
	return nil
}

// cancelTime is now, moved forward to the next millisecond when it would repeat the previous
// cancel's millisecond
func (a *Adapter) cancelTime() time.Time {
	a.cancelLock.Lock()
	defer a.cancelLock.Unlock()
	now := a.now().Truncate(time.Millisecond)
	if !now.After(a.lastCancel) {
		now = a.lastCancel.Add(time.Millisecond)
	}
	a.lastCancel = now
	return now
}

// OnFIX44ExecutionReport raises an event for NEW, CANCELED, REJECTED and TRADE reports. Other
// exec types are ignored.
func (a *Adapter) OnFIX44ExecutionReport(msg er.ExecutionReport, sID quickfix.SessionID) quickfix.MessageRejectError {
	execType, err := msg.GetExecType()
	if err != nil {
		return err
	}
	counterparty := sID.TargetCompID

	switch execType {
	case enum.ExecType_NEW:
		o, err := convert.OrderFromFIX44ExecutionReport(msg, a.Provider, a.Symbology, counterparty)
		if err != nil {
			return err
		}
		a.Logger().Debug("new arrived", zap.Stringer("order", o))
		a.Emitted(metrics.EventNew)
		a.listeners.Each(func(l Listener) { l.NewArrived(o) })

	case enum.ExecType_CANCELED:
		o, err := convert.OrderFromFIX44ExecutionReport(msg, a.Provider, a.Symbology, counterparty)
		if err != nil {
			return err
		}
		a.Logger().Debug("cancellation arrived", zap.Stringer("order", o))
		a.Emitted(metrics.EventCancellation)
		a.listeners.Each(func(l Listener) { l.CancellationArrived(o) })

	case enum.ExecType_REJECTED:
		r, err := convert.RejectionFromFIX44ExecutionReport(msg, a.Provider, a.Symbology, counterparty)
		if err != nil {
			return err
		}
		a.Logger().Info("order rejected", zap.String("OrderID", r.OrderID), zap.String("OrdRejReason", r.Reason))
		a.Emitted(metrics.EventOrderRejection)
		a.listeners.Each(func(l Listener) { l.OrderRejectionArrived(r) })

	case enum.ExecType_TRADE:
		exec, err := convert.ExecutionFromFIX44ExecutionReport(msg, a.Provider, a.Symbology, counterparty)
		if err != nil {
			return err
		}
		a.Logger().Debug("trade arrived", zap.String("ExecID", exec.Fill.ExecutionID), zap.String("ClOrdID", exec.Fill.OrderID),
			zap.Stringer("size", exec.Fill.Size), zap.Stringer("px", exec.Fill.Price))
		a.Emitted(metrics.EventExecution)
		a.listeners.Each(func(l Listener) { l.ExecutionArrived(exec) })
	}
	return nil
}

// OnFIX44OrderCancelReject raises a rejection for the order the cancel referred to
func (a *Adapter) OnFIX44OrderCancelReject(msg ocj.OrderCancelReject, sID quickfix.SessionID) quickfix.MessageRejectError {
	r, err := convert.RejectionFromFIX44OrderCancelReject(msg, a.Provider)
	if err != nil {
		return err
	}
	a.Logger().Info("cancel rejected", zap.String("OrigClOrdID", r.OrderID), zap.String("CxlRejReason", r.Reason))
	a.Emitted(metrics.EventRejection)
	a.listeners.Each(func(l Listener) { l.RejectionArrived(r) })
	return nil
}
