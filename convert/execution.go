package convert

import (
	"time"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/symbol"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"

	er "github.com/quickfixgo/fix44/executionreport"
	ocj "github.com/quickfixgo/fix44/ordercancelreject"
)

// OrderFromFIX44ExecutionReport rebuilds the order a report refers to. A NEW report is keyed by
// ClOrdID, anything else by OrigClOrdID since ClOrdID then names the cancel request.
func OrderFromFIX44ExecutionReport(msg er.ExecutionReport, provider string, symbology symbol.Symbology, counterparty string) (domain.Order, quickfix.MessageRejectError) {
	execType, err := msg.GetExecType()
	if err != nil {
		return domain.Order{}, err
	}
	var id string
	if execType == enum.ExecType_NEW {
		id, err = msg.GetClOrdID()
	} else {
		id, err = msg.GetOrigClOrdID()
	}
	if err != nil {
		return domain.Order{}, err
	}
	return orderFromFIX44ExecutionReport(msg, id, provider, symbology, counterparty)
}

func orderFromFIX44ExecutionReport(msg er.ExecutionReport, id, provider string, symbology symbol.Symbology, counterparty string) (domain.Order, quickfix.MessageRejectError) {
	o := domain.Order{ID: id, Provider: provider}

	fixSide, err := msg.GetSide()
	if err != nil {
		return o, err
	}
	if o.Side, err = SideFromFIX(fixSide); err != nil {
		return o, err
	}
	sym, err := msg.GetSymbol()
	if err != nil {
		return o, err
	}
	o.Security = domain.Security{Symbol: fromVenue(symbology, sym, counterparty)}
	if msg.HasOrderQty() {
		if o.Size, err = msg.GetOrderQty(); err != nil {
			return o, err
		}
	}
	if o.Time, err = reportTime(msg); err != nil {
		return o, err
	}
	if o.Kind, err = orderKindFromFIX44(msg); err != nil {
		return o, err
	}
	return o, nil
}

func orderKindFromFIX44(msg er.ExecutionReport) (domain.OrderKind, quickfix.MessageRejectError) {
	if !msg.HasOrdType() {
		return domain.Market{}, nil
	}
	ordType, err := msg.GetOrdType()
	if err != nil {
		return nil, err
	}
	tif := domain.Day
	if msg.HasTimeInForce() {
		fixTif, err := msg.GetTimeInForce()
		if err != nil {
			return nil, err
		}
		tif = TimeInForceFromFIX(fixTif)
	}
	switch {
	case ordType == enum.OrdType_LIMIT && msg.HasPrice():
		px, err := msg.GetPrice()
		if err != nil {
			return nil, err
		}
		return domain.Limit{Price: px, TimeInForce: tif}, nil
	case ordType == enum.OrdType_STOP && msg.HasStopPx():
		px, err := msg.GetStopPx()
		if err != nil {
			return nil, err
		}
		return domain.Stop{StopPrice: px, TimeInForce: tif}, nil
	}
	return domain.Market{}, nil
}

// ExecutionFromFIX44ExecutionReport decodes a TRADE report. The fill size is the quantity done
// by this report alone, CumQty less LeavesQty.
func ExecutionFromFIX44ExecutionReport(msg er.ExecutionReport, provider string, symbology symbol.Symbology, counterparty string) (domain.Execution, quickfix.MessageRejectError) {
	var exec domain.Execution

	clOrdID, err := msg.GetClOrdID()
	if err != nil {
		return exec, err
	}
	if exec.Order, err = orderFromFIX44ExecutionReport(msg, clOrdID, provider, symbology, counterparty); err != nil {
		return exec, err
	}

	fill := domain.FillDetail{
		OrderID:  clOrdID,
		Security: exec.Order.Security,
		Provider: provider,
		Side:     exec.Order.Side,
		Time:     exec.Order.Time,
		Type:     domain.Partial,
	}
	if fill.ExecutionID, err = msg.GetExecID(); err != nil {
		return exec, err
	}
	status, err := msg.GetOrdStatus()
	if err != nil {
		return exec, err
	}
	if status == enum.OrdStatus_FILLED {
		fill.Type = domain.Fill
	}
	if fill.AveragePrice, err = msg.GetAvgPx(); err != nil {
		return exec, err
	}
	fill.Price = fill.AveragePrice
	if fill.CumQty, err = msg.GetCumQty(); err != nil {
		return exec, err
	}
	if fill.LeavesQty, err = msg.GetLeavesQty(); err != nil {
		return exec, err
	}
	fill.Size = fill.CumQty.Sub(fill.LeavesQty)

	exec.Fill = fill
	return exec, nil
}

// RejectionFromFIX44ExecutionReport decodes a REJECTED report, keyed by the broker's OrderID.
func RejectionFromFIX44ExecutionReport(msg er.ExecutionReport, provider string, symbology symbol.Symbology, counterparty string) (domain.Rejection, quickfix.MessageRejectError) {
	r := domain.Rejection{Provider: provider}
	sym, err := msg.GetSymbol()
	if err != nil {
		return r, err
	}
	r.Security = domain.Security{Symbol: fromVenue(symbology, sym, counterparty)}
	if r.Time, err = reportTime(msg); err != nil {
		return r, err
	}
	if r.OrderID, err = msg.GetOrderID(); err != nil {
		return r, err
	}
	if msg.HasOrdRejReason() {
		reason, err := msg.GetOrdRejReason()
		if err != nil {
			return r, err
		}
		r.Reason = string(reason)
	}
	return r, nil
}

// RejectionFromFIX44OrderCancelReject decodes a cancel reject, keyed by OrigClOrdID. The reject
// names no symbol.
func RejectionFromFIX44OrderCancelReject(msg ocj.OrderCancelReject, provider string) (domain.Rejection, quickfix.MessageRejectError) {
	r := domain.Rejection{Provider: provider}
	var err quickfix.MessageRejectError
	if r.OrderID, err = msg.GetOrigClOrdID(); err != nil {
		return r, err
	}
	if msg.HasCxlRejReason() {
		reason, err := msg.GetCxlRejReason()
		if err != nil {
			return r, err
		}
		r.Reason = string(reason)
	}
	if msg.HasTransactTime() {
		if r.Time, err = msg.GetTransactTime(); err != nil {
			return r, err
		}
	} else if msg.Header.HasSendingTime() {
		if r.Time, err = msg.Header.GetSendingTime(); err != nil {
			return r, err
		}
	}
	return r, nil
}

// reportTime prefers TransactTime and falls back to SendingTime.
func reportTime(msg er.ExecutionReport) (time.Time, quickfix.MessageRejectError) {
	if msg.HasTransactTime() {
		return msg.GetTransactTime()
	}
	if msg.Header.HasSendingTime() {
		return msg.Header.GetSendingTime()
	}
	return time.Time{}, nil
}
