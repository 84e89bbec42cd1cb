package convert

import (
	"fmt"
	"time"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/symbol"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"

	nos "github.com/quickfixgo/fix44/newordersingle"
	ocr "github.com/quickfixgo/fix44/ordercancelrequest"
)

// FIX44NewOrderSingle builds a new order for a market, limit or stop order. Any other kind is
// refused with ErrUnsupportedOrderKind.
func FIX44NewOrderSingle(o domain.Order, account string, symbology symbol.Symbology, counterparty string) (nos.NewOrderSingle, error) {
	side, err := SideToFIX(o.Side)
	if err != nil {
		return nos.NewOrderSingle{}, err
	}

	var ordType enum.OrdType
	switch o.Kind.(type) {
	case domain.Market:
		ordType = enum.OrdType_MARKET
	case domain.Limit:
		ordType = enum.OrdType_LIMIT
	case domain.Stop:
		ordType = enum.OrdType_STOP
	default:
		return nos.NewOrderSingle{}, ErrUnsupportedOrderKind
	}

	m := nos.New(
		field.NewClOrdID(o.ID),
		field.NewSide(side),
		field.NewTransactTime(o.Time),
		field.NewOrdType(ordType),
	)
	m.SetHandlInst(enum.HandlInst_AUTOMATED_EXECUTION_ORDER_PRIVATE_NO_BROKER_INTERVENTION)
	m.SetSymbol(toVenue(symbology, o.Security.Symbol, counterparty))
	m.SetOrderQty(o.Size, scale(o.Size))
	if account != "" {
		m.SetAccount(account)
	}

	switch k := o.Kind.(type) {
	case domain.Limit:
		m.SetPrice(k.Price, scale(k.Price))
		m.SetTimeInForce(TimeInForceToFIX(k.TimeInForce))
	case domain.Stop:
		m.SetStopPx(k.StopPrice, scale(k.StopPrice))
		m.SetTimeInForce(TimeInForceToFIX(k.TimeInForce))
	}
	return m, nil
}

// CancelClOrdID derives the cancel request's own ClOrdID from a timestamp (yyMMdd, then hour,
// minute and second without padding, then milliseconds). This is the id format the Forexware
// bridge already issues for cancels. It is not unique: two cancels in one millisecond collide, and
// unpadded fields can collide across times (01:11:05 and 11:01:05 both print 1115). Callers that
// send several cancels keep their timestamps strictly increasing.
func CancelClOrdID(now time.Time) string {
	return fmt.Sprintf("%s%d%d%d%03d", now.Format("060102"), now.Hour(), now.Minute(), now.Second(), now.Nanosecond()/int(time.Millisecond))
}

// FIX44OrderCancelRequest builds a cancel for a previously sent order. The order's ID becomes
// OrigClOrdID and the cancel gets its own ClOrdID from now. TransactTime is the order's time.
func FIX44OrderCancelRequest(o domain.Order, account string, now time.Time, symbology symbol.Symbology, counterparty string) (ocr.OrderCancelRequest, error) {
	side, err := SideToFIX(o.Side)
	if err != nil {
		return ocr.OrderCancelRequest{}, err
	}
	transact := o.Time
	if transact.IsZero() {
		transact = now
	}
	m := ocr.New(
		field.NewOrigClOrdID(o.ID),
		field.NewClOrdID(CancelClOrdID(now)),
		field.NewSide(side),
		field.NewTransactTime(transact),
	)
	m.SetSymbol(toVenue(symbology, o.Security.Symbol, counterparty))
	if !o.Size.IsZero() {
		m.SetOrderQty(o.Size, scale(o.Size))
	}
	if account != "" {
		m.SetAccount(account)
	}
	return m, nil
}
