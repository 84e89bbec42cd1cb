package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind is the variant-specific part of an Order. It is implemented only by Market, Limit
// and Stop.
type OrderKind interface {
	orderKind()
}

// Market orders carry no price.
type Market struct{}

// Limit orders rest at Price.
type Limit struct {
	Price       decimal.Decimal
	TimeInForce TimeInForce
}

// Stop orders trigger at StopPrice.
type Stop struct {
	StopPrice   decimal.Decimal
	TimeInForce TimeInForce
}

func (Market) orderKind() {}
func (Limit) orderKind()  {}
func (Stop) orderKind()   {}

// Order is identified by the ID its originator assigned.
type Order struct {
	ID       string
	Side     Side
	Size     decimal.Decimal
	Security Security
	Provider string
	Time     time.Time
	Kind     OrderKind
}

// NewMarketOrder creates a market order stamped with the current time.
func NewMarketOrder(id string, side Side, size decimal.Decimal, security Security, provider string) Order {
	return Order{ID: id, Side: side, Size: size, Security: security, Provider: provider, Time: time.Now(), Kind: Market{}}
}

// NewLimitOrder creates a limit order stamped with the current time.
func NewLimitOrder(id string, side Side, size, price decimal.Decimal, tif TimeInForce, security Security, provider string) Order {
	return Order{ID: id, Side: side, Size: size, Security: security, Provider: provider, Time: time.Now(),
		Kind: Limit{Price: price, TimeInForce: tif}}
}

// NewStopOrder creates a stop order stamped with the current time.
func NewStopOrder(id string, side Side, size, stopPrice decimal.Decimal, tif TimeInForce, security Security, provider string) Order {
	return Order{ID: id, Side: side, Size: size, Security: security, Provider: provider, Time: time.Now(),
		Kind: Stop{StopPrice: stopPrice, TimeInForce: tif}}
}

func (o Order) String() string {
	return fmt.Sprintf("Order{ID: %s, Side: %s, Size: %s, Security: %s, Kind: %T}", o.ID, o.Side, o.Size, o.Security, o.Kind)
}

// ExecutionType tells whether a fill completed the order.
type ExecutionType int

const (
	// Partial fills leave quantity working.
	Partial ExecutionType = iota
	// Fill completes the order.
	Fill
)

func (e ExecutionType) String() string {
	if e == Fill {
		return "Fill"
	}
	return "Partial"
}

// FillDetail is the trade-specific part of an Execution. Size is the quantity filled by this
// report alone.
type FillDetail struct {
	ExecutionID  string
	OrderID      string
	Security     Security
	Provider     string
	Type         ExecutionType
	Side         Side
	Price        decimal.Decimal
	AveragePrice decimal.Decimal
	Size         decimal.Decimal
	LeavesQty    decimal.Decimal
	CumQty       decimal.Decimal
	Time         time.Time
}

// Execution pairs a fill with a snapshot of the order it belongs to.
type Execution struct {
	Fill  FillDetail
	Order Order
}
