// Package convert builds FIX 4.4 messages out of domain requests and decodes FIX 4.4
// messages from Forexware into domain events.
package convert

import (
	"errors"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/symbol"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/tag"
	"github.com/shopspring/decimal"
)

// ErrUnsupportedOrderKind is returned when an order carries a kind the encoder does not know.
var ErrUnsupportedOrderKind = errors.New("unsupported order kind")

// ErrUnknownSide is returned when a domain side has no FIX equivalent.
var ErrUnknownSide = errors.New("unknown side")

// SideToFIX converts a domain side
func SideToFIX(side domain.Side) (enum.Side, error) {
	switch side {
	case domain.Buy:
		return enum.Side_BUY, nil
	case domain.Sell:
		return enum.Side_SELL, nil
	}
	return "", ErrUnknownSide
}

// SideFromFIX converts a FIX side. Only buy and sell are traded on Forexware.
func SideFromFIX(side enum.Side) (domain.Side, quickfix.MessageRejectError) {
	switch side {
	case enum.Side_BUY:
		return domain.Buy, nil
	case enum.Side_SELL:
		return domain.Sell, nil
	}
	return 0, quickfix.ValueIsIncorrect(tag.Side)
}

// TimeInForceToFIX converts a domain time in force
func TimeInForceToFIX(tif domain.TimeInForce) enum.TimeInForce {
	switch tif {
	case domain.GTC:
		return enum.TimeInForce_GOOD_TILL_CANCEL
	case domain.IOC:
		return enum.TimeInForce_IMMEDIATE_OR_CANCEL
	case domain.FOK:
		return enum.TimeInForce_FILL_OR_KILL
	}
	return enum.TimeInForce_DAY
}

// TimeInForceFromFIX converts a FIX time in force, defaulting to Day.
func TimeInForceFromFIX(tif enum.TimeInForce) domain.TimeInForce {
	switch tif {
	case enum.TimeInForce_GOOD_TILL_CANCEL:
		return domain.GTC
	case enum.TimeInForce_IMMEDIATE_OR_CANCEL:
		return domain.IOC
	case enum.TimeInForce_FILL_OR_KILL:
		return domain.FOK
	}
	return domain.Day
}

// scale is the number of decimal places needed to write d without rounding.
func scale(d decimal.Decimal) int32 {
	if exp := d.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}

func toVenue(symbology symbol.Symbology, sym, counterparty string) string {
	if symbology == nil {
		return sym
	}
	translated, err := symbology.ToForexware(sym, counterparty)
	if err != nil {
		return sym
	}
	return translated
}

func fromVenue(symbology symbol.Symbology, sym, counterparty string) string {
	if symbology == nil {
		return sym
	}
	translated, err := symbology.FromForexware(sym, counterparty)
	if err != nil {
		return sym
	}
	return translated
}
