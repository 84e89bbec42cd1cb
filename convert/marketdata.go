package convert

import (
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/symbol"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	"github.com/quickfixgo/quickfix"
	"github.com/shopspring/decimal"

	mdr "github.com/quickfixgo/fix44/marketdatarequest"
	mdrr "github.com/quickfixgo/fix44/marketdatarequestreject"
	mdsfr "github.com/quickfixgo/fix44/marketdatasnapshotfullrefresh"
)

// MarketDepth is the book depth requested from Forexware, top of book only.
const MarketDepth = 1

// FIX44MarketDataRequest builds a subscribe or unsubscribe request for one security. Both bid
// and offer entries are always requested.
func FIX44MarketDataRequest(mdReqID string, security domain.Security, subscription enum.SubscriptionRequestType, depth int, symbology symbol.Symbology, counterparty string) mdr.MarketDataRequest {
	m := mdr.New(
		field.NewMDReqID(mdReqID),
		field.NewSubscriptionRequestType(subscription),
		field.NewMarketDepth(depth),
	)
	m.SetMDUpdateType(enum.MDUpdateType_FULL_REFRESH)

	entryTypes := mdr.NewNoMDEntryTypesRepeatingGroup()
	entryTypes.Add().SetMDEntryType(enum.MDEntryType_BID)
	entryTypes.Add().SetMDEntryType(enum.MDEntryType_OFFER)
	m.SetNoMDEntryTypes(entryTypes)

	relSym := mdr.NewNoRelatedSymRepeatingGroup()
	relSym.Add().SetSymbol(toVenue(symbology, security.Symbol, counterparty))
	m.SetNoRelatedSym(relSym)

	return m
}

// FIX44SubscribeRequest builds a snapshot plus updates subscription
func FIX44SubscribeRequest(s domain.Subscribe, symbology symbol.Symbology, counterparty string) mdr.MarketDataRequest {
	return FIX44MarketDataRequest(s.ID, s.Security, enum.SubscriptionRequestType_SNAPSHOT_PLUS_UPDATES, MarketDepth, symbology, counterparty)
}

// FIX44UnsubscribeRequest disables a previous snapshot plus updates subscription
func FIX44UnsubscribeRequest(u domain.Unsubscribe, symbology symbol.Symbology, counterparty string) mdr.MarketDataRequest {
	return FIX44MarketDataRequest(u.ID, u.Security, enum.SubscriptionRequestType_DISABLE_PREVIOUS_SNAPSHOT_PLUS_UPDATE_REQUEST, MarketDepth, symbology, counterparty)
}

// TicksFromFIX44Snapshot emits one tick per snapshot entry, in entry order. A bid entry
// populates the bid side, an offer entry the ask side, and any other entry type leaves both
// sides empty. A bad entry stops the decode, ticks emitted for earlier entries stand.
func TicksFromFIX44Snapshot(msg mdsfr.MarketDataSnapshotFullRefresh, provider string, symbology symbol.Symbology, counterparty string, emit func(domain.Tick)) quickfix.MessageRejectError {
	sym, err := msg.GetSymbol()
	if err != nil {
		return err
	}
	sent, err := msg.Header.GetSendingTime()
	if err != nil {
		return err
	}
	entries, err := msg.GetNoMDEntries()
	if err != nil {
		return err
	}

	security := domain.Security{Symbol: fromVenue(symbology, sym, counterparty)}
	for i := 0; i < entries.Len(); i++ {
		entry := entries.Get(i)
		typ, err := entry.GetMDEntryType()
		if err != nil {
			return err
		}
		tick := domain.NewTick(security, provider, sent)
		switch typ {
		case enum.MDEntryType_BID:
			px, size, err := entryPxSize(entry)
			if err != nil {
				return err
			}
			tick.SetBid(px, size)
		case enum.MDEntryType_OFFER:
			px, size, err := entryPxSize(entry)
			if err != nil {
				return err
			}
			tick.SetAsk(px, size)
		}
		emit(tick)
	}
	return nil
}

func entryPxSize(entry mdsfr.NoMDEntries) (px, size decimal.Decimal, err quickfix.MessageRejectError) {
	if px, err = entry.GetMDEntryPx(); err != nil {
		return
	}
	size, err = entry.GetMDEntrySize()
	return
}

// MarketDataEventFromFIX44Reject reads the request id, reason and text of a market data reject.
// The reject names no symbol, so Security is left empty.
func MarketDataEventFromFIX44Reject(msg mdrr.MarketDataRequestReject, provider string) (domain.MarketDataEvent, quickfix.MessageRejectError) {
	evt := domain.MarketDataEvent{Provider: provider}
	id, err := msg.GetMDReqID()
	if err != nil {
		return evt, err
	}
	evt.RequestID = id
	if msg.HasMDReqRejReason() {
		reason, err := msg.GetMDReqRejReason()
		if err != nil {
			return evt, err
		}
		evt.Reason = string(reason)
	}
	if msg.HasText() {
		text, err := msg.GetText()
		if err != nil {
			return evt, err
		}
		evt.Text = text
	}
	return evt, nil
}
