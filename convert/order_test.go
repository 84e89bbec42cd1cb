package convert

import (
	"testing"
	"time"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"

	"github.com/quickfixgo/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eurusd = domain.Security{Symbol: "EURUSD"}

func TestFIX44NewOrderSingleMarket(t *testing.T) {
	o := domain.NewMarketOrder("O1", domain.Buy, decimal.NewFromInt(100000), eurusd, domain.Forexware)
	o.Time = sent

	m, err := FIX44NewOrderSingle(o, "ACC-7", dotted{}, "FXW")
	require.NoError(t, err)

	clOrdID, rej := m.GetClOrdID()
	require.Nil(t, rej)
	assert.Equal(t, "O1", clOrdID)
	side, rej := m.GetSide()
	require.Nil(t, rej)
	assert.Equal(t, enum.Side_BUY, side)
	ordType, rej := m.GetOrdType()
	require.Nil(t, rej)
	assert.Equal(t, enum.OrdType_MARKET, ordType)
	handl, rej := m.GetHandlInst()
	require.Nil(t, rej)
	assert.Equal(t, enum.HandlInst_AUTOMATED_EXECUTION_ORDER_PRIVATE_NO_BROKER_INTERVENTION, handl)
	sym, rej := m.GetSymbol()
	require.Nil(t, rej)
	assert.Equal(t, "EURUSD.", sym)
	qty, rej := m.GetOrderQty()
	require.Nil(t, rej)
	assert.True(t, decimal.NewFromInt(100000).Equal(qty))
	account, rej := m.GetAccount()
	require.Nil(t, rej)
	assert.Equal(t, "ACC-7", account)
	transact, rej := m.GetTransactTime()
	require.Nil(t, rej)
	assert.True(t, sent.Equal(transact))

	assert.False(t, m.HasPrice())
	assert.False(t, m.HasStopPx())
	assert.False(t, m.HasTimeInForce())
}

func TestFIX44NewOrderSingleLimit(t *testing.T) {
	o := domain.NewLimitOrder("O2", domain.Sell, decimal.RequireFromString("2500.5"), decimal.RequireFromString("1.08765"), domain.GTC, eurusd, domain.Forexware)

	m, err := FIX44NewOrderSingle(o, "", nil, "")
	require.NoError(t, err)

	ordType, rej := m.GetOrdType()
	require.Nil(t, rej)
	assert.Equal(t, enum.OrdType_LIMIT, ordType)
	side, rej := m.GetSide()
	require.Nil(t, rej)
	assert.Equal(t, enum.Side_SELL, side)
	px, rej := m.GetPrice()
	require.Nil(t, rej)
	assert.True(t, decimal.RequireFromString("1.08765").Equal(px))
	qty, rej := m.GetOrderQty()
	require.Nil(t, rej)
	assert.True(t, decimal.RequireFromString("2500.5").Equal(qty))
	tif, rej := m.GetTimeInForce()
	require.Nil(t, rej)
	assert.Equal(t, enum.TimeInForce_GOOD_TILL_CANCEL, tif)
	assert.False(t, m.HasAccount())
	assert.False(t, m.HasStopPx())
}

func TestFIX44NewOrderSingleStop(t *testing.T) {
	o := domain.NewStopOrder("O3", domain.Buy, decimal.NewFromInt(1000), decimal.RequireFromString("1.1"), domain.Day, eurusd, domain.Forexware)

	m, err := FIX44NewOrderSingle(o, "ACC", nil, "")
	require.NoError(t, err)

	ordType, rej := m.GetOrdType()
	require.Nil(t, rej)
	assert.Equal(t, enum.OrdType_STOP, ordType)
	stop, rej := m.GetStopPx()
	require.Nil(t, rej)
	assert.True(t, decimal.RequireFromString("1.1").Equal(stop))
	tif, rej := m.GetTimeInForce()
	require.Nil(t, rej)
	assert.Equal(t, enum.TimeInForce_DAY, tif)
	assert.False(t, m.HasPrice())
}

func TestFIX44NewOrderSingleErrors(t *testing.T) {
	o := domain.NewMarketOrder("O4", domain.Buy, decimal.NewFromInt(1), eurusd, domain.Forexware)
	o.Kind = nil
	_, err := FIX44NewOrderSingle(o, "", nil, "")
	assert.Equal(t, ErrUnsupportedOrderKind, err)

	o = domain.NewMarketOrder("O5", domain.Side(9), decimal.NewFromInt(1), eurusd, domain.Forexware)
	_, err = FIX44NewOrderSingle(o, "", nil, "")
	assert.Equal(t, ErrUnknownSide, err)
}

func TestCancelClOrdID(t *testing.T) {
	assert.Equal(t, "240305973045", CancelClOrdID(sent))
	assert.Equal(t, "241231145959999", CancelClOrdID(time.Date(2024, 12, 31, 14, 59, 59, 999*int(time.Millisecond), time.UTC)))
	assert.Equal(t,
		CancelClOrdID(time.Date(2024, 3, 5, 1, 11, 5, 0, time.UTC)),
		CancelClOrdID(time.Date(2024, 3, 5, 11, 1, 5, 0, time.UTC)),
		"unpadded fields collide")
}

func TestFIX44OrderCancelRequest(t *testing.T) {
	o := domain.NewLimitOrder("O123", domain.Sell, decimal.NewFromInt(5000), decimal.RequireFromString("1.2"), domain.GTC, eurusd, domain.Forexware)
	o.Time = sent
	now := sent.Add(time.Minute)

	m, err := FIX44OrderCancelRequest(o, "ACC-7", now, dotted{}, "FXW")
	require.NoError(t, err)

	orig, rej := m.GetOrigClOrdID()
	require.Nil(t, rej)
	assert.Equal(t, "O123", orig)
	clOrdID, rej := m.GetClOrdID()
	require.Nil(t, rej)
	assert.NotEqual(t, "O123", clOrdID)
	assert.Equal(t, CancelClOrdID(now), clOrdID)
	side, rej := m.GetSide()
	require.Nil(t, rej)
	assert.Equal(t, enum.Side_SELL, side)
	sym, rej := m.GetSymbol()
	require.Nil(t, rej)
	assert.Equal(t, "EURUSD.", sym)
	account, rej := m.GetAccount()
	require.Nil(t, rej)
	assert.Equal(t, "ACC-7", account)
	transact, rej := m.GetTransactTime()
	require.Nil(t, rej)
	assert.True(t, sent.Equal(transact))
}

func TestSideAndTimeInForce(t *testing.T) {
	assert.Equal(t, domain.Day, TimeInForceFromFIX(enum.TimeInForce_AT_THE_OPENING))
	assert.Equal(t, enum.TimeInForce_FILL_OR_KILL, TimeInForceToFIX(domain.FOK))

	_, rej := SideFromFIX(enum.Side_SELL_SHORT)
	assert.NotNil(t, rej)
}
