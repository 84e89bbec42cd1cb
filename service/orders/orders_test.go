package orders

import (
	"sync"
	"testing"
	"time"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/integration_test/mock"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/fix"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	er "github.com/quickfixgo/fix44/executionreport"
	nos "github.com/quickfixgo/fix44/newordersingle"
	ocj "github.com/quickfixgo/fix44/ordercancelreject"
	ocr "github.com/quickfixgo/fix44/ordercancelrequest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sender = "FXW_TRADE"
	target = "FOREXWARE"
)

var eurusd = domain.Security{Symbol: "EURUSD"}

type recorder struct {
	m               sync.Mutex
	news            []domain.Order
	cancellations   []domain.Order
	executions      []domain.Execution
	rejections      []domain.Rejection
	orderRejections []domain.Rejection
}

func (r *recorder) LogonArrived(string)  {}
func (r *recorder) LogoutArrived(string) {}
func (r *recorder) NewArrived(o domain.Order) {
	r.m.Lock()
	defer r.m.Unlock()
	r.news = append(r.news, o)
}
func (r *recorder) CancellationArrived(o domain.Order) {
	r.m.Lock()
	defer r.m.Unlock()
	r.cancellations = append(r.cancellations, o)
}
func (r *recorder) ExecutionArrived(e domain.Execution) {
	r.m.Lock()
	defer r.m.Unlock()
	r.executions = append(r.executions, e)
}
func (r *recorder) RejectionArrived(rej domain.Rejection) {
	r.m.Lock()
	defer r.m.Unlock()
	r.rejections = append(r.rejections, rej)
}
func (r *recorder) OrderRejectionArrived(rej domain.Rejection) {
	r.m.Lock()
	defer r.m.Unlock()
	r.orderRejections = append(r.orderRejections, rej)
}

func newAdapter(t *testing.T, global map[string]string) (*Adapter, *mock.Engine, *recorder) {
	t.Helper()
	engine := mock.NewEngine()
	a := New(mock.Settings(sender, target, global), nil, engine.Factory)
	r := &recorder{}
	a.AddListener(r)
	require.NoError(t, a.Start())
	return a, engine, r
}

func report(execType enum.ExecType, status enum.OrdStatus, cum, leaves string) er.ExecutionReport {
	m := er.New(
		field.NewOrderID("FXW-9"),
		field.NewExecID("E-9"),
		field.NewExecType(execType),
		field.NewOrdStatus(status),
		field.NewSide(enum.Side_SELL),
		field.NewLeavesQty(decimal.RequireFromString(leaves), 0),
		field.NewCumQty(decimal.RequireFromString(cum), 0),
		field.NewAvgPx(decimal.RequireFromString("1.25"), 2),
	)
	m.SetClOrdID("C-1")
	m.SetOrigClOrdID("O-1")
	m.SetSymbol("EURUSD")
	m.SetOrderQty(decimal.NewFromInt(100), 0)
	m.SetTransactTime(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	return m
}

func TestOrdersRequireConnection(t *testing.T) {
	a, engine, _ := newAdapter(t, nil)
	size := decimal.NewFromInt(100)

	assert.Equal(t, fix.ErrNotConnected, a.SendMarketOrder(domain.NewMarketOrder("1", domain.Buy, size, eurusd, domain.Forexware)))
	assert.Equal(t, fix.ErrNotConnected, a.SendLimitOrder(domain.NewLimitOrder("2", domain.Buy, size, size, domain.GTC, eurusd, domain.Forexware)))
	assert.Equal(t, fix.ErrNotConnected, a.SendStopOrder(domain.NewStopOrder("3", domain.Sell, size, size, domain.Day, eurusd, domain.Forexware)))
	assert.Equal(t, fix.ErrNotConnected, a.CancelLimitOrder(domain.NewLimitOrder("2", domain.Buy, size, size, domain.GTC, eurusd, domain.Forexware)))
	assert.Empty(t, engine.Sent())
}

func TestWrongOrderKind(t *testing.T) {
	a, engine, _ := newAdapter(t, nil)
	engine.Logon(mock.SessionID(sender, target))
	size := decimal.NewFromInt(100)

	market := domain.NewMarketOrder("1", domain.Buy, size, eurusd, domain.Forexware)
	limit := domain.NewLimitOrder("2", domain.Buy, size, size, domain.GTC, eurusd, domain.Forexware)
	assert.Equal(t, ErrWrongOrderKind, a.SendLimitOrder(market))
	assert.Equal(t, ErrWrongOrderKind, a.SendStopOrder(limit))
	assert.Equal(t, ErrWrongOrderKind, a.SendMarketOrder(limit))
	assert.Empty(t, engine.Sent())
}

func TestSendLimitOrder(t *testing.T) {
	a, engine, _ := newAdapter(t, map[string]string{"Account": "ACC-1"})
	engine.Logon(mock.SessionID(sender, target))

	o := domain.NewLimitOrder("L-1", domain.Sell, decimal.NewFromInt(5000), decimal.RequireFromString("1.2345"), domain.IOC, eurusd, domain.Forexware)
	require.NoError(t, a.SendLimitOrder(o))
	require.Len(t, engine.Sent(), 1)

	m := nos.FromMessage(engine.LastSent())
	id, err := m.GetClOrdID()
	require.Nil(t, err)
	assert.Equal(t, "L-1", id)
	ordType, err := m.GetOrdType()
	require.Nil(t, err)
	assert.Equal(t, enum.OrdType_LIMIT, ordType)
	side, err := m.GetSide()
	require.Nil(t, err)
	assert.Equal(t, enum.Side_SELL, side)
	account, err := m.GetAccount()
	require.Nil(t, err)
	assert.Equal(t, "ACC-1", account)
	tif, err := m.GetTimeInForce()
	require.Nil(t, err)
	assert.Equal(t, enum.TimeInForce_IMMEDIATE_OR_CANCEL, tif)
}

func TestCancelLimitOrder(t *testing.T) {
	a, engine, _ := newAdapter(t, nil)
	a.now = func() time.Time { return time.Date(2024, 3, 5, 9, 7, 3, 45000000, time.UTC) }
	engine.Logon(mock.SessionID(sender, target))

	o := domain.NewLimitOrder("L-1", domain.Buy, decimal.NewFromInt(5000), decimal.RequireFromString("1.2345"), domain.GTC, eurusd, domain.Forexware)
	require.NoError(t, a.CancelLimitOrder(o))
	require.Len(t, engine.Sent(), 1)

	m := ocr.FromMessage(engine.LastSent())
	orig, err := m.GetOrigClOrdID()
	require.Nil(t, err)
	assert.Equal(t, "L-1", orig)
	id, err := m.GetClOrdID()
	require.Nil(t, err)
	assert.Equal(t, "240305973045", id)
	assert.NotEqual(t, orig, id)
}

func TestCancelClOrdIDsAdvanceWithinMillisecond(t *testing.T) {
	a, engine, _ := newAdapter(t, nil)
	a.now = func() time.Time { return time.Date(2024, 3, 5, 9, 7, 3, 45500000, time.UTC) }
	engine.Logon(mock.SessionID(sender, target))

	o := domain.NewLimitOrder("L-1", domain.Buy, decimal.NewFromInt(5000), decimal.RequireFromString("1.2345"), domain.GTC, eurusd, domain.Forexware)
	for i := 0; i < 3; i++ {
		require.NoError(t, a.CancelLimitOrder(o))
	}
	sent := engine.Sent()
	require.Len(t, sent, 3)

	var ids []string
	for _, msg := range sent {
		id, err := ocr.FromMessage(msg).GetClOrdID()
		require.Nil(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"240305973045", "240305973046", "240305973047"}, ids)
}

func TestExecutionReports(t *testing.T) {
	_, engine, r := newAdapter(t, nil)
	sID := mock.SessionID(sender, target)
	engine.Logon(sID)

	assert.Nil(t, engine.FromApp(report(enum.ExecType_NEW, enum.OrdStatus_NEW, "0", "100"), sID))
	require.Len(t, r.news, 1)
	assert.Equal(t, "C-1", r.news[0].ID)
	assert.Equal(t, domain.Sell, r.news[0].Side)

	assert.Nil(t, engine.FromApp(report(enum.ExecType_TRADE, enum.OrdStatus_PARTIALLY_FILLED, "40", "60"), sID))
	assert.Nil(t, engine.FromApp(report(enum.ExecType_TRADE, enum.OrdStatus_FILLED, "100", "0"), sID))
	require.Len(t, r.executions, 2)
	assert.Equal(t, domain.Partial, r.executions[0].Fill.Type)
	assert.Equal(t, domain.Fill, r.executions[1].Fill.Type)
	assert.Equal(t, "E-9", r.executions[1].Fill.ExecutionID)

	assert.Nil(t, engine.FromApp(report(enum.ExecType_CANCELED, enum.OrdStatus_CANCELED, "0", "0"), sID))
	require.Len(t, r.cancellations, 1)
	assert.Equal(t, "O-1", r.cancellations[0].ID, "cancellations are keyed by OrigClOrdID")

	rejected := report(enum.ExecType_REJECTED, enum.OrdStatus_REJECTED, "0", "0")
	rejected.SetOrdRejReason(enum.OrdRejReason_UNKNOWN_SYMBOL)
	assert.Nil(t, engine.FromApp(rejected, sID))
	require.Len(t, r.orderRejections, 1)
	assert.Equal(t, string(enum.OrdRejReason_UNKNOWN_SYMBOL), r.orderRejections[0].Reason)

	assert.Nil(t, engine.FromApp(report(enum.ExecType_PENDING_NEW, enum.OrdStatus_PENDING_NEW, "0", "100"), sID))
	assert.Len(t, r.news, 1)
	assert.Empty(t, r.rejections)
}

func TestOrderCancelReject(t *testing.T) {
	_, engine, r := newAdapter(t, nil)
	sID := mock.SessionID(sender, target)
	engine.Logon(sID)

	m := ocj.New(
		field.NewOrderID("FXW-9"),
		field.NewClOrdID("C-1"),
		field.NewOrigClOrdID("O-1"),
		field.NewOrdStatus(enum.OrdStatus_FILLED),
		field.NewCxlRejResponseTo(enum.CxlRejResponseTo_ORDER_CANCEL_REQUEST),
	)
	m.SetCxlRejReason(enum.CxlRejReason_TOO_LATE_TO_CANCEL)
	m.SetTransactTime(time.Now().UTC())
	assert.Nil(t, engine.FromApp(m, sID))

	require.Len(t, r.rejections, 1)
	assert.Equal(t, "O-1", r.rejections[0].OrderID)
	assert.Equal(t, domain.Forexware, r.rejections[0].Provider)
}

func TestChannelsDropWhenFull(t *testing.T) {
	engine := mock.NewEngine()
	a := New(mock.Settings(sender, target, nil), nil, engine.Factory)
	ch := NewChannels(1)
	a.AddListener(ch)
	require.NoError(t, a.Start())
	sID := mock.SessionID(sender, target)
	engine.Logon(sID)

	assert.Nil(t, engine.FromApp(report(enum.ExecType_NEW, enum.OrdStatus_NEW, "0", "100"), sID))
	assert.Nil(t, engine.FromApp(report(enum.ExecType_NEW, enum.OrdStatus_NEW, "0", "100"), sID))
	assert.Len(t, ch.New, 1)
	assert.Equal(t, "C-1", (<-ch.New).ID)
	assert.Equal(t, domain.Forexware, <-ch.Logon)
}
