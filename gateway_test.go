package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/integration_test/mock"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/link"

	mdr "github.com/quickfixgo/fix44/marketdatarequest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSymbols(t *testing.T) {
	assert.Equal(t, []string{"EURUSD", "GBPUSD"}, splitSymbols(" EURUSD, ,GBPUSD "))
	assert.Nil(t, splitSymbols(""))
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	cfg := "[DEFAULT]\nSocketConnectHost=127.0.0.1\nSocketConnectPort=5001\nHeartBtInt=30\n\n[SESSION]\nBeginString=FIX.4.4\nSenderCompID=FXW_QUOTE\nTargetCompID=FOREXWARE\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marketdata.cfg"), []byte(cfg), 0o600))

	s, err := loadSettings(dir, "marketdata.cfg")
	require.NoError(t, err)
	assert.Len(t, s.SessionSettings(), 1)

	_, err = loadSettings(dir, "orders.cfg")
	assert.Error(t, err)
}

func TestLoadSymbology(t *testing.T) {
	s, err := loadSymbology("")
	require.NoError(t, err)
	sym, err := s.ToForexware("EURUSD", "FXW")
	require.NoError(t, err)
	assert.Equal(t, "EURUSD", sym)

	s, err = loadSymbology("service/symbol/testdata/symbol_master.txt")
	require.NoError(t, err)
	sym, err = s.ToForexware("EURUSD", "FXW")
	require.NoError(t, err)
	assert.Equal(t, "EURUSD.", sym)
}

func TestGatewaySubscribesOnLogon(t *testing.T) {
	md, ord := mock.NewEngine(), mock.NewEngine()
	l := link.NewLink(
		mock.Settings("FXW_QUOTE", "FOREXWARE", nil),
		mock.Settings("FXW_TRADE", "FOREXWARE", nil),
		nil,
		link.Factories{MarketData: md.Factory, Orders: ord.Factory},
	)
	g := NewGateway(l, []string{"EURUSD", "GBPUSD"})
	require.NoError(t, g.Start())

	md.Logon(mock.SessionID("FXW_QUOTE", "FOREXWARE"))
	assert.Eventually(t, func() bool { return len(md.Sent()) == 2 }, time.Second, 10*time.Millisecond)

	ids := map[string]bool{}
	for _, m := range md.Sent() {
		id, err := mdr.FromMessage(m).GetMDReqID()
		require.Nil(t, err)
		ids[id] = true
	}
	assert.Len(t, ids, 2, "each subscription gets its own MDReqID")

	require.NoError(t, g.Stop())
	assert.True(t, md.IsStopped())
	assert.True(t, ord.IsStopped())
}
