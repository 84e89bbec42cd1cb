// Binary fxwgw connects to Forexware over a market data and an order routing FIX 4.4 session
// and streams top of book quotes for the configured symbols.
package main

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/link"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/log"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/marketdata"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/orders"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/symbol"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quickfixgo/quickfix"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const channelDepth = 1024

func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("settings_directory", "./conf")
	v.SetDefault("marketdata_settings", "marketdata.cfg")
	v.SetDefault("orders_settings", "orders.cfg")
	v.SetDefault("symbology_file", "")
	v.SetDefault("symbols", "EURUSD")
	v.SetDefault("stat_address", ":8080")
	v.SetEnvPrefix("FXW")
	v.AutomaticEnv()
	return v
}

func loadSettings(dir, file string) (*quickfix.Settings, error) {
	f, err := os.Open(path.Join(dir, file))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return quickfix.ParseSettings(f)
}

func loadSymbology(file string) (symbol.Symbology, error) {
	if file == "" {
		return symbol.NewPassthroughSymbology(), nil
	}
	s, err := symbol.NewFileSymbology(file)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func splitSymbols(s string) []string {
	var symbols []string
	for _, sym := range strings.Split(s, ",") {
		if sym = strings.TrimSpace(sym); sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

// Gateway subscribes the configured symbols every time the market data session logs on and
// logs what both sessions report.
type Gateway struct {
	logger *zap.Logger
	*link.Link

	symbols []string
	md      *marketdata.Channels
	ord     *orders.Channels
	done    chan struct{}
	stopped chan struct{}
}

// NewGateway wires channel listeners into both adapters of l
func NewGateway(l *link.Link, symbols []string) *Gateway {
	g := &Gateway{
		logger:  log.Logger,
		Link:    l,
		symbols: symbols,
		md:      marketdata.NewChannels(channelDepth),
		ord:     orders.NewChannels(channelDepth),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	l.MarketData.AddListener(g.md)
	l.Orders.AddListener(g.ord)
	return g
}

// Start establishes both sessions and starts consuming their events
func (g *Gateway) Start() error {
	if err := g.Establish(); err != nil {
		return err
	}
	go g.run()
	return nil
}

// Stop stops consuming events and closes both sessions
func (g *Gateway) Stop() error {
	close(g.done)
	<-g.stopped
	return g.Close()
}

func (g *Gateway) subscribe() {
	for _, sym := range g.symbols {
		req := domain.Subscribe{ID: uuid.NewString(), Security: domain.Security{Symbol: sym}}
		if err := g.MarketData.SubscribeTickData(req); err != nil {
			g.logger.Warn("subscribe", zap.String("symbol", sym), zap.Error(err))
		}
	}
}

func (g *Gateway) run() {
	defer close(g.stopped)
	for {
		select {
		case <-g.done:
			return
		case p := <-g.md.Logon:
			g.logger.Info("market data logon", zap.String("provider", p))
			g.subscribe()
		case p := <-g.md.Logout:
			g.logger.Info("market data logout", zap.String("provider", p))
		case t := <-g.md.Tick:
			g.logger.Debug("tick", zap.String("symbol", t.Security.Symbol),
				zap.String("bid", t.BidPrice.Decimal.String()), zap.String("ask", t.AskPrice.Decimal.String()))
		case r := <-g.md.Rejection:
			g.logger.Warn("market data rejected", zap.String("MDReqID", r.RequestID), zap.String("text", r.Text))
		case p := <-g.ord.Logon:
			g.logger.Info("order routing logon", zap.String("provider", p))
		case p := <-g.ord.Logout:
			g.logger.Info("order routing logout", zap.String("provider", p))
		case o := <-g.ord.New:
			g.logger.Info("order accepted", zap.Stringer("order", o))
		case o := <-g.ord.Cancellation:
			g.logger.Info("order cancelled", zap.Stringer("order", o))
		case e := <-g.ord.Execution:
			g.logger.Info("execution", zap.String("ExecID", e.Fill.ExecutionID), zap.Stringer("type", e.Fill.Type))
		case r := <-g.ord.Rejection:
			g.logger.Warn("cancel rejected", zap.String("OrigClOrdID", r.OrderID), zap.String("reason", r.Reason))
		case r := <-g.ord.OrderRejection:
			g.logger.Warn("order rejected", zap.String("ClOrdID", r.OrderID), zap.String("reason", r.Reason))
		}
	}
}

func main() {
	cfg := loadConfig()
	dir := cfg.GetString("settings_directory")

	mdSettings, err := loadSettings(dir, cfg.GetString("marketdata_settings"))
	if err != nil {
		log.Logger.Fatal("market data FIX settings", zap.Error(err))
	}
	ordSettings, err := loadSettings(dir, cfg.GetString("orders_settings"))
	if err != nil {
		log.Logger.Fatal("order routing FIX settings", zap.Error(err))
	}
	symbology, err := loadSymbology(cfg.GetString("symbology_file"))
	if err != nil {
		log.Logger.Fatal("symbology", zap.Error(err))
	}

	g := NewGateway(link.NewLink(mdSettings, ordSettings, symbology, link.InitiatorFactories()),
		splitSymbols(cfg.GetString("symbols")))
	if err = g.Start(); err != nil {
		log.Logger.Fatal("start FIX", zap.Error(err))
	}

	http.Handle("/metrics", promhttp.Handler())
	stat := &http.Server{Addr: cfg.GetString("stat_address"), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		g.logger.Info("starting stat server", zap.String("addr", stat.Addr))
		if err := stat.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("stat server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	g.logger.Info("shutting down")
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = stat.Shutdown(shutdown)
	if err = g.Stop(); err != nil {
		g.logger.Error("stop FIX", zap.Error(err))
	}
}
