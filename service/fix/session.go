package fix

import (
	"errors"
	"fmt"
	"sync"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/config"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/log"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/metrics"

	"go.uber.org/zap"

	"github.com/quickfixgo/enum"
	"github.com/quickfixgo/field"
	lgn "github.com/quickfixgo/fix44/logon"
	rj "github.com/quickfixgo/fix44/reject"
	"github.com/quickfixgo/quickfix"
	"github.com/quickfixgo/tag"
)

// ErrNotConnected is returned by commands issued while no logged on session is bound
var ErrNotConnected = errors.New("session not connected")

// State of the adapter's bound session
type State int

const (
	// Disconnected means no session is bound
	Disconnected State = iota
	// Connecting means the engine is started and waiting for a matching logon
	Connecting
	// LoggedOn means a session whose SenderCompID matches the settings is bound
	LoggedOn
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "Connecting"
	case LoggedOn:
		return "LoggedOn"
	}
	return "Disconnected"
}

// LifecycleListener is told about every logon and logout seen by the engine
type LifecycleListener interface {
	LogonArrived(provider string)
	LogoutArrived(provider string)
}

// Session owns one FIX engine and binds the wire session matching its SenderCompID. It is the
// quickfix.Application the engine calls back into.
type Session struct {
	*Router

	Provider string

	service   ServiceType
	settings  *quickfix.Settings
	newEngine EngineFactory
	logger    *zap.Logger
	lifecycle Observers[LifecycleListener]

	// serializes Start and Stop, never taken by engine callbacks
	ctrl sync.Mutex

	mu        sync.RWMutex
	engine    Engine
	cfg       config.Settings
	sessionID *quickfix.SessionID
	state     State
}

// NewSession creates a stopped session. Logon and session-level Reject are always routed.
func NewSession(provider string, service ServiceType, s *quickfix.Settings, newEngine EngineFactory) *Session {
	logger := log.Logger.With(zap.String("provider", provider), zap.String("service", service.String()))
	sess := &Session{
		Router:    NewRouter(provider, service, logger),
		Provider:  provider,
		service:   service,
		settings:  s,
		newEngine: newEngine,
		logger:    logger,
	}
	sess.AddRoute(lgn.Route(sess.onFIX44Logon))
	sess.AddRoute(rj.Route(sess.onFIX44Reject))
	return sess
}

// Logger is the session's logger, decorated with provider and service
func (s *Session) Logger() *zap.Logger {
	return s.logger
}

// Service is the kind of session, market data or order routing
func (s *Session) Service() ServiceType {
	return s.service
}

// Emitted counts an event raised to listeners
func (s *Session) Emitted(event string) {
	metrics.EventsEmitted.WithLabelValues(s.Provider, s.service.String(), event).Inc()
}

// AddLifecycleListener registers for logon and logout events
func (s *Session) AddLifecycleListener(l LifecycleListener) {
	s.lifecycle.Add(l)
}

// Settings returns the settings resolved by the last Start
func (s *Session) Settings() config.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// State returns the current session state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the bound session id, if any
func (s *Session) SessionID() (quickfix.SessionID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sessionID == nil {
		return quickfix.SessionID{}, false
	}
	return *s.sessionID, true
}

// Start resolves the settings, builds the engine and starts it. Starting a running session is a
// no-op, an engine found stopped is discarded and rebuilt.
func (s *Session) Start() (err error) {
	s.ctrl.Lock()
	defer s.ctrl.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("could not start %s %s session: %v", s.Provider, s.service, r)
			s.logger.Error("start failed", zap.Error(err))
		}
	}()

	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()

	if engine != nil {
		if !engine.IsStopped() {
			s.logger.Info("session already started")
			return nil
		}
		s.logger.Info("restarting stopped session")
		engine.Stop()
	}

	cfg := config.Resolve(config.Flatten(s.settings))
	if cfg.SenderCompID == "" {
		s.logger.Warn("no SenderCompID configured, session can not be bound")
	}
	s.mu.Lock()
	s.cfg = cfg
	s.engine = nil
	s.sessionID = nil
	s.state = Disconnected
	s.mu.Unlock()

	engineSettings, err := config.EngineSettings(s.settings)
	if err != nil {
		s.logger.Error("could not prepare engine settings", zap.Error(err))
		return err
	}
	engine, err = s.newEngine(s, engineSettings)
	if err != nil {
		s.logger.Error("could not create engine", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.engine = engine
	s.state = Connecting
	s.mu.Unlock()

	if err = engine.Start(); err != nil {
		s.logger.Error("could not start engine", zap.Error(err))
		engine.Stop()
		s.mu.Lock()
		s.engine = nil
		s.state = Disconnected
		s.mu.Unlock()
		return err
	}
	s.logger.Info("session started", zap.String("SenderCompID", cfg.SenderCompID), zap.String("TargetCompID", cfg.TargetCompID))
	return nil
}

// Stop stops and disposes the engine and clears the bound session. Stopping a stopped session is
// a no-op.
func (s *Session) Stop() error {
	s.ctrl.Lock()
	defer s.ctrl.Unlock()

	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()
	if engine == nil {
		s.logger.Debug("session already stopped")
		return nil
	}

	engine.Stop()

	s.mu.Lock()
	s.engine = nil
	s.sessionID = nil
	s.state = Disconnected
	s.mu.Unlock()
	metrics.SessionLoggedOn.WithLabelValues(s.Provider, s.service.String()).Set(0)
	s.logger.Info("session stopped")
	return nil
}

// IsConnected asks the engine whether the bound session is logged on
func (s *Session) IsConnected() bool {
	s.mu.RLock()
	engine, sID := s.engine, s.sessionID
	s.mu.RUnlock()
	return engine != nil && sID != nil && engine.IsLoggedOn(*sID)
}

// Send delivers m on the bound session
func (s *Session) Send(m quickfix.Messagable) error {
	s.mu.RLock()
	engine, sID := s.engine, s.sessionID
	s.mu.RUnlock()
	if engine == nil || sID == nil || !engine.IsLoggedOn(*sID) {
		return ErrNotConnected
	}
	return engine.Send(m, *sID)
}

// OnCreate handles FIX session creation
func (s *Session) OnCreate(sID quickfix.SessionID) {
	s.logger.Info("FIX.OnCreate", zap.String("SessionID", sID.String()))
}

// OnLogon binds the session when its SenderCompID matches the settings. Every logon is reported
// to the lifecycle listeners.
func (s *Session) OnLogon(sID quickfix.SessionID) {
	s.mu.Lock()
	bound := s.cfg.SenderCompID != "" && sID.SenderCompID == s.cfg.SenderCompID
	if bound {
		id := sID
		s.sessionID = &id
		s.state = LoggedOn
	}
	s.mu.Unlock()

	if bound {
		metrics.SessionLoggedOn.WithLabelValues(s.Provider, s.service.String()).Set(1)
		s.logger.Info("FIX.OnLogon", zap.String("SessionID", sID.String()))
	} else {
		s.logger.Info("FIX.OnLogon for foreign session", zap.String("SessionID", sID.String()))
	}
	s.emit(metrics.EventLogon, func(l LifecycleListener) { l.LogonArrived(s.Provider) })
}

// OnLogout clears the bound session if it is the one logging out, compared by full session id.
// Every logout is reported to the lifecycle listeners.
func (s *Session) OnLogout(sID quickfix.SessionID) {
	s.mu.Lock()
	unbound := s.sessionID != nil && *s.sessionID == sID
	if unbound {
		s.sessionID = nil
		s.state = Disconnected
	}
	s.mu.Unlock()

	if unbound {
		metrics.SessionLoggedOn.WithLabelValues(s.Provider, s.service.String()).Set(0)
	}
	s.logger.Info("FIX.OnLogout", zap.String("SessionID", sID.String()), zap.Bool("bound", unbound))
	s.emit(metrics.EventLogout, func(l LifecycleListener) { l.LogoutArrived(s.Provider) })
}

func (s *Session) emit(event string, fn func(LifecycleListener)) {
	s.Emitted(event)
	s.lifecycle.Each(fn)
}

// ToAdmin decorates the outbound Logon
func (s *Session) ToAdmin(msg *quickfix.Message, sID quickfix.SessionID) {
	if !msg.IsMsgTypeOf(string(enum.MsgType_LOGON)) {
		return
	}
	logon := lgn.FromMessage(msg)
	logon.SetResetSeqNumFlag(true)
	logon.SetEncryptMethod(enum.EncryptMethod_NONE_OTHER)
	logon.SetHeartBtInt(s.Settings().HeartBtInt)
}

// ToApp stamps DeliverToCompID and SenderSubID when they are configured
func (s *Session) ToApp(msg *quickfix.Message, sID quickfix.SessionID) error {
	cfg := s.Settings()
	if cfg.DeliverToCompID != "" && !msg.Header.Has(tag.DeliverToCompID) {
		msg.Header.Set(field.NewDeliverToCompID(cfg.DeliverToCompID))
	}
	if cfg.SenderSubID != "" && !msg.Header.Has(tag.SenderSubID) {
		msg.Header.Set(field.NewSenderSubID(cfg.SenderSubID))
	}
	return nil
}

// FromAdmin routes inbound admin messages
func (s *Session) FromAdmin(msg *quickfix.Message, sID quickfix.SessionID) quickfix.MessageRejectError {
	s.Dispatch(msg, sID)
	return nil
}

// FromApp routes inbound application messages
func (s *Session) FromApp(msg *quickfix.Message, sID quickfix.SessionID) quickfix.MessageRejectError {
	s.Dispatch(msg, sID)
	return nil
}

func (s *Session) onFIX44Logon(msg lgn.Logon, sID quickfix.SessionID) quickfix.MessageRejectError {
	hb, err := msg.GetHeartBtInt()
	if err != nil {
		return err
	}
	s.logger.Info("logon arrived", zap.String("SessionID", sID.String()), zap.Int("HeartBtInt", hb))
	return nil
}

func (s *Session) onFIX44Reject(msg rj.Reject, sID quickfix.SessionID) quickfix.MessageRejectError {
	fields := []zap.Field{zap.String("SessionID", sID.String())}
	if msg.HasText() {
		text, err := msg.GetText()
		if err != nil {
			return err
		}
		fields = append(fields, zap.String("Text", text))
	}
	if msg.HasSessionRejectReason() {
		reason, err := msg.GetSessionRejectReason()
		if err != nil {
			return err
		}
		fields = append(fields, zap.String("SessionRejectReason", string(reason)))
	}
	ref, err := msg.GetRefSeqNum()
	if err != nil {
		return err
	}
	fields = append(fields, zap.Int("RefSeqNum", ref))
	s.logger.Info("message rejected by counterparty", fields...)
	return nil
}
