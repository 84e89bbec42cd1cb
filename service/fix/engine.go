package fix

import (
	"sync"

	"github.com/quickfixgo/quickfix"
)

// ServiceType is the package service type
type ServiceType byte

const (
	// MarketDataService defines a MD service
	MarketDataService ServiceType = iota
	// OrderRoutingService defines an Order Routing service
	OrderRoutingService
)

func (t ServiceType) String() string {
	if t == OrderRoutingService {
		return "orders"
	}
	return "marketdata"
}

// Engine is the FIX session engine a Session drives. Stop also releases the engine's sessions,
// a stopped engine is discarded rather than restarted.
type Engine interface {
	Start() error
	Stop()
	IsStopped() bool
	Send(m quickfix.Messagable, sID quickfix.SessionID) error
	IsLoggedOn(sID quickfix.SessionID) bool
}

// EngineFactory builds an engine delivering its callbacks to app
type EngineFactory func(app quickfix.Application, s *quickfix.Settings) (Engine, error)

// NewInitiatorFactory returns a factory for quickfix initiators. Market data sessions keep their
// messages in memory, order routing sessions on disk.
func NewInitiatorFactory(serviceType ServiceType) EngineFactory {
	return func(app quickfix.Application, s *quickfix.Settings) (Engine, error) {
		e := &initiator{
			Application: app,
			settings:    s,
			loggedOn:    make(map[quickfix.SessionID]bool),
			stopped:     true,
		}

		var storeFactory quickfix.MessageStoreFactory
		logFactory, err := quickfix.NewFileLogFactory(s)
		if err != nil {
			return nil, err
		}
		if serviceType == OrderRoutingService {
			storeFactory = quickfix.NewFileStoreFactory(s)
		} else {
			storeFactory = quickfix.NewMemoryStoreFactory()
		}

		i, err := quickfix.NewInitiator(e, storeFactory, s, logFactory)
		if err != nil {
			e.unregister()
			return nil, err
		}
		e.ini = i
		return e, nil
	}
}

// initiator wraps a quickfix initiator and tracks which of its sessions are logged on.
type initiator struct {
	quickfix.Application

	ini      *quickfix.Initiator
	settings *quickfix.Settings

	lock     sync.RWMutex
	loggedOn map[quickfix.SessionID]bool
	started  bool
	stopped  bool
}

func (e *initiator) Start() error {
	e.lock.Lock()
	e.started = true
	e.stopped = false
	e.lock.Unlock()
	return e.ini.Start()
}

func (e *initiator) Stop() {
	e.lock.Lock()
	if e.stopped && !e.started {
		e.lock.Unlock()
		e.unregister()
		return
	}
	started := e.started
	e.started = false
	e.stopped = true
	e.lock.Unlock()

	if started {
		e.ini.Stop()
	}
	e.unregister()

	e.lock.Lock()
	e.loggedOn = make(map[quickfix.SessionID]bool)
	e.lock.Unlock()
}

func (e *initiator) IsStopped() bool {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.stopped
}

func (e *initiator) Send(m quickfix.Messagable, sID quickfix.SessionID) error {
	return quickfix.SendToTarget(m, sID)
}

func (e *initiator) IsLoggedOn(sID quickfix.SessionID) bool {
	e.lock.RLock()
	defer e.lock.RUnlock()
	return e.loggedOn[sID]
}

// unregister frees the session ids so a later initiator can register them again.
func (e *initiator) unregister() {
	for sID := range e.settings.SessionSettings() {
		_ = quickfix.UnregisterSession(sID)
	}
}

func (e *initiator) OnLogon(sID quickfix.SessionID) {
	e.lock.Lock()
	e.loggedOn[sID] = true
	e.lock.Unlock()
	e.Application.OnLogon(sID)
}

func (e *initiator) OnLogout(sID quickfix.SessionID) {
	e.lock.Lock()
	delete(e.loggedOn, sID)
	e.lock.Unlock()
	e.Application.OnLogout(sID)
}
