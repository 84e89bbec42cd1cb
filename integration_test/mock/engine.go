package mock

import (
	"sync"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/fix"

	"github.com/quickfixgo/quickfix"
)

// Engine is an in-memory fix.Engine. Tests drive the callbacks a real engine would deliver and
// inspect what the adapter sent.
type Engine struct {
	App      quickfix.Application
	Settings *quickfix.Settings

	// StartErr is returned by the next Start calls when set
	StartErr error

	m        sync.Mutex
	running  bool
	created  int
	starts   int
	stops    int
	loggedOn map[quickfix.SessionID]bool
	sent     []*quickfix.Message
}

// NewEngine creates a stopped engine
func NewEngine() *Engine {
	return &Engine{loggedOn: make(map[quickfix.SessionID]bool)}
}

// Factory hands this engine to every session that asks for one
func (e *Engine) Factory(app quickfix.Application, s *quickfix.Settings) (fix.Engine, error) {
	e.m.Lock()
	defer e.m.Unlock()
	e.App = app
	e.Settings = s
	e.created++
	return e, nil
}

// Start marks the engine running
func (e *Engine) Start() error {
	e.m.Lock()
	defer e.m.Unlock()
	if e.StartErr != nil {
		return e.StartErr
	}
	e.running = true
	e.starts++
	return nil
}

// Stop marks the engine stopped and forgets every logon
func (e *Engine) Stop() {
	e.m.Lock()
	defer e.m.Unlock()
	e.running = false
	e.stops++
	e.loggedOn = make(map[quickfix.SessionID]bool)
}

// IsStopped reports whether the engine is not running
func (e *Engine) IsStopped() bool {
	e.m.Lock()
	defer e.m.Unlock()
	return !e.running
}

// Send records the message
func (e *Engine) Send(m quickfix.Messagable, sID quickfix.SessionID) error {
	e.m.Lock()
	defer e.m.Unlock()
	e.sent = append(e.sent, m.ToMessage())
	return nil
}

// IsLoggedOn reports whether Logon was delivered for sID since the last Logout or Stop
func (e *Engine) IsLoggedOn(sID quickfix.SessionID) bool {
	e.m.Lock()
	defer e.m.Unlock()
	return e.loggedOn[sID]
}

// Logon delivers OnLogon for sID
func (e *Engine) Logon(sID quickfix.SessionID) {
	e.m.Lock()
	e.loggedOn[sID] = true
	app := e.App
	e.m.Unlock()
	app.OnLogon(sID)
}

// Logout delivers OnLogout for sID
func (e *Engine) Logout(sID quickfix.SessionID) {
	e.m.Lock()
	delete(e.loggedOn, sID)
	app := e.App
	e.m.Unlock()
	app.OnLogout(sID)
}

// DropLogon forgets a logon without telling the application, as when the engine loses a
// session before the logout callback runs
func (e *Engine) DropLogon(sID quickfix.SessionID) {
	e.m.Lock()
	defer e.m.Unlock()
	delete(e.loggedOn, sID)
}

// FromApp delivers an inbound application message
func (e *Engine) FromApp(m quickfix.Messagable, sID quickfix.SessionID) quickfix.MessageRejectError {
	e.m.Lock()
	app := e.App
	e.m.Unlock()
	return app.FromApp(m.ToMessage(), sID)
}

// FromAdmin delivers an inbound admin message
func (e *Engine) FromAdmin(m quickfix.Messagable, sID quickfix.SessionID) quickfix.MessageRejectError {
	e.m.Lock()
	app := e.App
	e.m.Unlock()
	return app.FromAdmin(m.ToMessage(), sID)
}

// Sent returns every message sent so far
func (e *Engine) Sent() []*quickfix.Message {
	e.m.Lock()
	defer e.m.Unlock()
	sent := make([]*quickfix.Message, len(e.sent))
	copy(sent, e.sent)
	return sent
}

// LastSent returns the last message sent, or nil
func (e *Engine) LastSent() *quickfix.Message {
	e.m.Lock()
	defer e.m.Unlock()
	if len(e.sent) == 0 {
		return nil
	}
	return e.sent[len(e.sent)-1]
}

// Created is the number of times Factory was called
func (e *Engine) Created() int {
	e.m.Lock()
	defer e.m.Unlock()
	return e.created
}

// Starts is the number of successful Start calls
func (e *Engine) Starts() int {
	e.m.Lock()
	defer e.m.Unlock()
	return e.starts
}

// Stops is the number of Stop calls
func (e *Engine) Stops() int {
	e.m.Lock()
	defer e.m.Unlock()
	return e.stops
}
