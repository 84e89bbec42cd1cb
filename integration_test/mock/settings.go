package mock

import (
	"github.com/quickfixgo/quickfix"
)

// SessionID is a FIX 4.4 session id
func SessionID(sender, target string) quickfix.SessionID {
	return quickfix.SessionID{BeginString: quickfix.BeginStringFIX44, SenderCompID: sender, TargetCompID: target}
}

// Settings builds settings for one FIX 4.4 session. global is written to the [DEFAULT] section.
func Settings(sender, target string, global map[string]string) *quickfix.Settings {
	s := quickfix.NewSettings()
	for k, v := range global {
		s.GlobalSettings().Set(k, v)
	}
	ss := quickfix.NewSessionSettings()
	ss.Set("BeginString", quickfix.BeginStringFIX44)
	ss.Set("SenderCompID", sender)
	ss.Set("TargetCompID", target)
	if _, err := s.AddSession(ss); err != nil {
		panic(err)
	}
	return s
}
