// Package config resolves the adapter settings out of a FIX session settings file.
package config

import (
	"sort"
	"strconv"
	"strings"

	"github.com/quickfixgo/quickfix"
	"github.com/spf13/cast"
)

// Keys read from the settings file.
const (
	SenderCompID    = "SenderCompID"
	TargetCompID    = "TargetCompID"
	HeartBtInt      = "HeartBtInt"
	Account         = "Account"
	SenderSubID     = "SenderSubID"
	DeliverToCompID = "DeliverToCompID"
)

// DefaultHeartBtInt is used when HeartBtInt is absent or not a positive integer.
const DefaultHeartBtInt = 60

var keys = []string{SenderCompID, TargetCompID, HeartBtInt, Account, SenderSubID, DeliverToCompID}

// Settings are the values an adapter needs from its settings file.
type Settings struct {
	SenderCompID    string
	TargetCompID    string
	HeartBtInt      int
	Account         string
	SenderSubID     string
	DeliverToCompID string
}

// Flatten collapses the global section and every session section into one key map. Sessions
// overlay the global section in session id order.
func Flatten(s *quickfix.Settings) map[string]string {
	values := make(map[string]string)
	if s == nil {
		return values
	}
	collect(values, s.GlobalSettings())

	sessions := s.SessionSettings()
	ids := make([]quickfix.SessionID, 0, len(sessions))
	for id := range sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	for _, id := range ids {
		collect(values, sessions[id])
	}
	return values
}

func collect(values map[string]string, ss *quickfix.SessionSettings) {
	if ss == nil {
		return
	}
	for _, k := range keys {
		if !ss.HasSetting(k) {
			continue
		}
		if v, err := ss.Setting(k); err == nil {
			values[k] = v
		}
	}
}

// Resolve types the flat key map. Missing keys are left empty.
func Resolve(values map[string]string) Settings {
	return Settings{
		SenderCompID:    values[SenderCompID],
		TargetCompID:    values[TargetCompID],
		HeartBtInt:      ParseHeartBtInt(values[HeartBtInt]),
		Account:         values[Account],
		SenderSubID:     values[SenderSubID],
		DeliverToCompID: values[DeliverToCompID],
	}
}

// ParseHeartBtInt returns the heartbeat interval in seconds, falling back to DefaultHeartBtInt.
func ParseHeartBtInt(raw string) int {
	if raw == "" {
		return DefaultHeartBtInt
	}
	// cast reads a leading zero as octal
	v, err := cast.ToIntE(strings.TrimLeft(strings.TrimSpace(raw), "0"))
	if err != nil || v <= 0 {
		return DefaultHeartBtInt
	}
	return v
}

// EngineSettings copies s for the engine, writing the resolved HeartBtInt into every session
// section so a missing or malformed value falls back to DefaultHeartBtInt. The copy shares the
// global section with s, which is not modified.
func EngineSettings(s *quickfix.Settings) (*quickfix.Settings, error) {
	out := quickfix.NewSettings()
	if s == nil {
		return out, nil
	}
	*out.GlobalSettings() = *s.GlobalSettings()
	for _, ss := range s.SessionSettings() {
		raw, _ := ss.Setting(HeartBtInt)
		ss.Set(HeartBtInt, strconv.Itoa(ParseHeartBtInt(raw)))
		if _, err := out.AddSession(ss); err != nil {
			return nil, err
		}
	}
	return out, nil
}
