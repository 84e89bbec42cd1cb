package main

import (
	"os"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/service/symbol"

	"github.com/quickfixgo/quickfix"
)

func loadSettings(file string) (*quickfix.Settings, error) {
	cfg, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer cfg.Close()
	return quickfix.ParseSettings(cfg)
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
