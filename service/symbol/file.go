package symbol

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// mapping holds both directions of one counterparty's symbols
type mapping struct {
	fromForexware map[string]string
	toForexware   map[string]string
}

func newMapping() *mapping {
	return &mapping{fromForexware: make(map[string]string), toForexware: make(map[string]string)}
}

func (m *mapping) add(fxw, sym string) error {
	if prev, ok := m.fromForexware[fxw]; ok {
		return fmt.Errorf("Forexware symbol %q already mapped to %q", fxw, prev)
	}
	if prev, ok := m.toForexware[sym]; ok {
		return fmt.Errorf("symbol %q already mapped to Forexware symbol %q", sym, prev)
	}
	m.fromForexware[fxw] = sym
	m.toForexware[sym] = fxw
	return nil
}

// FileSymbology parses a simple KVP symbology mapping.  Counterparty names are wrapped with [square brackets] and prefix a symbol mapping set.
// L-values are Forexware symbols, R-values are domain symbols. Blank lines and lines starting with # are skipped.
// Each symbol appears at most once on either side of a counterparty's set.
// ex:
// [FXW]
// EURUSD.=EURUSD
type FileSymbology struct {
	lock           sync.RWMutex
	counterparties map[string]*mapping
}

func parse(r io.Reader) (map[string]*mapping, error) {
	counterparties := make(map[string]*mapping)
	counterparty := ""
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			counterparty = line[1 : len(line)-1]
			continue
		}
		kv := strings.SplitN(line, "=", 2)
		if len(kv) < 2 {
			continue
		}
		m, ok := counterparties[counterparty]
		if !ok {
			m = newMapping()
			counterparties[counterparty] = m
		}
		if err := m.add(strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])); err != nil {
			return nil, fmt.Errorf("line %d, counterparty %q: %w", n, counterparty, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return counterparties, nil
}

// NewFileSymbology loads a symbology file
func NewFileSymbology(path string) (*FileSymbology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	counterparties, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &FileSymbology{counterparties: counterparties}, nil
}

func (f *FileSymbology) lookup(counterparty string) (*mapping, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	m, ok := f.counterparties[counterparty]
	if !ok {
		return nil, fmt.Errorf("could not find counterparty: %s", counterparty)
	}
	return m, nil
}

// ToForexware finds the Forexware symbol mapped to a domain symbol
func (f *FileSymbology) ToForexware(symbol, counterparty string) (string, error) {
	m, err := f.lookup(counterparty)
	if err != nil {
		return "", err
	}
	fxw, ok := m.toForexware[symbol]
	if !ok {
		return "", fmt.Errorf("could not find Forexware symbol mapping \"%s\" for counterparty \"%s\"", symbol, counterparty)
	}
	return fxw, nil
}

// FromForexware finds the domain symbol mapped to a Forexware symbol
func (f *FileSymbology) FromForexware(symbol, counterparty string) (string, error) {
	m, err := f.lookup(counterparty)
	if err != nil {
		return "", err
	}
	sym, ok := m.fromForexware[symbol]
	if !ok {
		return "", fmt.Errorf("could not find symbol \"%s\" for counterparty \"%s\"", symbol, counterparty)
	}
	return sym, nil
}
