package symbol

// PassthroughSymbology passes symbology through without converting it
type PassthroughSymbology struct{}

// NewPassthroughSymbology creates a new passthrough symbology object
func NewPassthroughSymbology() Symbology {
	return &PassthroughSymbology{}
}

// ToForexware passes symbology through without conversion
func (p *PassthroughSymbology) ToForexware(symbol, counterparty string) (string, error) {
	return symbol, nil
}

// FromForexware passes symbology through without conversion
func (p *PassthroughSymbology) FromForexware(symbol, counterparty string) (string, error) {
	return symbol, nil
}
