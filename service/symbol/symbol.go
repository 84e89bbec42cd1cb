package symbol

// Symbology resolves domain symbols to & from Forexware wire symbols per counterparty
type Symbology interface {
	ToForexware(symbol, counterparty string) (string, error)
	FromForexware(symbol, counterparty string) (string, error)
}
