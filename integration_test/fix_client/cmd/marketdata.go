package cmd

import (
	"log"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/link"
)

func requestID(symbol string) string {
	return "req-" + symbol
}

// MarketData subscribes to a symbol
type MarketData struct {
}

// Execute subscribes to the symbol read from the keyboard
func (m *MarketData) Execute(keyboard <-chan string, l *link.Link) error {
	log.Print("-> Market Data Request")
	log.Print("Enter symbol: ")
	symbol := <-keyboard
	return l.MarketData.SubscribeTickData(domain.Subscribe{ID: requestID(symbol), Security: domain.Security{Symbol: symbol}})
}

// Unsubscribe cancels a subscription made by MarketData
type Unsubscribe struct {
}

// Execute unsubscribes from the symbol read from the keyboard
func (u *Unsubscribe) Execute(keyboard <-chan string, l *link.Link) error {
	log.Print("-> Market Data Unsubscribe")
	log.Print("Enter symbol: ")
	symbol := <-keyboard
	return l.MarketData.UnsubscribeTickData(domain.Unsubscribe{ID: requestID(symbol), Security: domain.Security{Symbol: symbol}})
}
