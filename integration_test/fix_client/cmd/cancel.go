package cmd

import (
	"log"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/link"
)

// Cancel cancels a working limit order
type Cancel struct {
}

// Execute reads the order to cancel from the keyboard
func (c *Cancel) Execute(keyboard <-chan string, l *link.Link) error {
	log.Print("-> Cancel")
	log.Print("Enter ClOrdID to cancel: ")
	clordid := <-keyboard
	log.Print("Enter symbol: ")
	security := domain.Security{Symbol: <-keyboard}
	side, err := readSide(keyboard)
	if err != nil {
		return err
	}
	qty, err := readDecimal(keyboard, "Enter qty: ")
	if err != nil {
		return err
	}
	o := domain.Order{ID: clordid, Side: side, Size: qty, Security: security, Provider: domain.Forexware, Kind: domain.Limit{}}
	return l.Orders.CancelLimitOrder(o)
}
