package cmd

import (
	"fmt"
	"log"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/domain"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/link"

	"github.com/shopspring/decimal"
)

func readDecimal(keyboard <-chan string, prompt string) (decimal.Decimal, error) {
	log.Print(prompt)
	d, err := decimal.NewFromString(<-keyboard)
	if err != nil {
		return decimal.Zero, fmt.Errorf("could not read %q: %w", prompt, err)
	}
	return d, nil
}

func readSide(keyboard <-chan string) (domain.Side, error) {
	log.Print("Enter side: ")
	switch str := <-keyboard; str {
	case "buy":
		return domain.Buy, nil
	case "sell":
		return domain.Sell, nil
	default:
		return 0, fmt.Errorf("side not recognized: %s", str)
	}
}

func readTimeInForce(keyboard <-chan string) domain.TimeInForce {
	log.Print("Enter time in force (day, gtc, ioc, fok): ")
	switch <-keyboard {
	case "gtc":
		return domain.GTC
	case "ioc":
		return domain.IOC
	case "fok":
		return domain.FOK
	}
	return domain.Day
}

// Order sends a market, limit or stop order
type Order struct {
}

// Execute reads an order from the keyboard and sends it with the command of its kind
func (o *Order) Execute(keyboard <-chan string, l *link.Link) error {
	log.Print("-> New Order Single")
	log.Print("Enter ClOrdID: ")
	clordid := <-keyboard
	log.Print("Enter symbol: ")
	security := domain.Security{Symbol: <-keyboard}
	log.Print("Enter order type: ")
	ordType := <-keyboard

	var px, stop decimal.Decimal
	var tif domain.TimeInForce
	var err error
	switch ordType {
	case "market":
	case "limit":
		if px, err = readDecimal(keyboard, "Enter px: "); err != nil {
			return err
		}
		tif = readTimeInForce(keyboard)
	case "stop":
		if stop, err = readDecimal(keyboard, "Enter stop px: "); err != nil {
			return err
		}
		tif = readTimeInForce(keyboard)
	default:
		return fmt.Errorf("order type not recognized: %s", ordType)
	}

	qty, err := readDecimal(keyboard, "Enter qty: ")
	if err != nil {
		return err
	}
	side, err := readSide(keyboard)
	if err != nil {
		return err
	}

	switch ordType {
	case "limit":
		return l.Orders.SendLimitOrder(domain.NewLimitOrder(clordid, side, qty, px, tif, security, domain.Forexware))
	case "stop":
		return l.Orders.SendStopOrder(domain.NewStopOrder(clordid, side, qty, stop, tif, security, domain.Forexware))
	}
	return l.Orders.SendMarketOrder(domain.NewMarketOrder(clordid, side, qty, security, domain.Forexware))
}
