package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/integration_test/fix_client/cmd"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/link"
)

func listenSignal(sig chan os.Signal, exit chan int) {
	for {
		s := <-sig
		switch s {
		case syscall.SIGINT:
			log.Print("SIGINT")
			exit <- 0
		case syscall.SIGTERM:
			log.Print("SIGTERM")
			exit <- 0
		default:
			log.Print("unknown signal")
			exit <- 1
		}
	}
}

// standalone Forexware console
func main() {
	mdCfg := flag.String("md", "conf/marketdata.cfg", "market data settings path")
	ordCfg := flag.String("ord", "conf/orders.cfg", "order routing settings path")
	symbols := flag.String("symbology", "", "symbol master path, symbols pass through when empty")
	flag.Parse()

	mdSettings, err := loadSettings(*mdCfg)
	if err != nil {
		log.Fatal(err)
	}
	ordSettings, err := loadSettings(*ordCfg)
	if err != nil {
		log.Fatal(err)
	}
	symbology, err := loadSymbology(*symbols)
	if err != nil {
		log.Fatal(err)
	}

	l := link.NewLink(mdSettings, ordSettings, symbology, link.InitiatorFactories())
	l.MarketData.AddListener(newBook())
	l.Orders.AddListener(blotter{})

	control := newControl(l)
	control.cmds["md"] = &cmd.MarketData{}
	control.cmds["unsub"] = &cmd.Unsubscribe{}
	control.cmds["nos"] = &cmd.Order{}
	control.cmds["cxl"] = &cmd.Cancel{}
	if err = l.Establish(); err != nil {
		log.Fatal(err)
	}

	go control.run(os.Stdin)

	c := make(chan os.Signal, 1)
	exit := make(chan int)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go listenSignal(c, exit)

	ex := <-exit
	if err = l.Close(); err != nil {
		log.Print(err)
	}
	os.Exit(ex)
}
