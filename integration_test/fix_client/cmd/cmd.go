package cmd

import (
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/link"
)

// Cmd reads its arguments from the keyboard and drives the adapters
type Cmd interface {
	Execute(keyboard <-chan string, l *link.Link) error
}
