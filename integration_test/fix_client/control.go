package main

import (
	"bufio"
	"io"
	"log"
	"strings"

	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/integration_test/fix_client/cmd"
	"github.com/SudarsanSridharan16/tradesharp-forexware-connector/link"
)

type control struct {
	link     *link.Link
	keyboard chan string
	cmds     map[string]cmd.Cmd
}

func newControl(l *link.Link) *control {
	return &control{
		link: l,
		cmds: make(map[string]cmd.Cmd),
	}
}

func (c *control) read(in io.Reader) {
	reader := bufio.NewReader(in)
	for {
		ln, err := reader.ReadString('\n')
		if ln = strings.TrimSpace(ln); ln != "" {
			c.keyboard <- ln
		}
		if err != nil {
			close(c.keyboard)
			return
		}
	}
}

func (c *control) run(in io.Reader) {
	c.keyboard = make(chan string)
	go c.read(in)
	log.Print("Enter command: ")
	for ln := range c.keyboard {
		command, ok := c.cmds[ln]
		if !ok {
			log.Printf("command not recognized: %s", ln)
		} else if err := command.Execute(c.keyboard, c.link); err != nil {
			log.Printf("%s: %s", ln, err.Error())
		}
		log.Print("Enter command: ")
	}
}
