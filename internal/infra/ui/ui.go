// Where: internal/infra/ui/ui.go
// What: UserInterface adapter used by use cases.
// Why: Give use cases a small output surface that tests can capture.
package ui

import (
	"fmt"
	"io"
)

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers used by use cases.
type UserInterface interface {
	Banner(title, version string)
	Info(msg string)
	Warn(msg string)
	Success(msg string)
	Block(emoji, title string, rows []KeyValue)
	List(emoji, title string, lines []string)
}

// NewConsoleUI returns a UserInterface writing to out.
func NewConsoleUI(out io.Writer, emojiEnabled bool) UserInterface {
	return consoleUI{
		out:     out,
		console: NewWithEmoji(out, emojiEnabled),
	}
}

type consoleUI struct {
	out     io.Writer
	console *Console
}

func (c consoleUI) Banner(title, version string) {
	c.console.Banner(title, version)
}

func (c consoleUI) Info(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c consoleUI) Warn(msg string) {
	c.console.Warn(msg)
}

func (c consoleUI) Success(msg string) {
	c.console.Success(msg)
}

func (c consoleUI) Block(emoji, title string, rows []KeyValue) {
	c.console.BlockStart(emoji, title)
	for _, kv := range rows {
		c.console.Item(kv.Key, kv.Value)
	}
	c.console.BlockEnd()
}

func (c consoleUI) List(emoji, title string, lines []string) {
	c.console.BlockStart(emoji, title)
	for _, line := range lines {
		c.console.ItemPlain(line)
	}
	c.console.BlockEnd()
}

// NewPlainUI returns a UserInterface that prints status lines without
// prefixes, for command-level messages and errors.
func NewPlainUI(out io.Writer) UserInterface {
	return plainUI{consoleUI: consoleUI{out: out, console: NewWithEmoji(out, false)}}
}

type plainUI struct {
	consoleUI
}

func (p plainUI) Warn(msg string) {
	fmt.Fprintln(p.out, msg)
}

func (p plainUI) Success(msg string) {
	fmt.Fprintln(p.out, msg)
}
