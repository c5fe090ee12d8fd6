package main

import (
	"fmt"
	"io"
	"os"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// Console prints status lines, coloured unless NO_COLOR is set
type Console struct {
	out   io.Writer
	color bool
}

func NewConsole(out io.Writer) *Console {
	_, noColor := os.LookupEnv("NO_COLOR")
	return &Console{out: out, color: !noColor}
}

func (c *Console) line(color, mark, format string, a ...interface{}) {
	msg := mark + " " + fmt.Sprintf(format, a...)
	if c.color {
		msg = color + msg + colorReset
	}
	fmt.Fprintln(c.out, msg)
}

func (c *Console) Info(format string, a ...interface{}) {
	c.line(colorBlue, "ℹ", format, a...)
}

func (c *Console) Success(format string, a ...interface{}) {
	c.line(colorGreen, "✓", format, a...)
}

func (c *Console) Warning(format string, a ...interface{}) {
	c.line(colorYellow, "⚠", format, a...)
}

func (c *Console) Error(format string, a ...interface{}) {
	c.line(colorRed, "✗", format, a...)
}

func (c *Console) Header(title string) {
	fmt.Fprintln(c.out)
	c.line(colorYellow, "===", "%s ===", title)
}
