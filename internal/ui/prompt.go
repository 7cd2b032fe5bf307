package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// UI abstracts line-based operator interaction so flows can be driven by
// scripted input in tests.
type UI interface {
	Println(a ...any)
	Printf(format string, a ...any)
	Ask(prompt string) (string, error)
}

type lineUI struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineUI returns a UI reading answers from in and writing to out.
func NewLineUI(in io.Reader, out io.Writer) UI {
	return &lineUI{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (u *lineUI) Println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

func (u *lineUI) Printf(format string, a ...any) {
	fmt.Fprintf(u.out, format, a...)
}

// Ask prints prompt and returns the answer with only the line terminator
// removed. A final line without a newline is still returned; io.EOF is only
// reported when nothing was typed.
func (u *lineUI) Ask(prompt string) (string, error) {
	fmt.Fprint(u.out, prompt)
	text, err := u.in.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	return strings.TrimRight(text, "\r\n"), nil
}
