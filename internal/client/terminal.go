package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"sync"
)

// TerminalDisplay печатает состояния экрана построчно.
type TerminalDisplay struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminalDisplay(out io.Writer) *TerminalDisplay {
	return &TerminalDisplay{out: out}
}

func (d *TerminalDisplay) Render(v View) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case v.LoadingVisible:
		fmt.Fprintln(d.out, "Shortening...")
	case v.SuccessVisible:
		fmt.Fprintf(d.out, "Short URL: %s\n", v.LinkHref)
	case v.ErrorVisible:
		fmt.Fprintf(d.out, "Error: %s\n", v.ErrorText)
	}
}

func (d *TerminalDisplay) SetCopyLabel(label string) {
	if label != CopiedLabel {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(d.out, label)
}

// OSC52Clipboard копирует текст через escape-последовательность OSC 52,
// которую понимает большинство эмуляторов терминала, в том числе по SSH.
type OSC52Clipboard struct {
	out io.Writer
}

func NewOSC52Clipboard(out io.Writer) *OSC52Clipboard {
	return &OSC52Clipboard{out: out}
}

func (c *OSC52Clipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.out, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
	return err
}

// WriterNotifier печатает уведомление в поток ошибок.
type WriterNotifier struct {
	out io.Writer
}

func NewWriterNotifier(out io.Writer) *WriterNotifier {
	return &WriterNotifier{out: out}
}

func (n *WriterNotifier) Alert(message string) {
	fmt.Fprintf(n.out, "! %s\n", message)
}
