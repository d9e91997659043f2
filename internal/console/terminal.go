package console

import (
	"bufio"
	"context"
	"io"
)

// terminal turns a stream of input lines into an io.ReadWriter that the
// prompt helpers can read from. Lines are scanned on their own goroutine
// so a blocked read never outlives ctx.
type terminal struct {
	ctx     context.Context
	lines   <-chan string
	out     io.Writer
	pending []byte
}

func newTerminal(ctx context.Context, in io.Reader, out io.Writer) *terminal {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return &terminal{ctx: ctx, lines: lines, out: out}
}

// ReadString returns the next line including its newline. delim is
// always treated as a newline.
func (t *terminal) ReadString(byte) (string, error) {
	if len(t.pending) > 0 {
		s := string(t.pending)
		t.pending = nil
		return s, nil
	}

	select {
	case <-t.ctx.Done():
		return "", t.ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return line + "\n", nil
	}
}

func (t *terminal) Read(p []byte) (int, error) {
	if len(t.pending) == 0 {
		line, err := t.ReadString('\n')
		if err != nil {
			return 0, err
		}
		t.pending = []byte(line)
	}
	n := copy(p, t.pending)
	t.pending = t.pending[n:]
	return n, nil
}

func (t *terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}
