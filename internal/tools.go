package internal

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var ErrTooManyTries = errors.New("too many tries")

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// LineReader is implemented by readers that already buffer their input,
// such as *bufio.Reader. Prompt reads straight from one so that input
// typed ahead of the prompt is not lost between calls.
type LineReader interface {
	ReadString(delim byte) (string, error)
}

func Prompt(rw io.ReadWriter, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	lr, ok := rw.(LineReader)
	if !ok {
		lr = bufio.NewReader(rw)
	}

	tries := 0
	for {
		_, err := rw.Write([]byte(prompt))
		if err != nil {
			return "", err
		}

		input, err := readLine(lr)
		if err != nil {
			return "", err
		}

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				rw.Write([]byte(msg))

				tries++
				if config.tries > 0 && config.tries == tries {
					rw.Write([]byte("too many tries\n"))
					return "", ErrTooManyTries
				}

				continue
			}
		}

		return input, nil
	}
}

// readLine returns the next line without its line ending. A final line
// missing its newline is still returned.
func readLine(lr LineReader) (string, error) {
	line, err := lr.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func PromptYN(rw io.ReadWriter, prompt string) (bool, error) {
	str, err := Prompt(rw, prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(strings.TrimSpace(str)) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(str)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

