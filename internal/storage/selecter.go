package storage

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/pixil98/go-adventure/internal"
)

const (
	defaultSelectorRowLength = 80
	defaultSelectorRowCount  = 2
)

// ErrNothingToSelect is returned by Prompt when the store is empty.
var ErrNothingToSelect = errors.New("nothing to select")

type validatingSelectable interface {
	ValidatingSpec
	Selector() string
}

// SelectableStorer presents the records of a store as a numbered menu.
type SelectableStorer[T validatingSelectable] struct {
	Storer[T]

	options []option[T]
	output  []string
}

type option[T validatingSelectable] struct {
	id  string
	val T
}

func NewSelectableStorer[T validatingSelectable](st Storer[T]) *SelectableStorer[T] {
	s := &SelectableStorer[T]{Storer: st}

	for id, val := range s.GetAll() {
		s.options = append(s.options, option[T]{id: id, val: val})
	}
	slices.SortFunc(s.options, func(a, b option[T]) int {
		return cmp.Or(
			cmp.Compare(a.val.Selector(), b.val.Selector()),
			cmp.Compare(a.id, b.id),
		)
	})
	s.build()

	return s
}

func (s *SelectableStorer[T]) build() {
	colWidth := 1
	for _, v := range s.options {
		l := len(v.val.Selector()) + 7 // "nn. " prefix plus trailing gap
		if l > colWidth {
			colWidth = l
		}
	}

	// Fill columns first, left to right, growing the row count when the
	// options do not fit in the default number of rows.
	numCols := max(defaultSelectorRowLength/colWidth, 1)
	numRows := max((len(s.options)+numCols-1)/numCols, defaultSelectorRowCount)

	rows := make([]string, numRows)
	for i, v := range s.options {
		rows[i%numRows] += fmt.Sprintf("%2d. %-*s  ", i+1, colWidth-5, v.val.Selector())
	}

	s.output = rows
}

// Len reports the number of options on offer.
func (s *SelectableStorer[T]) Len() int {
	return len(s.options)
}

func (s *SelectableStorer[T]) Prompt(rw io.ReadWriter, prompt string) (string, error) {
	if len(s.options) == 0 {
		return "", ErrNothingToSelect
	}

	_, err := fmt.Fprintf(rw, "%s\n", prompt)
	if err != nil {
		return "", err
	}

	for _, str := range s.output {
		if len(str) > 0 {
			_, err = fmt.Fprintf(rw, "%s\n", str)
			if err != nil {
				return "", err
			}
		}
	}

	selection, err := internal.Prompt(rw, "Make your selection: ", internal.WithValidator(
		func(str string) (bool, string) {
			i, err := strconv.Atoi(str)
			if err != nil || s.Select(i) == "" {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	), internal.WithMaxTries(3))
	if err != nil {
		return "", err
	}

	i, err := strconv.Atoi(selection)
	if err != nil {
		return "", err
	}

	return s.Select(i), nil
}

// Select returns the id of the 1-based option i, or "" when out of range.
func (s *SelectableStorer[T]) Select(i int) string {
	if i < 1 || i > len(s.options) {
		return ""
	}
	return s.options[i-1].id
}
