// Package difflib computes line differences with
// github.com/pmezard/go-difflib.
package difflib

import (
	"strings"

	"github.com/fwojciec/pagewatch"
	"github.com/pmezard/go-difflib/difflib"
)

// Ensure Differ implements pagewatch.Differ at compile time.
var _ pagewatch.Differ = (*Differ)(nil)

// Differ renders the changed lines between two texts.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff implements pagewatch.Differ. Replaced blocks contribute their old
// lines followed by their new lines. Trailing whitespace is ignored.
func (d *Differ) Diff(previous, current string, filter pagewatch.DiffFilter) string {
	a := lines(previous)
	b := lines(current)

	var out []string
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'r':
			if filter.Replaced {
				out = append(out, a[op.I1:op.I2]...)
				out = append(out, b[op.J1:op.J2]...)
			}
		case 'd':
			if filter.Removed {
				out = append(out, a[op.I1:op.I2]...)
			}
		case 'i':
			if filter.Added {
				out = append(out, b[op.J1:op.J2]...)
			}
		}
	}
	return strings.Join(out, "\n")
}

func lines(text string) []string {
	ls := pagewatch.SplitLines(text)
	for i, l := range ls {
		ls[i] = strings.TrimRight(l, " \t")
	}
	return ls
}
