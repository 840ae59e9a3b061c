package domain

import "fmt"

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName maps a month number (1-12) to its English name.
func MonthName(n int) (string, error) {
	if n < 1 || n > 12 {
		return "", fmt.Errorf("month number %d out of range 1-12", n)
	}
	return monthNames[n-1], nil
}

// MonthOrdering is an explicit total order over month names. It is built
// once from the session data and passed to every sort and group operation.
type MonthOrdering struct {
	names []string
	index map[string]int
}

// NewMonthOrdering builds an ordering from names in first-seen order.
// Duplicates after the first occurrence are ignored.
func NewMonthOrdering(names []string) MonthOrdering {
	o := MonthOrdering{index: make(map[string]int, len(names))}
	for _, n := range names {
		if _, seen := o.index[n]; seen {
			continue
		}
		o.index[n] = len(o.names)
		o.names = append(o.names, n)
	}
	return o
}

// Index returns the position of name in the ordering.
func (o MonthOrdering) Index(name string) (int, bool) {
	i, ok := o.index[name]
	return i, ok
}

// Rank is Index with -1 for unknown names.
func (o MonthOrdering) Rank(name string) int {
	if i, ok := o.index[name]; ok {
		return i
	}
	return -1
}

// Contains reports whether name is part of the ordering.
func (o MonthOrdering) Contains(name string) bool {
	_, ok := o.index[name]
	return ok
}

// Names returns a copy of the ordered month names.
func (o MonthOrdering) Names() []string {
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

// Len returns the number of months in the ordering.
func (o MonthOrdering) Len() int {
	return len(o.names)
}
