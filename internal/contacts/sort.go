package contacts

import (
	"slices"
	"strings"
)

// SortField chooses the key used to order contacts.
type SortField int

const (
	ByLastName SortField = iota
	ByFirstName
)

func (f SortField) String() string {
	if f == ByFirstName {
		return "first name"
	}
	return "last name"
}

// Sort returns a sorted copy of list. Comparison ignores case and is stable,
// falling back to the other name when the primary keys are equal.
func Sort(list []Contact, field SortField) []Contact {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b Contact) int {
		pa, sa := keys(a, field)
		pb, sb := keys(b, field)
		if c := strings.Compare(pa, pb); c != 0 {
			return c
		}
		return strings.Compare(sa, sb)
	})
	return out
}

func keys(c Contact, field SortField) (primary, secondary string) {
	first, last := strings.ToLower(c.FirstName), strings.ToLower(c.LastName)
	if field == ByFirstName {
		return first, last
	}
	return last, first
}
