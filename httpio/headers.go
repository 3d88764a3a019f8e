package httpio

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// MultiValuePolicy decides how a header holding several values is rendered.
type MultiValuePolicy int

const (
	// LinePerValue renders one "Name: value" line for every stored value.
	LinePerValue MultiValuePolicy = iota
	// JoinValues renders a single line with the values joined by ", ".
	// Set-Cookie cannot be joined and always gets one line per value.
	JoinValues
)

func (p MultiValuePolicy) String() string {
	switch p {
	case LinePerValue:
		return "lines"
	case JoinValues:
		return "join"
	default:
		return fmt.Sprintf("MultiValuePolicy(%d)", int(p))
	}
}

// ParseMultiValuePolicy maps "lines" and "join" to their policy. An empty
// name selects LinePerValue.
func ParseMultiValuePolicy(name string) (MultiValuePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lines":
		return LinePerValue, nil
	case "join":
		return JoinValues, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// Headers is an ordered collection of header values. Names are case-sensitive
// and keep the position of their first insertion. The zero value is ready to use.
type Headers struct {
	names  []string
	values map[string][]string
}

// Set replaces every value stored under name with value.
func (h *Headers) Set(name, value string) {
	if h.values == nil {
		h.values = make(map[string][]string)
	}

	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = []string{value}
}

// Add appends value to the values stored under name.
func (h *Headers) Add(name, value string) {
	if h.values == nil {
		h.values = make(map[string][]string)
	}

	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = append(h.values[name], value)
}

// Get returns the first value stored under name.
//
// If the header does not exist, an error is returned.
func (h *Headers) Get(name string) (string, error) {
	values, ok := h.values[name]
	if !ok || len(values) == 0 {
		return "", ErrNotExist
	}

	return values[0], nil
}

// Values returns a copy of every value stored under name.
func (h *Headers) Values(name string) []string {
	return slices.Clone(h.values[name])
}

// Has reports whether name holds at least one value.
func (h *Headers) Has(name string) bool {
	return len(h.values[name]) > 0
}

// Del removes a header.
//
// If the header does not exist, an error is returned.
func (h *Headers) Del(name string) error {
	if _, ok := h.values[name]; !ok {
		return ErrNotExist
	}

	delete(h.values, name)
	h.names = slices.DeleteFunc(h.names, func(n string) bool { return n == name })
	return nil
}

// Len returns the number of distinct header names.
func (h *Headers) Len() int {
	return len(h.names)
}

// Names returns the header names in insertion order.
func (h *Headers) Names() []string {
	return slices.Clone(h.names)
}

// All yields each header name with its values, in insertion order.
func (h *Headers) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, name := range h.names {
			if !yield(name, h.values[name]) {
				return
			}
		}
	}
}

// Lines yields the "Name: value" lines according to policy.
func (h *Headers) Lines(policy MultiValuePolicy) iter.Seq[string] {
	return func(yield func(string) bool) {
		for name, values := range h.All() {
			if policy == JoinValues && !strings.EqualFold(name, "Set-Cookie") {
				if !yield(name + ": " + strings.Join(values, ", ")) {
					return
				}
				continue
			}

			for _, value := range values {
				if !yield(name + ": " + value) {
					return
				}
			}
		}
	}
}
