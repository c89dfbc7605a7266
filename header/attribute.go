package header

import "strings"

// Attribute is a named header value. A field that appears more than once in
// a header is a single Attribute holding each value in the order found.
//
// The methods are safe to call on a nil *Attribute, which behaves as an
// attribute with no values. This is what Header.Get returns for a missing
// field.
type Attribute struct {
	name   string
	key    string
	values []string
	param  bool
}

// NewAttribute builds an attribute. Building one with no values is allowed.
func NewAttribute(name string, values ...string) *Attribute {
	return &Attribute{
		name:   name,
		key:    Normalize(name),
		values: append([]string(nil), values...),
	}
}

// Name returns the name as it was written in the header.
func (a *Attribute) Name() string {
	if a == nil {
		return ""
	}
	return a.name
}

// Key returns the normalized name.
func (a *Attribute) Key() string {
	if a == nil {
		return ""
	}
	return a.key
}

// IsParameter is true for attributes lifted out of the parameters of a
// structured field such as the charset of Content-Type.
func (a *Attribute) IsParameter() bool {
	return a != nil && a.param
}

// Values returns a copy of the values.
func (a *Attribute) Values() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.values...)
}

// Len returns the number of values.
func (a *Attribute) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// First returns the first value or the empty string.
func (a *Attribute) First() string {
	if a.Len() == 0 {
		return ""
	}
	return a.values[0]
}

// Last returns the last value or the empty string.
func (a *Attribute) Last() string {
	if a.Len() == 0 {
		return ""
	}
	return a.values[len(a.values)-1]
}

// Contains is true if any value equals v.
func (a *Attribute) Contains(v string) bool {
	if a == nil {
		return false
	}
	for _, have := range a.values {
		if have == v {
			return true
		}
	}
	return false
}

// String joins the values with ", ".
func (a *Attribute) String() string {
	if a == nil {
		return ""
	}
	return strings.Join(a.values, ", ")
}

// add appends v. When strict is set, a value already present is skipped.
func (a *Attribute) add(v string, strict bool) {
	if strict && a.Contains(v) {
		return
	}
	a.values = append(a.values, v)
}

// Normalize turns a field name into its lookup key.
func Normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}
