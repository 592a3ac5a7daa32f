/*
Package value provides Value, the content of a cell on a dataset row: either
undefined, a number or a category.
*/
package value

import (
	"strconv"
)

/*
Kind identifies the sort of content a Value holds
*/
type Kind uint8

const (
	// Undefined is the kind of a missing value
	Undefined Kind = iota
	// Numeric is the kind of values of continuous features
	Numeric
	// Categorical is the kind of values of discrete features
	Categorical
)

/*
Value is a comparable sum type holding either nothing, a float64 or a string.
Two values are equal when they have the same kind and content, so Value can be
used as map key and with the functions of the impurity package.
*/
type Value struct {
	kind Kind
	num  float64
	str  string
}

/*
Row is an ordered sequence of values, one per feature of a dataset.
*/
type Row []Value

// NewUndefined returns an undefined value
func NewUndefined() Value {
	return Value{}
}

// NewNumeric returns a numeric value holding f
func NewNumeric(f float64) Value {
	return Value{kind: Numeric, num: f}
}

// NewCategorical returns a categorical value holding s
func NewCategorical(s string) Value {
	return Value{kind: Categorical, str: s}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// Defined tells whether the value holds anything
func (v Value) Defined() bool {
	return v.kind != Undefined
}

/*
Float returns the number held by a numeric value and true, or 0 and false
for values of any other kind.
*/
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == Numeric
}

/*
Category returns the string held by a categorical value and true, or an empty
string and false for values of any other kind.
*/
func (v Value) Category() (string, bool) {
	return v.str, v.kind == Categorical
}

/*
Interface returns the content of the value as a float64, a string, or nil
for undefined values.
*/
func (v Value) Interface() interface{} {
	switch v.kind {
	case Numeric:
		return v.num
	case Categorical:
		return v.str
	}
	return nil
}

/*
String returns the content of the value as it would be written on a CSV
file: undefined values are represented by '?'.
*/
func (v Value) String() string {
	switch v.kind {
	case Numeric:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case Categorical:
		return v.str
	}
	return "?"
}

/*
Less reports whether a sorts before b. Undefined values go first, then
numeric values in increasing order, then categorical values in lexical order.
*/
func Less(a, b Value) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	switch a.kind {
	case Numeric:
		return a.num < b.num
	case Categorical:
		return a.str < b.str
	}
	return false
}

// MarshalYAML represents the value with its content
func (v Value) MarshalYAML() (interface{}, error) {
	return v.Interface(), nil
}
