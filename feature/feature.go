/*
Package feature provides the description of the columns of a dataset: their
names and the values they may take.
*/
package feature

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pbanos/impurity/value"
)

/*
UndefinedValue is the string representation of an undefined value for any
feature.
*/
const UndefinedValue = "?"

/*
Feature represents a property that can be observed

Its Parse method takes the string representation of a value for the feature
and returns the value or an error if the string is not a valid value.

Its Valid method returns true and nil when the value can be taken by the
feature, false and an error describing the reason otherwise.
*/
type Feature interface {
	Name() string
	Parse(string) (value.Value, error)
	Valid(value.Value) (bool, error)
}

/*
DiscreteFeature represents a property that can be observed and that can only
take a value among a finite set.
*/
type DiscreteFeature struct {
	name            string
	availableValues []string
}

/*
ContinuousFeature represents a property that can be observed and that can take
a numeric value
*/
type ContinuousFeature struct {
	name string
}

/*
NewDiscreteFeature takes a name string and a slice of available value strings
and returns a discrete feature with the given names and available values.
*/
func NewDiscreteFeature(name string, availableValues []string) *DiscreteFeature {
	return &DiscreteFeature{name, availableValues}
}

/*
NewContinuousFeature takes a name string and returns a continuous feature with
the given name.
*/
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

/*
Parse takes a string and returns the categorical value for it, or an undefined
value for UndefinedValue. An error is returned if the string is not one of the
available values of the feature.
*/
func (df *DiscreteFeature) Parse(s string) (value.Value, error) {
	if s == UndefinedValue {
		return value.NewUndefined(), nil
	}
	v := value.NewCategorical(s)
	if _, err := df.Valid(v); err != nil {
		return value.NewUndefined(), err
	}
	return v, nil
}

/*
Valid receives a value and returns a boolean and an error. When the value is
undefined or a categorical value included in the available values of the
feature, the method returns true and nil. Otherwise it returns false and an
error describing the reason.
*/
func (df *DiscreteFeature) Valid(v value.Value) (bool, error) {
	if !v.Defined() {
		return true, nil
	}
	vs, ok := v.Category()
	if !ok {
		return false, fmt.Errorf("discrete feature %s expects categorical value, got %v", df.Name(), v)
	}
	for _, av := range df.availableValues {
		if av == vs {
			return true, nil
		}
	}
	return false, fmt.Errorf("discrete feature %s got unknown value %s", df.Name(), vs)
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

func (df *DiscreteFeature) String() string {
	return df.name
}

/*
Name returns a string with the name of the feature
*/
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

/*
Parse takes a string and returns the numeric value for it, or an undefined
value for UndefinedValue. An error is returned if the string is not a finite
number.
*/
func (cf *ContinuousFeature) Parse(s string) (value.Value, error) {
	if s == UndefinedValue {
		return value.NewUndefined(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return value.NewUndefined(), fmt.Errorf("continuous feature %s: converting %s to float64: %v", cf.Name(), s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return value.NewUndefined(), fmt.Errorf("continuous feature %s: %s is not a finite number", cf.Name(), s)
	}
	return value.NewNumeric(f), nil
}

/*
Valid receives a value and returns a boolean and an error. When the value is
undefined or a finite number it returns true and nil, otherwise it returns
false and an error describing the reason.
*/
func (cf *ContinuousFeature) Valid(v value.Value) (bool, error) {
	if !v.Defined() {
		return true, nil
	}
	f, ok := v.Float()
	if !ok {
		return false, fmt.Errorf("continuous feature %s expects numeric value, got %v", cf.Name(), v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false, fmt.Errorf("continuous feature %s expects a finite number, got %v", cf.Name(), f)
	}
	return true, nil
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}

/*
ByName returns the feature with the given name in the slice and true, or nil
and false if there is none.
*/
func ByName(features []Feature, name string) (Feature, bool) {
	for _, f := range features {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}
