package feature

import (
	"fmt"
	"math"
	"strings"

	"github.com/pbanos/impurity/value"
)

/*
Criterion represents a constraint on a feature, the test that sends a row
to the left side of a split when satisfied and to the right side otherwise.

Its SatisfiedBy method takes the value of the row for the feature and returns
a boolean indicating if it satisfies the criterion.

Its Feature method returns the feature on which the criterion is applied.
*/
type Criterion interface {
	Feature() Feature
	SatisfiedBy(value.Value) bool
}

/*
ContinuousCriterion represents a constraint on a continuous feature, a
range that delimits which values it may take. The interval can be open on one end,
thus representing -Infinity or +Infinity

Its Interval method returns the start and end of the interval to which the
feature is constrained as a pair of float64 values.
*/
type ContinuousCriterion interface {
	Criterion
	Interval() (float64, float64)
}

/*
DiscreteCriterion represents a constraint on a discrete feature, a
value it may take.

Its Value method returns the value to which the feature is constrained as
a string.
*/
type DiscreteCriterion interface {
	Criterion
	Value() string
}

type continuousCriterion struct {
	feature *ContinuousFeature
	a, b    float64
}

type discreteCriterion struct {
	feature *DiscreteFeature
	value   string
}

/*
NewContinuousCriterion takes a ContinuousFeature feature and a pair of
float64 values indicating the start and the end of an interval and return a
ContinuousCriterion with the feature and interval. The interval can be
open on any end by providing -Inf and/or +Inf.
*/
func NewContinuousCriterion(feature *ContinuousFeature, a float64, b float64) ContinuousCriterion {
	return &continuousCriterion{feature, a, b}
}

/*
NewDiscreteCriterion takes a DiscreteFeature feature and one of its values
and returns a DiscreteCriterion satisfied only by that value.
*/
func NewDiscreteCriterion(feature *DiscreteFeature, value string) DiscreteCriterion {
	return &discreteCriterion{feature, value}
}

/*
ParseCriterion takes a slice of features and an expression and returns the
criterion it describes. Expressions for discrete features have the form
'name=value'; expressions for continuous features have the form 'name<x' or
'name>=x'.
*/
func ParseCriterion(features []Feature, expr string) (Criterion, error) {
	i := strings.IndexAny(expr, "<>=")
	if i < 0 {
		return nil, fmt.Errorf("parsing criterion %q: expected one of '=', '<' or '>='", expr)
	}
	op := expr[i : i+1]
	if op == ">" {
		if !strings.HasPrefix(expr[i:], ">=") {
			return nil, fmt.Errorf("parsing criterion %q: expected one of '=', '<' or '>='", expr)
		}
		op = ">="
	}
	name, operand := strings.TrimSpace(expr[:i]), strings.TrimSpace(expr[i+len(op):])
	f, ok := ByName(features, name)
	if !ok {
		return nil, fmt.Errorf("parsing criterion %q: unknown feature %s", expr, name)
	}
	switch tf := f.(type) {
	case *DiscreteFeature:
		if op != "=" {
			return nil, fmt.Errorf("parsing criterion %q: discrete feature %s only supports '='", expr, name)
		}
		v, err := tf.Parse(operand)
		if err != nil || !v.Defined() {
			return nil, fmt.Errorf("parsing criterion %q: invalid value %s for feature %s", expr, operand, name)
		}
		return NewDiscreteCriterion(tf, operand), nil
	case *ContinuousFeature:
		v, err := tf.Parse(operand)
		if err != nil || !v.Defined() {
			return nil, fmt.Errorf("parsing criterion %q: invalid threshold %s for feature %s", expr, operand, name)
		}
		threshold, _ := v.Float()
		switch op {
		case "<":
			return NewContinuousCriterion(tf, math.Inf(-1), threshold), nil
		case ">=":
			return NewContinuousCriterion(tf, threshold, math.Inf(1)), nil
		}
		return nil, fmt.Errorf("parsing criterion %q: continuous feature %s only supports '<' and '>='", expr, name)
	}
	return nil, fmt.Errorf("parsing criterion %q: unsupported feature type %T", expr, f)
}

/*
Feature returns the feature to which the constraint applies.
*/
func (cfc *continuousCriterion) Feature() Feature {
	return cfc.feature
}

/*
SatisfiedBy receives a value as parameter and returns a boolean indicating if
it satisfies the criterion. Specifically, it returns false if the value is not
numeric, true if it is in the range defined by the criterion; and false
otherwise.
*/
func (cfc *continuousCriterion) SatisfiedBy(v value.Value) bool {
	floatVal, ok := v.Float()
	if !ok {
		return false
	}
	return (math.IsInf(cfc.a, 0) || cfc.a <= floatVal) && (math.IsInf(cfc.b, 0) || floatVal < cfc.b)
}

func (cfc *continuousCriterion) Interval() (float64, float64) {
	return cfc.a, cfc.b
}

func (cfc *continuousCriterion) String() string {
	if math.IsInf(cfc.a, 0) {
		return fmt.Sprintf("%s < %g", cfc.feature.Name(), cfc.b)
	}
	if math.IsInf(cfc.b, 0) {
		return fmt.Sprintf("%g <= %s", cfc.a, cfc.feature.Name())
	}
	return fmt.Sprintf("%g <= %s < %g", cfc.a, cfc.feature.Name(), cfc.b)
}

/*
Feature returns the feature to which the constraint applies.
*/
func (dfc *discreteCriterion) Feature() Feature {
	return dfc.feature
}

/*
SatisfiedBy receives a value as parameter and returns a boolean indicating if
it is the categorical value of the criterion.
*/
func (dfc *discreteCriterion) SatisfiedBy(v value.Value) bool {
	s, ok := v.Category()
	return ok && s == dfc.value
}

func (dfc *discreteCriterion) Value() string {
	return dfc.value
}

func (dfc *discreteCriterion) String() string {
	return fmt.Sprintf("%s is %s", dfc.feature.Name(), dfc.value)
}
