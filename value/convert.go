package value

import (
	"fmt"
	"math"
)

/*
FromInterface takes a value as read from a database driver or a decoder and
returns the corresponding Value. Integers and floats become numeric values,
strings and byte slices categorical ones and nil an undefined one. NaN,
infinities and any other type result in an error.
*/
func FromInterface(i interface{}) (Value, error) {
	switch x := i.(type) {
	case nil:
		return NewUndefined(), nil
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return NewNumeric(float64(x)), nil
	case int32:
		return NewNumeric(float64(x)), nil
	case int64:
		return NewNumeric(float64(x)), nil
	case string:
		return NewCategorical(x), nil
	case []byte:
		return NewCategorical(string(x)), nil
	case Value:
		return x, nil
	}
	return NewUndefined(), fmt.Errorf("unsupported value %v of type %T", i, i)
}

func finite(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NewUndefined(), fmt.Errorf("unsupported non-finite number %v", f)
	}
	return NewNumeric(f), nil
}
