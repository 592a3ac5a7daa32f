package value

import "encoding/json"

// MarshalJSON represents the value as a JSON number, string or null
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

/*
UnmarshalJSON takes a JSON number, string or null and sets the value to the
corresponding numeric, categorical or undefined content.
*/
func (v *Value) UnmarshalJSON(data []byte) error {
	var i interface{}
	if err := json.Unmarshal(data, &i); err != nil {
		return err
	}
	nv, err := FromInterface(i)
	if err != nil {
		return err
	}
	*v = nv
	return nil
}
