/*
Package yaml provides methods to parse feature.Feature specifications
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/pbanos/impurity/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadFeatures takes a slice of bytes with a feature specification in YML and
returns a slice of features parsed from it or an error.
The YML is expected to be an object containing a features property. The value for this
should be an object with a property for each feature with its name and either a
string value of 'continuous' for continuous features or a list of valid values
for discrete features.

Features are returned in the order given by an optional order property, a
list of feature names, or sorted by name when it is missing.
*/
func ReadFeatures(md []byte) ([]feature.Feature, error) {
	metadata := struct {
		Features map[string]interface{}
		Order    []string
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml features: %v", err)
	}
	if metadata.Features == nil {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	features := make(map[string]feature.Feature)
	for fn, vs := range metadata.Features {
		switch values := vs.(type) {
		case string:
			if values != "continuous" {
				return nil, fmt.Errorf("invalid feature declaration %q for %s", values, fn)
			}
			features[fn] = feature.NewContinuousFeature(fn)
		case []interface{}:
			stringVs := []string{}
			for _, v := range values {
				stringVs = append(stringVs, fmt.Sprintf("%v", v))
			}
			features[fn] = feature.NewDiscreteFeature(fn, stringVs)
		default:
			return nil, fmt.Errorf("invalid feature declaration of type %T", vs)
		}
	}
	order := metadata.Order
	if order == nil {
		for fn := range features {
			order = append(order, fn)
		}
		sort.Strings(order)
	}
	if len(order) != len(features) {
		return nil, fmt.Errorf("feature order lists %d features, %d declared", len(order), len(features))
	}
	result := make([]feature.Feature, 0, len(order))
	for _, fn := range order {
		f, ok := features[fn]
		if !ok {
			return nil, fmt.Errorf("feature order references undeclared feature %s", fn)
		}
		result = append(result, f)
		delete(features, fn)
	}
	return result, nil
}

/*
ReadFeaturesFromFile takes a filepath string, reads its contents and uses
ReadFeatures to parse it and return a slice of parsed features or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadFeaturesFromFile(filepath string) ([]feature.Feature, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading features yml file %s: %v", filepath, err)
	}
	features, err := ReadFeatures(md)
	if err != nil {
		err = fmt.Errorf("parsing features yml file %s: %v", filepath, err)
	}
	return features, err
}
