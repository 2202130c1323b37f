package folding

import (
	"io"
	"os"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var vectorType = reflect.TypeOf(r3.Vector{})

// DecodeFoldRequest converts an attribute map into a fold request. Config fields that are absent keep
// their defaults. Vectors may be given as {x, y, z} maps or as [x, y, z] lists.
func DecodeFoldRequest(attributes map[string]interface{}) (*FoldRequest, error) {
	req := &FoldRequest{Config: NewDefaultFoldConfig()}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     req,
		DecodeHook: vectorListHook,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "cannot decode fold request")
	}
	return req, nil
}

// DecodeFoldConfig converts an attribute map into a fold config, starting from the defaults.
func DecodeFoldConfig(attributes map[string]interface{}) (*FoldConfig, error) {
	cfg := NewDefaultFoldConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "json", Result: cfg})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "cannot decode fold config")
	}
	return cfg, nil
}

// ReadFoldRequest parses a YAML or JSON document into a fold request.
func ReadFoldRequest(r io.Reader) (*FoldRequest, error) {
	attributes := map[string]interface{}{}
	if err := yaml.NewDecoder(r).Decode(&attributes); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "cannot parse fold request")
	}
	return DecodeFoldRequest(attributes)
}

// LoadFoldRequest reads a fold request from a YAML or JSON file.
func LoadFoldRequest(path string) (*FoldRequest, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	req, err := ReadFoldRequest(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", path)
	}
	return req, nil
}

func vectorListHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != vectorType || from.Kind() != reflect.Slice {
		return data, nil
	}
	elems, ok := data.([]interface{})
	if !ok || len(elems) != 3 {
		return nil, errors.Errorf("a vector needs exactly 3 components, got %v", data)
	}
	var xyz [3]float64
	for i, elem := range elems {
		switch v := elem.(type) {
		case float64:
			xyz[i] = v
		case int:
			xyz[i] = float64(v)
		default:
			return nil, errors.Errorf("vector component %d is not a number: %v", i, elem)
		}
	}
	return r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
