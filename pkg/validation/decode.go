package validation

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeInput converts a loosely typed payload (JSON object, form values,
// tool arguments) into an Input. Numbers are accepted where strings are
// expected, so {"year": 1990} and {"year": "1990"} decode the same way.
// Unknown keys are ignored.
func DecodeInput(raw map[string]any) (Input, error) {
	var in Input
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &in,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Input{}, fmt.Errorf("failed to create input decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return Input{}, fmt.Errorf("failed to decode input: %w", err)
	}
	return in, nil
}
