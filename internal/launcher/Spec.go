package launcher

import (
	"encoding/json"
	"fmt"
)

// Spec is a JSON-decodable launcher definition. The concrete model is selected by
// an optional "model" key; the remaining keys are forwarded to that model.
type Spec struct {
	Model    string   `json:"-"`
	Launcher Launcher `json:"-"` // set by UnmarshalJSON
}

// modelDisc is the minimum JSON structure needed to read the model discriminator.
type modelDisc struct {
	Model string `json:"model"`
}

// UnmarshalJSON implements json.Unmarshaler for Spec.
//
// Supported models:
//   - "linear" (default): k / x / m.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var disc modelDisc
	if err := json.Unmarshal(data, &disc); err != nil {
		return fmt.Errorf("reading launcher model discriminator: %w", err)
	}

	switch disc.Model {
	case "", LinearModelName:
		var ls LinearSpring
		if err := json.Unmarshal(data, &ls); err != nil {
			return fmt.Errorf("parsing linear spring: %w", err)
		}
		s.Model = LinearModelName
		s.Launcher = ls
	default:
		return fmt.Errorf("unknown launcher model %q", disc.Model)
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Spec, flattening the model fields
// alongside the discriminator.
func (s Spec) MarshalJSON() ([]byte, error) {
	switch l := s.Launcher.(type) {
	case LinearSpring:
		return json.Marshal(struct {
			Model string `json:"model"`
			LinearSpring
		}{Model: LinearModelName, LinearSpring: l})
	case nil:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("cannot marshal launcher of type %T", l)
	}
}

// Validate checks the wrapped launcher by asking for its speed.
func (s Spec) Validate() error {
	_, err := LaunchSpeed(s.Launcher)
	return err
}
