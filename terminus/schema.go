package terminus

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/wippyai/icu-bridge/errors"
)

// Manifest is the serialized form of the catalog handed to presentation
// layers.
type Manifest struct {
	Termini []*Terminus `json:"termini" jsonschema:"required"`
}

// NewManifest returns the manifest of Termini.
func NewManifest() Manifest {
	return Manifest{Termini: Termini()}
}

// JSON encodes the manifest.
func (m Manifest) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "marshal manifest")
	}
	return b, nil
}

// Schema returns the JSON schema of Manifest.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
	}
	s := reflector.Reflect(&Manifest{})
	s.Title = "Terminus catalog"

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "marshal schema")
	}
	return b, nil
}
