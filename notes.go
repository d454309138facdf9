package conjparse

import (
	"encoding/json"
	"io"
)

// LoadNotes reads the lemma→note sidecar, a flat JSON object. Notes are
// usage clarifications shown next to a verb's definitions; they ride along
// in the JSON artifact.
func LoadNotes(r io.Reader) (map[string]string, error) {
	var notes map[string]string
	if err := json.NewDecoder(r).Decode(&notes); err != nil {
		return nil, err
	}
	return notes, nil
}
