package contacts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed contacts.json
var bundledContacts []byte

// SampleStore reads the sample contact list, either the bundled one or a
// JSON file supplied by the user.
type SampleStore struct {
	Path string // empty means the bundled list
}

// Load decodes the sample list. Contacts without an id get one derived from
// their fields.
func (s SampleStore) Load() ([]Contact, error) {
	data := bundledContacts
	if s.Path != "" {
		b, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("reading sample contacts: %w", err)
		}
		data = b
	}

	var list []Contact
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decoding sample contacts: %w", err)
	}
	for i := range list {
		if list[i].ID == 0 {
			list[i].ID = contactID(list[i].FirstName, list[i].LastName, list[i].Email)
		}
	}
	return list, nil
}
