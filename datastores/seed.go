package datastores

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadContacts decodes a YAML sequence of contacts.
// Contacts without an id get one above the largest explicit id, in order.
// Status labels must be one of Active, Lead or Inactive.
//
//	- name: John Doe
//	  email: john@example.com
//	  phone: +1 555-0101
//	  status: Active
func LoadContacts(r io.Reader) ([]Contact, error) {
	var cs []Contact
	err := yaml.NewDecoder(r).Decode(&cs)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}

	seen := make(map[ContactID]bool, len(cs))
	next := 1
	for _, c := range cs {
		if c.ID == 0 {
			continue
		}
		if c.ID < 0 || seen[c.ID] {
			return nil, fmt.Errorf("decode contacts: invalid or duplicate id %d", c.ID)
		}
		seen[c.ID] = true
		next = max(next, c.ID+1)
	}
	for i := range cs {
		if cs[i].ID == 0 {
			cs[i].ID = next
			next++
		}
	}
	return cs, nil
}

// LoadContactsFile is [LoadContacts] reading from the named file.
func LoadContactsFile(name string) ([]Contact, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadContacts(f)
}
