// Package user defines the account profile returned by the roadmap backend
// and cached in the client session.
package user

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// User is the profile shown in the header once a client is signed in.
type User struct {
	// ID is the backend identifier. The backend sends integers, some
	// deployments send strings, so both are accepted.
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ID is a user identifier decoded from either a JSON string or a JSON number.
type ID string

// UnmarshalJSON accepts "42", 42 and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id must be a string or a number: %w", err)
	}
	*id = ID(n.String())

	return nil
}

// DisplayName is the name if present, the email otherwise.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}

	return u.Email
}
