// Package credential hashes the passwords stored on user and driver
// documents.
package credential

import (
	"fmt"

	"github.com/rpggio/caredesk/internal/docstore"
	"golang.org/x/crypto/bcrypt"
)

// Field is the document field holding the password hash.
const Field = "password"

// Cost is the bcrypt cost new hashes are generated with.
var Cost = bcrypt.DefaultCost

// Hash returns the bcrypt hash of plain.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

// Apply replaces a submitted plaintext password in fields with its hash.
// An empty password keeps the hash of the stored document, if any.
func Apply(fields map[string]any, stored *docstore.Document) error {
	plain, _ := fields[Field].(string)
	if plain != "" {
		hashed, err := Hash(plain)
		if err != nil {
			return err
		}
		fields[Field] = hashed
		return nil
	}
	delete(fields, Field)
	if stored == nil {
		return nil
	}
	if hashed, ok := stored.Fields[Field]; ok {
		fields[Field] = hashed
	}
	return nil
}
