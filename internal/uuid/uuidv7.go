// Package uuid issues the time-ordered identifiers used for trades, activity
// entries and snapshots.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New returns a UUIDv7 string. Ids sort by creation time, so trades inserted
// in one session list in insertion order. A v4 id is returned if the v7
// generator cannot read randomness.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// Parse validates and normalises a UUID string
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}

// Version returns the version nibble of a UUID, or 0 when s is not a UUID.
func Version(s string) int {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return 0
	}
	return int(parsed.Version())
}
