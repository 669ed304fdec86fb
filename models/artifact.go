package models

import "time"

// expiryKeyLayout is fixed width so keys sort the same way the times do.
const expiryKeyLayout = "20060102T150405.000000000Z"

// ScratchArtifact is the pair of scratch files owned by one conversion.
// OutputPath is always InputPath + ".svg".
type ScratchArtifact struct {
	ID         string
	InputPath  string
	OutputPath string
	CreatedAt  time.Time
	Expiry     time.Time
	ExpiryKey  string
}

// ExpiryKey renders t as an index key for the registry's expiry index.
func ExpiryKey(t time.Time) string {
	return t.UTC().Format(expiryKeyLayout)
}

// Expired reports whether the artifact outlived its TTL at now.
func (a *ScratchArtifact) Expired(now time.Time) bool {
	return a.Expiry.Before(now)
}
