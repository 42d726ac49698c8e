package store

import (
	"time"

	"github.com/google/uuid"
)

const DefaultListLimit = 20

type Run struct {
	ID        string
	StartedAt time.Time
	Directory string
	TagFile   string
	TagCount  int
	// Missing holds the names absent on the initial check.
	Missing  []string
	Created  int
	Failed   int
	Verified bool
	// MissingAfter is only meaningful when Verified is set.
	MissingAfter int
}

func NewRunID() string {
	return uuid.NewString()
}

// NormalizeLimit maps non-positive limits to DefaultListLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
