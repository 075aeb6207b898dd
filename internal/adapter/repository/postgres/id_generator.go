package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator issues ULID identifiers. ULIDs sort lexicographically
// in creation order, so "ORDER BY id" on the transaction log yields
// append order without a separate sequence column.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a fresh ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
