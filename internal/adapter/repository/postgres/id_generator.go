package postgres

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// UUIDGenerator generates random UUIDs for accounts, transactions and entries.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate generates a new UUID.
func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}

// ULIDGenerator generates ULID-based IDs. Event ids use it so they sort by time.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
