package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ReferencePrefix prefixes every transfer reference so the identifier is
// recognizably a transaction when presented to users.
const ReferencePrefix = "TXN-"

// ULIDGenerator implements usecase.ReferenceGenerator with ULIDs: the
// time-ordered prefix keeps references roughly sortable by creation and
// the 80-bit random suffix makes collisions a storage-constraint event,
// not an expected one.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// NewReference generates a transfer reference.
func (g *ULIDGenerator) NewReference() string {
	return ReferencePrefix + ulid.Make().String()
}

// NewID generates an entry row ID.
func (g *ULIDGenerator) NewID() string {
	return ulid.Make().String()
}
