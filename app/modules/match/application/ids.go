package matchservice

import "github.com/google/uuid"

// UUIDGenerator issues random UUIDs for matches, teams and presses.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
