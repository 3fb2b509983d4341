package refdata

import "github.com/google/uuid"

// Reference entities a movement endpoint can point at. These masters are
// owned by other services; this package only reads display data.

type Warehouse struct {
	ID           uuid.UUID
	Code         string
	Name         string
	IsProduction bool
}

type FieldEngineer struct {
	ID   uuid.UUID
	Code string
	Name string
}

type Vehicle struct {
	ID                 uuid.UUID
	RegistrationNumber string
}
