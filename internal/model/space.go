package model

import "time"

// SpaceType enumerates the kinds of bookable areas a venue offers.
type SpaceType string

const (
	SpaceCubicle SpaceType = "cubicle"
	SpaceMeeting SpaceType = "meeting"
	SpaceCommon  SpaceType = "common"
)

// Valid reports whether t is a known space type.
func (t SpaceType) Valid() bool {
	switch t {
	case SpaceCubicle, SpaceMeeting, SpaceCommon:
		return true
	}
	return false
}

// Space represents a bookable physical area with fixed seating capacity.
// It corresponds to a row in the `spaces` table. Capacity bounds the seat
// numbers of every booking made in the space's slots unless a slot defines
// its own capacity override.
//
// Fields:
//  ID                – primary key identifier.
//  Name              – display name of the space.
//  Type              – kind of area (cubicle, meeting, common).
//  Capacity          – number of seats; always positive.
//  PriceCentsPerHour – hourly price in cents.
//  Description       – optional free-form description.
//  Amenities         – optional list of amenity labels (stored as JSON).
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Space struct {
	ID                uint64    `json:"id"`
	Name              string    `json:"name"`
	Type              SpaceType `json:"type"`
	Capacity          uint32    `json:"capacity"`
	PriceCentsPerHour uint32    `json:"price_cents_per_hour"`
	Description       *string   `json:"description,omitempty"`
	Amenities         []string  `json:"amenities,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
