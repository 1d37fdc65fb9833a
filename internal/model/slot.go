package model

import "time"

// Slot represents a concrete bookable time window belonging to a space.
// Slots are created and deleted by administrators only. Date carries the
// calendar day ("2006-01-02"); StartTime and EndTime carry wall-clock times
// ("15:04") within that day, matching how the admin UI enters them.
//
// Fields:
//  ID        – primary key identifier.
//  SpaceID   – space this window belongs to.
//  Date      – calendar day of the window.
//  StartTime – start of the window within the day.
//  EndTime   – end of the window within the day.
//  Capacity  – optional per-slot override of the space capacity (nil when
//              the space capacity applies).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Slot struct {
	ID        uint64    `json:"id"`
	SpaceID   uint64    `json:"space_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Capacity  *uint32   `json:"capacity,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveCapacity returns the slot's own capacity override when present,
// or the owning space's capacity otherwise.
func (s *Slot) EffectiveCapacity(spaceCapacity uint32) uint32 {
	if s.Capacity != nil && *s.Capacity > 0 {
		return *s.Capacity
	}
	return spaceCapacity
}
