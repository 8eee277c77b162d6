package matching

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Posting is the snapshot view of a job post that matching operates on.
// Locations are stored as a single "State, District" string.
type Posting struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	JobTitle  string
	JobGrade  string
	Current   string
	Expected  string
	CreatedAt time.Time
}

// Location is the parsed form of a posting location.
type Location struct {
	State    string
	District string
}

// SplitLocation parses "State, District". District names may themselves
// contain commas, so only the first separator splits.
func SplitLocation(s string) (Location, bool) {
	parts := strings.SplitN(s, ", ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Location{}, false
	}
	return Location{State: parts[0], District: parts[1]}, true
}

// String renders the location back into its stored form.
func (l Location) String() string {
	return l.State + ", " + l.District
}
