package domain

import "time"

// FAQ is an admin-curated knowledge-base entry. Only active entries are
// visible to the public listing.
type FAQ struct {
	ID        string
	Question  string
	Answer    string
	Active    bool
	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
