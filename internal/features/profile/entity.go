package profile

import "time"

// Profile is the farmer-facing descriptive metadata, one row per farmer
// account. Products holds the farmer's free-text produce summary, not the
// catalog listings.
type Profile struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Contact   string    `json:"contact"`
	Products  string    `json:"products"`
	UpdatedAt time.Time `json:"-"`
}
