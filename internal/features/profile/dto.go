package profile

// UpdateProfileRequest replaces every profile field. Missing fields overwrite
// with empty strings; this is a full replace, not a merge.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Contact  string `json:"contact"`
	Products string `json:"products"`
}
