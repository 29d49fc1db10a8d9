package model

// Place is a resolved portal location: the display name the portal knows
// it by and the opaque identifier searches are keyed on.
type Place struct {
	DisplayName string `json:"display_name"`
	ID          string `json:"place_id"`
}
