// Package models defines the core data structures for farmers and their fields.
package models

// Field represents a cultivated plot registered by a farmer.
type Field struct {
	// ID is the unique identifier for the field.
	ID string `json:"id"`
	// Farmer is the username of the owning farmer.
	Farmer string `json:"farmer"`
	// Name is the human-readable field name ("South vineyard").
	Name string `json:"name"`
	// AreaHa is the field area in hectares.
	AreaHa float64 `json:"area_ha"`
	// Crop is the crop currently planted, if any.
	Crop string `json:"crop,omitempty"`
}
