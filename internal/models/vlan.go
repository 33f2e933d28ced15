package models

// Vlan is a logical broadcast domain, identified by its numeric 802.1Q tag.
// The tag is unique across the whole inventory.
type Vlan struct {
	Base
	Name string `gorm:"not null" json:"name" example:"Mgmt"`
	Tag  int    `gorm:"uniqueIndex;not null" json:"tag" example:"10"`
}

// AddVlan is the information needed to add a new Vlan.
type AddVlan struct {
	Name string `json:"name" example:"Mgmt"`
	Tag  int    `json:"tag" example:"10"`
}

// Validate checks the semantic field invariants behind the binding layer.
func (r AddVlan) Validate() *ValidationError {
	if r.Name == "" {
		return fieldError(NewFieldNotPresentError("name"))
	}
	if len(r.Name) > 255 {
		return fieldError(NewFieldValidationError("name", "must be at most 255 characters"))
	}
	if r.Tag < 1 || r.Tag > 4094 {
		return fieldError(NewFieldValidationError("tag", "must be an integer between 1 and 4094"))
	}
	return nil
}

// UpdateVlan replaces all mutable Vlan fields.
type UpdateVlan struct {
	Name string `json:"name" example:"Mgmt"`
	Tag  int    `json:"tag" example:"10"`
}

func (r UpdateVlan) Validate() *ValidationError {
	return AddVlan(r).Validate()
}

// BulkAddVlans is the request body for a bulk Vlan create.
type BulkAddVlans struct {
	Vlans []AddVlan `json:"vlans"`
}

// BulkVlansCreated reports a bulk Vlan create, mirroring BulkSwitchesCreated.
type BulkVlansCreated struct {
	Created int      `json:"created"`
	Total   int      `json:"total"`
	Vlans   []*Vlan  `json:"vlans"`
	Errors  []string `json:"errors,omitempty"`
}

// BulkDeleteVlans is the request body for a bulk Vlan delete.
type BulkDeleteVlans struct {
	VlanIDs []uint `json:"vlan_ids"`
}
