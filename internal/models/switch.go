package models

import (
	"net"
)

// Switch is a managed network device. Hostname and IP address are each
// unique across the whole inventory.
type Switch struct {
	Base
	Hostname  string `gorm:"uniqueIndex;not null" json:"hostname" example:"core-sw-1"`
	IPAddress string `gorm:"uniqueIndex;not null" json:"ip_address" example:"10.0.0.1"`
	Model     string `gorm:"not null" json:"model" example:"WS-C3850-24T"`
}

// AddSwitch is the information needed to add a new Switch.
type AddSwitch struct {
	Hostname  string `json:"hostname" example:"core-sw-1"`
	IPAddress string `json:"ip_address" example:"10.0.0.1"`
	Model     string `json:"model" example:"WS-C3850-24T"`
}

// Validate checks the semantic field invariants. Request shape is validated
// by the binding layer; this is the defensive check behind it.
func (r AddSwitch) Validate() *ValidationError {
	if r.Hostname == "" {
		return fieldError(NewFieldNotPresentError("hostname"))
	}
	if len(r.Hostname) > 255 {
		return fieldError(NewFieldValidationError("hostname", "must be at most 255 characters"))
	}
	if r.IPAddress == "" {
		return fieldError(NewFieldNotPresentError("ip_address"))
	}
	if net.ParseIP(r.IPAddress) == nil {
		return fieldError(NewFieldValidationError("ip_address", "must be a valid IPv4 or IPv6 address"))
	}
	if r.Model == "" {
		return fieldError(NewFieldNotPresentError("model"))
	}
	if len(r.Model) > 255 {
		return fieldError(NewFieldValidationError("model", "must be at most 255 characters"))
	}
	return nil
}

// UpdateSwitch replaces all mutable Switch fields.
type UpdateSwitch struct {
	Hostname  string `json:"hostname" example:"core-sw-1"`
	IPAddress string `json:"ip_address" example:"10.0.0.1"`
	Model     string `json:"model" example:"WS-C3850-24T"`
}

func (r UpdateSwitch) Validate() *ValidationError {
	return AddSwitch(r).Validate()
}

// BulkAddSwitches is the request body for a bulk Switch create.
type BulkAddSwitches struct {
	Switches []AddSwitch `json:"switches"`
}

// BulkSwitchesCreated reports a bulk Switch create. Per-item failures end up
// in Errors with their 1-based position; the batch itself still succeeds.
type BulkSwitchesCreated struct {
	Created  int       `json:"created"`
	Total    int       `json:"total"`
	Switches []*Switch `json:"switches"`
	Errors   []string  `json:"errors,omitempty"`
}

// BulkDeleteSwitches is the request body for a bulk Switch delete.
type BulkDeleteSwitches struct {
	SwitchIDs []uint `json:"switch_ids"`
}

// BulkDeleted reports a bulk delete. Ids that matched nothing are skipped
// silently rather than reported as errors.
type BulkDeleted struct {
	Requested int `json:"requested"`
	Deleted   int `json:"deleted"`
}

func fieldError(e ValidationError) *ValidationError {
	return &e
}
