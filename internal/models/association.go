package models

import (
	"time"
)

// Association links exactly one Switch to exactly one Vlan, with an optional
// free-text port label. The (vlan, switch) pair is unique; a switch may
// belong to many VLANs and a VLAN may contain many switches.
//
// The record carries no separate update timestamp: replacing the port label
// refreshes CreatedAt instead.
type Association struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	VlanID    uint      `gorm:"uniqueIndex:idx_associations_vlan_switch;not null" json:"vlan_id" example:"1"`
	SwitchID  uint      `gorm:"uniqueIndex:idx_associations_vlan_switch;not null" json:"switch_id" example:"1"`
	Port      *string   `json:"port" example:"Gi0/1"`
	CreatedAt time.Time `json:"created_at"`

	Vlan   *Vlan   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Switch *Switch `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// AddAssociation is the optional body of an associate request.
type AddAssociation struct {
	Port *string `json:"port" example:"Gi0/1"`
}

// UpdateAssociation replaces the port label of an existing Association. The
// vlan and switch references are immutable once created.
type UpdateAssociation struct {
	Port *string `json:"port" example:"Gi0/2"`
}

// AssociationDetail is the associate response, denormalized with the vlan
// name and switch hostname for display convenience.
type AssociationDetail struct {
	ID             uint    `json:"id" example:"1"`
	VlanID         uint    `json:"vlan_id" example:"1"`
	SwitchID       uint    `json:"switch_id" example:"1"`
	VlanName       string  `json:"vlan_name" example:"Mgmt"`
	SwitchHostname string  `json:"switch_hostname" example:"core-sw-1"`
	Port           *string `json:"port" example:"Gi0/1"`
}

// SwitchInVlan is one joined row of a VLAN membership listing: the switch
// plus the association's port label and id.
type SwitchInVlan struct {
	ID            uint      `json:"id" example:"1"`
	Hostname      string    `json:"hostname" example:"core-sw-1"`
	IPAddress     string    `json:"ip_address" example:"10.0.0.1"`
	Model         string    `json:"model" example:"WS-C3850-24T"`
	CreatedAt     time.Time `json:"created_at"`
	Port          *string   `json:"port" example:"Gi0/1"`
	AssociationID uint      `json:"association_id" example:"1"`
}

// VlanSwitches lists the switches associated with one VLAN.
type VlanSwitches struct {
	Vlan     Vlan           `json:"vlan"`
	Switches []SwitchInVlan `json:"switches"`
}

// VlanInSwitch is one joined row of a switch membership listing: the vlan
// plus the association's port label and id.
type VlanInSwitch struct {
	ID            uint      `json:"id" example:"1"`
	Name          string    `json:"name" example:"Mgmt"`
	Tag           int       `json:"tag" example:"10"`
	CreatedAt     time.Time `json:"created_at"`
	Port          *string   `json:"port" example:"Gi0/1"`
	AssociationID uint      `json:"association_id" example:"1"`
}

// SwitchVlans lists the VLANs one switch belongs to.
type SwitchVlans struct {
	Switch Switch         `json:"switch"`
	Vlans  []VlanInSwitch `json:"vlans"`
}

// BulkAssociateItem is one entry of a bulk associate request.
type BulkAssociateItem struct {
	SwitchID uint    `json:"switch_id" example:"1"`
	Port     *string `json:"port" example:"Gi0/1"`
}

// BulkAssociate is the request body for a bulk associate.
type BulkAssociate struct {
	Switches []BulkAssociateItem `json:"switches"`
}

// BulkAssociated reports a bulk associate. The batch never aborts early; a
// per-item failure lands in Errors tagged with the item's position and the
// batch still succeeds.
type BulkAssociated struct {
	VlanID       uint                `json:"vlan_id" example:"1"`
	Added        int                 `json:"added"`
	Total        int                 `json:"total"`
	Associations []AssociationDetail `json:"associations"`
	Errors       []string            `json:"errors,omitempty"`
}

// BulkDisassociate is the request body for a bulk disassociate.
type BulkDisassociate struct {
	SwitchIDs []uint `json:"switch_ids"`
}

// BulkDisassociated reports a bulk disassociate: a tally only, pairs that
// did not exist are skipped silently.
type BulkDisassociated struct {
	VlanID    uint `json:"vlan_id" example:"1"`
	Requested int  `json:"requested"`
	Removed   int  `json:"removed"`
}
