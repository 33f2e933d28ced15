package models

import (
	"time"
)

// Route is a stored path between two switches on a VLAN. The table is
// dormant: nothing populates or reads it yet, it exists so captured path
// data has a home when route recording lands.
type Route struct {
	ID                  uint      `gorm:"primaryKey" json:"id" example:"1"`
	SourceSwitchID      uint      `gorm:"not null" json:"source_switch_id" example:"1"`
	DestinationSwitchID uint      `gorm:"not null" json:"destination_switch_id" example:"2"`
	VlanID              uint      `gorm:"not null" json:"vlan_id" example:"1"`
	PathData            string    `json:"path_data"`
	CreatedAt           time.Time `json:"created_at"`

	SourceSwitch      *Switch `gorm:"foreignKey:SourceSwitchID;constraint:OnDelete:CASCADE" json:"-"`
	DestinationSwitch *Switch `gorm:"foreignKey:DestinationSwitchID;constraint:OnDelete:CASCADE" json:"-"`
	Vlan              *Vlan   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
