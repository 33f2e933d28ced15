package migration_20250612_0000

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	. "github.com/switchyard-io/switchyard/internal/database/migrations"
)

type Base struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Switch struct {
	Base
	Hostname  string `gorm:"uniqueIndex;not null"`
	IPAddress string `gorm:"uniqueIndex;not null"`
	Model     string `gorm:"not null"`
}

type Vlan struct {
	Base
	Name string `gorm:"not null"`
	Tag  int    `gorm:"uniqueIndex;not null"`
}

type Association struct {
	ID        uint    `gorm:"primaryKey"`
	VlanID    uint    `gorm:"uniqueIndex:idx_associations_vlan_switch;not null"`
	SwitchID  uint    `gorm:"uniqueIndex:idx_associations_vlan_switch;not null"`
	Port      *string
	CreatedAt time.Time

	Vlan   *Vlan   `gorm:"constraint:OnDelete:CASCADE"`
	Switch *Switch `gorm:"constraint:OnDelete:CASCADE"`
}

type Route struct {
	ID                  uint `gorm:"primaryKey"`
	SourceSwitchID      uint `gorm:"not null"`
	DestinationSwitchID uint `gorm:"not null"`
	VlanID              uint `gorm:"not null"`
	PathData            string
	CreatedAt           time.Time

	SourceSwitch      *Switch `gorm:"foreignKey:SourceSwitchID;constraint:OnDelete:CASCADE"`
	DestinationSwitch *Switch `gorm:"foreignKey:DestinationSwitchID;constraint:OnDelete:CASCADE"`
	Vlan              *Vlan   `gorm:"constraint:OnDelete:CASCADE"`
}

func Migrate() *gormigrate.Migration {
	migrationId := "20250612-0000"
	return CreateMigrationFromActions(migrationId,
		CreateTableAction(&Switch{}),
		CreateTableAction(&Vlan{}),
		CreateTableAction(&Association{}),
		CreateTableAction(&Route{}),
	)
}
