package models

import "time"

// SettingModel is the GORM model for the settings table
type SettingModel struct {
	Key       string    `gorm:"column:key;type:varchar(100);primary_key"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for SettingModel
func (SettingModel) TableName() string {
	return "settings"
}
