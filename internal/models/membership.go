package models

import "gorm.io/gorm"

type Membership struct {
	gorm.Model

	UserID    uint `gorm:"not null;uniqueIndex:idx_user_company"`
	CompanyID uint `gorm:"not null;uniqueIndex:idx_user_company"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Company Company `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
