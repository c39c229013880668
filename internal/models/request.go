package models

import "gorm.io/gorm"

// Request is a user-to-company proposal to join, resolved by the company owner.
type Request struct {
	gorm.Model

	UserID    uint           `gorm:"not null;index"`
	CompanyID uint           `gorm:"not null;index"`
	Message   string
	Status    ProposalStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Company Company `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
