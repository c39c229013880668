package models

import "gorm.io/gorm"

type ProposalStatus string

const (
	StatusPending   ProposalStatus = "pending"
	StatusAccepted  ProposalStatus = "accepted"
	StatusDeclined  ProposalStatus = "declined"
	StatusCancelled ProposalStatus = "cancelled"
)

// Invite is a company-to-user proposal to join, resolved by the target user.
type Invite struct {
	gorm.Model

	CompanyID uint           `gorm:"not null;index"`
	UserID    uint           `gorm:"not null;index"`
	Message   string
	Status    ProposalStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
