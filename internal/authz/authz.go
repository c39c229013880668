// Package authz evaluates the relation between an authenticated actor and a
// resource. Handlers resolve the resource first, so a missing resource is
// reported as not-found before any relation is checked.
package authz

import (
	"errors"

	"github.com/workbridge-dev/workbridge/db"
	"github.com/workbridge-dev/workbridge/internal/models"
	"gorm.io/gorm"
)

type Relation string

const (
	RelationSelf   Relation = "self"
	RelationOwner  Relation = "owner"
	RelationMember Relation = "member"
)

// IsSelf reports whether the actor is the user being acted on.
func IsSelf(actorID, userID uint) bool {
	return actorID == userID
}

// IsOwner reports whether the actor owns the company.
func IsOwner(actorID uint, company *models.Company) bool {
	return actorID == company.OwnerID
}

// IsMember reports whether the actor belongs to the company. The owner
// counts as a member without a membership row.
func IsMember(actorID uint, company *models.Company) (bool, error) {
	if IsOwner(actorID, company) {
		return true, nil
	}

	var membership models.Membership

	err := db.DB.Where("user_id = ? AND company_id = ?", actorID, company.ID).First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Allows reports whether the actor holds the required relation to the
// company. RelationSelf is meaningless for companies and always denies.
func Allows(actorID uint, company *models.Company, required Relation) (bool, error) {
	switch required {
	case RelationOwner:
		return IsOwner(actorID, company), nil
	case RelationMember:
		return IsMember(actorID, company)
	default:
		return false, nil
	}
}
