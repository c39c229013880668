package authz_test

import (
	"os"
	"testing"

	"github.com/workbridge-dev/workbridge/db"
	"github.com/workbridge-dev/workbridge/internal/authz"
	"github.com/workbridge-dev/workbridge/internal/models"
)

var (
	owner   models.User
	member  models.User
	visitor models.User
	company models.Company
)

func TestMain(m *testing.M) {
	if err := db.ConnectTestDatabase(); err != nil {
		panic(err)
	}
	if err := db.MigrateDatabase(); err != nil {
		panic(err)
	}

	owner = models.User{Name: "owner", Email: "owner@test.com", PasswordHash: "x"}
	member = models.User{Name: "member", Email: "member@test.com", PasswordHash: "x"}
	visitor = models.User{Name: "visitor", Email: "visitor@test.com", PasswordHash: "x"}

	for _, u := range []*models.User{&owner, &member, &visitor} {
		if err := db.DB.Create(u).Error; err != nil {
			panic(err)
		}
	}

	company = models.Company{Name: "acme", OwnerID: owner.ID}
	if err := db.DB.Create(&company).Error; err != nil {
		panic(err)
	}

	membership := models.Membership{UserID: member.ID, CompanyID: company.ID}
	if err := db.DB.Create(&membership).Error; err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestIsSelf(t *testing.T) {
	if !authz.IsSelf(owner.ID, owner.ID) {
		t.Error("IsSelf(x, x) = false")
	}
	if authz.IsSelf(owner.ID, member.ID) {
		t.Error("IsSelf(x, y) = true")
	}
}

func TestIsOwner(t *testing.T) {
	if !authz.IsOwner(owner.ID, &company) {
		t.Error("owner not recognized")
	}
	if authz.IsOwner(member.ID, &company) {
		t.Error("member recognized as owner")
	}
}

func TestIsMember(t *testing.T) {
	cases := []struct {
		name   string
		userID uint
		want   bool
	}{
		{"owner is implicit member", owner.ID, true},
		{"membership row counts", member.ID, true},
		{"stranger is not a member", visitor.ID, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := authz.IsMember(tc.userID, &company)
			if err != nil {
				t.Fatalf("IsMember failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAllows(t *testing.T) {
	cases := []struct {
		name     string
		actorID  uint
		relation authz.Relation
		want     bool
	}{
		{"owner relation for owner", owner.ID, authz.RelationOwner, true},
		{"owner relation for member", member.ID, authz.RelationOwner, false},
		{"member relation for member", member.ID, authz.RelationMember, true},
		{"member relation for stranger", visitor.ID, authz.RelationMember, false},
		{"self relation never applies to a company", owner.ID, authz.RelationSelf, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := authz.Allows(tc.actorID, &company, tc.relation)
			if err != nil {
				t.Fatalf("Allows failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
