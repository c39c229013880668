package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/workbridge-dev/workbridge/db"
	"github.com/workbridge-dev/workbridge/internal/authz"
	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/types"
	"github.com/workbridge-dev/workbridge/internal/utils"
	"gorm.io/gorm"
)

type CreateCompanyRequest struct {
	Name        string `json:"company_name" binding:"required"`
	Description string `json:"company_description"`
}

type UpdateCompanyRequest struct {
	Name        string `json:"company_name" binding:"required"`
	Description string `json:"company_description"`
}

func companyResponse(company *models.Company) types.CompanyResponse {
	var description *string
	if company.Description != "" {
		description = &company.Description
	}

	return types.CompanyResponse{
		CompanyID:          company.ID,
		CompanyName:        company.Name,
		CompanyDescription: description,
		CompanyOwnerID:     company.OwnerID,
	}
}

// findCompany resolves the company_id path parameter. It writes the error
// response itself, so callers only continue when ok is true.
func findCompany(ctx *gin.Context, notFound string) (company models.Company, ok bool) {
	companyID, err := strconv.Atoi(ctx.Param("company_id"))

	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid company ID"})
		return company, false
	}

	if err := db.DB.First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"detail": notFound})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return company, false
	}

	return company, true
}

func CreateCompany(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	var body CreateCompanyRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request"})
		return
	}

	if strings.TrimSpace(body.Name) == "" {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Company name cannot be empty"})
		return
	}

	company := models.Company{
		Name:        body.Name,
		Description: body.Description,
		OwnerID:     actorID,
	}

	if err := db.DB.Create(&company).Error; err != nil {
		log.Printf("Failed to create company: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"result": gin.H{"company_id": company.ID},
	})
}

func ListCompanies(ctx *gin.Context) {
	var companies []models.Company

	if err := db.DB.Order("id").Find(&companies).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	response := types.CompanyListResponse{Companies: []types.CompanyResponse{}}

	for i := range companies {
		response.Companies = append(response.Companies, companyResponse(&companies[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"result": response})
}

func GetCompany(ctx *gin.Context) {
	company, ok := findCompany(ctx, "This company not found")

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"result": companyResponse(&company)})
}

func UpdateCompany(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	var body UpdateCompanyRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request"})
		return
	}

	company, ok := findCompany(ctx, "This company not found")

	if !ok {
		return
	}

	if !authz.IsOwner(actorID, &company) {
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "it's not your company"})
		return
	}

	company.Name = body.Name
	company.Description = body.Description

	if err := db.DB.Save(&company).Error; err != nil {
		log.Printf("Failed to update company: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"result": gin.H{"company_id": company.ID},
	})
}

func DeleteCompany(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	company, ok := findCompany(ctx, "This company not found")

	if !ok {
		return
	}

	if !authz.IsOwner(actorID, &company) {
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "it's not your company"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", company.ID).Delete(&models.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", company.ID).Delete(&models.Invite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", company.ID).Delete(&models.Request{}).Error; err != nil {
			return err
		}
		return tx.Delete(&company).Error
	})

	if err != nil {
		log.Printf("Failed to delete company: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success"})
}

func ListMembers(ctx *gin.Context) {
	company, ok := findCompany(ctx, "This company not found")

	if !ok {
		return
	}

	var owner models.User

	if err := db.DB.First(&owner, company.OwnerID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	var memberships []models.Membership

	if err := db.DB.Preload("User").Where("company_id = ?", company.ID).Order("id").Find(&memberships).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	response := types.UserListResponse{
		Users: []types.UserResponse{{
			UserID:    owner.ID,
			UserName:  owner.Name,
			UserEmail: owner.Email,
		}},
	}

	for _, membership := range memberships {
		response.Users = append(response.Users, types.UserResponse{
			UserID:    membership.User.ID,
			UserName:  membership.User.Name,
			UserEmail: membership.User.Email,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"result": response})
}

func KickMember(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	company, ok := findCompany(ctx, "This company not found")

	if !ok {
		return
	}

	if !authz.IsOwner(actorID, &company) {
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "it's not your company"})
		return
	}

	userID, err := strconv.Atoi(ctx.Param("user_id"))

	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid user ID"})
		return
	}

	if uint(userID) == company.OwnerID {
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "Owner cannot be kicked from the company"})
		return
	}

	var membership models.Membership

	if err := db.DB.Where("user_id = ? AND company_id = ?", userID, company.ID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"detail": "User is not a member of the company"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	if err := db.DB.Delete(&membership).Error; err != nil {
		log.Printf("Failed to remove member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success"})
}

func LeaveCompany(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	company, ok := findCompany(ctx, "This company not found")

	if !ok {
		return
	}

	// The owner is a member by definition and has no membership row to
	// give up. Ownership transfer is a separate concern.
	if authz.IsOwner(actorID, &company) {
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "Owner cannot leave the company"})
		return
	}

	var membership models.Membership

	if err := db.DB.Where("user_id = ? AND company_id = ?", actorID, company.ID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"detail": "User is not a member of the company"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	if err := db.DB.Delete(&membership).Error; err != nil {
		log.Printf("Failed to leave company: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success"})
}
