package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/workbridge-dev/workbridge/db"
	"github.com/workbridge-dev/workbridge/internal/authz"
	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/types"
	"github.com/workbridge-dev/workbridge/internal/utils"
	"gorm.io/gorm"
)

type SendInviteRequest struct {
	FromCompanyID uint   `json:"from_company_id" binding:"required"`
	ToUserID      uint   `json:"to_user_id" binding:"required"`
	Message       string `json:"invite_message"`
}

func inviteResponse(invite *models.Invite) types.InviteResponse {
	return types.InviteResponse{
		InviteID:      invite.ID,
		FromCompanyID: invite.CompanyID,
		ToUserID:      invite.UserID,
		InviteMessage: invite.Message,
		Status:        string(invite.Status),
	}
}

func findInvite(ctx *gin.Context) (invite models.Invite, ok bool) {
	inviteID, err := strconv.Atoi(ctx.Param("invite_id"))

	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid invite ID"})
		return invite, false
	}

	if err := db.DB.First(&invite, inviteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"detail": "Invite not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return invite, false
	}

	return invite, true
}

func SendInvite(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	var body SendInviteRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, body.ToUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"detail": "This user not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	var company models.Company

	if err := db.DB.First(&company, body.FromCompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"detail": "This company not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	if !authz.IsOwner(actorID, &company) {
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "it's not your company"})
		return
	}

	member, err := authz.IsMember(user.ID, &company)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	if member {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "User is already a member of the company"})
		return
	}

	var pending models.Invite

	err = db.DB.Where("company_id = ? AND user_id = ? AND status = ?",
		company.ID, user.ID, models.StatusPending).First(&pending).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "Invite already sent"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	invite := models.Invite{
		CompanyID: company.ID,
		UserID:    user.ID,
		Message:   body.Message,
		Status:    models.StatusPending,
	}

	if err := db.DB.Create(&invite).Error; err != nil {
		log.Printf("Failed to create invite: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success"})
}

func MyInvites(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	var invites []models.Invite

	if err := db.DB.Where("user_id = ? AND status = ?", actorID, models.StatusPending).
		Order("id").Find(&invites).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	response := []types.InviteResponse{}

	for i := range invites {
		response = append(response, inviteResponse(&invites[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"result": response})
}

func CompanyInvites(ctx *gin.Context) {
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

	var invites []models.Invite

	if err := db.DB.Where("company_id = ?", company.ID).Order("id").Find(&invites).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	response := []types.InviteResponse{}

	for i := range invites {
		response = append(response, inviteResponse(&invites[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"result": response})
}

func CancelInvite(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	invite, ok := findInvite(ctx)

	if !ok {
		return
	}

	var company models.Company

	if err := db.DB.First(&company, invite.CompanyID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	if !authz.IsOwner(actorID, &company) {
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "it's not your company"})
		return
	}

	if invite.Status != models.StatusPending {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "Invite is already resolved"})
		return
	}

	invite.Status = models.StatusCancelled

	if err := db.DB.Save(&invite).Error; err != nil {
		log.Printf("Failed to cancel invite: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success"})
}

func AcceptInvite(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	invite, ok := findInvite(ctx)

	if !ok {
		return
	}

	if invite.UserID != actorID {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "It is not your invite"})
		return
	}

	if invite.Status != models.StatusPending {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "Invite is already resolved"})
		return
	}

	// Status flip and membership insert must land together.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Invite{}).
			Where("id = ? AND status = ?", invite.ID, models.StatusPending).
			Update("status", models.StatusAccepted)

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		membership := models.Membership{UserID: invite.UserID, CompanyID: invite.CompanyID}
		return tx.Where(membership).FirstOrCreate(&membership).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"detail": "Invite is already resolved"})
			return
		}
		log.Printf("Failed to accept invite: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success"})
}

func DeclineInvite(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	invite, ok := findInvite(ctx)

	if !ok {
		return
	}

	if invite.UserID != actorID || invite.Status != models.StatusPending {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "User does not have an invite to the company"})
		return
	}

	invite.Status = models.StatusDeclined

	if err := db.DB.Save(&invite).Error; err != nil {
		log.Printf("Failed to decline invite: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success"})
}
