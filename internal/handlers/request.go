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

type SendRequestRequest struct {
	ToCompanyID uint   `json:"to_company_id" binding:"required"`
	Message     string `json:"invite_message"`
}

func requestResponse(request *models.Request) types.RequestResponse {
	return types.RequestResponse{
		RequestID:      request.ID,
		FromUserID:     request.UserID,
		ToCompanyID:    request.CompanyID,
		RequestMessage: request.Message,
		Status:         string(request.Status),
	}
}

func findRequest(ctx *gin.Context) (request models.Request, ok bool) {
	requestID, err := strconv.Atoi(ctx.Param("request_id"))

	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request ID"})
		return request, false
	}

	if err := db.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"detail": "Request not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return request, false
	}

	return request, true
}

func SendRequest(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	var body SendRequestRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Invalid request"})
		return
	}

	var company models.Company

	if err := db.DB.First(&company, body.ToCompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Surfaced as a validation failure, not a lookup miss.
			ctx.JSON(http.StatusBadRequest, gin.H{"detail": "Company does not exist"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	member, err := authz.IsMember(actorID, &company)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	if member {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "User is already a member of the company"})
		return
	}

	var pending models.Request

	err = db.DB.Where("user_id = ? AND company_id = ? AND status = ?",
		actorID, company.ID, models.StatusPending).First(&pending).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "Request already sent"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	request := models.Request{
		UserID:    actorID,
		CompanyID: company.ID,
		Message:   body.Message,
		Status:    models.StatusPending,
	}

	if err := db.DB.Create(&request).Error; err != nil {
		log.Printf("Failed to create request: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success"})
}

func MyRequests(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	var requests []models.Request

	if err := db.DB.Where("user_id = ? AND status = ?", actorID, models.StatusPending).
		Order("id").Find(&requests).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	response := []types.RequestResponse{}

	for i := range requests {
		response = append(response, requestResponse(&requests[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"result": response})
}

func CompanyRequests(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	company, ok := findCompany(ctx, "Company does not exist")

	if !ok {
		return
	}

	if !authz.IsOwner(actorID, &company) {
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "it's not your company"})
		return
	}

	var requests []models.Request

	if err := db.DB.Where("company_id = ? AND status = ?", company.ID, models.StatusPending).
		Order("id").Find(&requests).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	response := []types.RequestResponse{}

	for i := range requests {
		response = append(response, requestResponse(&requests[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success", "result": response})
}

func CancelRequest(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	request, ok := findRequest(ctx)

	if !ok {
		return
	}

	if request.UserID != actorID {
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "It's not your request"})
		return
	}

	if request.Status != models.StatusPending {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "Request is already resolved"})
		return
	}

	request.Status = models.StatusCancelled

	if err := db.DB.Save(&request).Error; err != nil {
		log.Printf("Failed to cancel request: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success"})
}

func AcceptRequest(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	request, ok := findRequest(ctx)

	if !ok {
		return
	}

	var company models.Company

	if err := db.DB.First(&company, request.CompanyID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	if !authz.IsOwner(actorID, &company) {
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "Only the owner of the company can accept requests"})
		return
	}

	if request.Status != models.StatusPending {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "Request is already resolved"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Request{}).
			Where("id = ? AND status = ?", request.ID, models.StatusPending).
			Update("status", models.StatusAccepted)

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		membership := models.Membership{UserID: request.UserID, CompanyID: request.CompanyID}
		return tx.Where(membership).FirstOrCreate(&membership).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"detail": "Request is already resolved"})
			return
		}
		log.Printf("Failed to accept request: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success"})
}

func DeclineRequest(ctx *gin.Context) {
	actorID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	request, ok := findRequest(ctx)

	if !ok {
		return
	}

	var company models.Company

	if err := db.DB.First(&company, request.CompanyID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	if !authz.IsOwner(actorID, &company) {
		ctx.JSON(http.StatusForbidden, gin.H{"detail": "Only the owner of the company can decline requests"})
		return
	}

	if request.Status != models.StatusPending {
		ctx.JSON(http.StatusBadRequest, gin.H{"detail": "Request is already resolved"})
		return
	}

	request.Status = models.StatusDeclined

	if err := db.DB.Save(&request).Error; err != nil {
		log.Printf("Failed to decline request: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"detail": "success"})
}
