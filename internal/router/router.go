package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/workbridge-dev/workbridge/internal/handlers"
	"github.com/workbridge-dev/workbridge/internal/middleware"
	"github.com/workbridge-dev/workbridge/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", handlers.HealthCheck)
	r.POST("/user", handlers.CreateUser)

	auth := r.Group("/auth")
	{
		auth.POST("/login", handlers.LoginUser)
		auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
	}

	authed := r.Group("", middleware.AuthMiddleware())
	{
		authed.GET("/users", handlers.ListUsers)
		authed.GET("/user/:user_id", handlers.GetUser)
		authed.PUT("/user/:user_id", handlers.UpdateUser)
		authed.DELETE("/user/:user_id", handlers.DeleteUser)

		authed.POST("/company", handlers.CreateCompany)
		authed.GET("/companies", handlers.ListCompanies)
		authed.GET("/company/:company_id", handlers.GetCompany)
		authed.PUT("/company/:company_id", handlers.UpdateCompany)
		authed.DELETE("/company/:company_id", handlers.DeleteCompany)

		authed.GET("/company/:company_id/members", handlers.ListMembers)
		authed.DELETE("/company/:company_id/member/:user_id", handlers.KickMember)
		authed.DELETE("/company/:company_id/leave", handlers.LeaveCompany)

		authed.POST("/invite", handlers.SendInvite)
		authed.GET("/invite/my", handlers.MyInvites)
		authed.GET("/invite/company/:company_id", handlers.CompanyInvites)
		authed.DELETE("/invite/:invite_id", handlers.CancelInvite)
		authed.GET("/invite/:invite_id/accept", handlers.AcceptInvite)
		authed.GET("/invite/:invite_id/decline", handlers.DeclineInvite)

		authed.POST("/request", handlers.SendRequest)
		authed.GET("/request/my", handlers.MyRequests)
		authed.GET("/request/company/:company_id", handlers.CompanyRequests)
		authed.DELETE("/request/:request_id", handlers.CancelRequest)
		authed.GET("/request/:request_id/accept", handlers.AcceptRequest)
		authed.GET("/request/:request_id/decline", handlers.DeclineRequest)
	}

	return r
}
