package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/roomsathi/roomsathi/internal/api/handlers"
	"github.com/roomsathi/roomsathi/internal/api/middleware"
)

type Deps struct {
	Profile      *handlers.ProfileHandler
	Listing      *handlers.ListingHandler
	Request      *handlers.RequestHandler
	Match        *handlers.MatchHandler
	Chat         *handlers.ChatHandler
	WS           *handlers.WSHandler
	Rating       *handlers.RatingHandler
	Report       *handlers.ReportHandler
	Verification *handlers.VerificationHandler
	Notification *handlers.NotificationHandler
	Admin        *handlers.AdminHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.GET("/profile/me", d.Profile.Me)
	auth.GET("/profile/:user_id", d.Profile.Get)
	auth.PUT("/profile/update", d.Profile.Update)

	auth.POST("/listings", d.Listing.Create)
	auth.GET("/listings", d.Listing.List)
	auth.GET("/listings/mine", d.Listing.Mine)
	auth.GET("/listings/:listing_id", d.Listing.Get)
	auth.PUT("/listings/:listing_id", d.Listing.Update)
	auth.POST("/listings/:listing_id/status", d.Listing.SetStatus)
	auth.POST("/listings/:listing_id/photos", d.Listing.UploadPhoto)

	auth.POST("/requests", d.Request.Create)
	auth.GET("/requests", d.Request.List)
	auth.GET("/requests/mine", d.Request.Mine)
	auth.GET("/requests/:request_id", d.Request.Get)
	auth.PUT("/requests/:request_id", d.Request.Update)
	auth.POST("/requests/:request_id/status", d.Request.SetStatus)

	auth.GET("/match/listings", d.Match.Listings)
	auth.GET("/match/requests", d.Match.Requests)

	auth.POST("/chat/open", d.Chat.Open)
	auth.GET("/chat/conversations", d.Chat.ListConversations)
	auth.GET("/chat/:conversation_id/messages", d.Chat.ListMessages)
	auth.POST("/chat/:conversation_id/read", d.Chat.MarkRead)

	auth.POST("/ratings", d.Rating.Rate)
	auth.GET("/ratings/:user_id", d.Rating.ForUser)

	auth.POST("/reports", d.Report.File)

	auth.POST("/verification", d.Verification.Submit)
	auth.GET("/verification/status", d.Verification.Status)

	auth.GET("/notifications", d.Notification.List)
	auth.POST("/notifications/:notification_id/read", d.Notification.MarkRead)
	auth.POST("/notifications/read-all", d.Notification.MarkAllRead)

	// WebSocket
	auth.GET("/ws/chat", d.WS.ChatWS)

	// Admin
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/stats", d.Admin.Stats)
	admin.GET("/reports", d.Admin.OpenReports)
	admin.POST("/reports/:report_id/resolve", d.Admin.ResolveReport)
	admin.GET("/verifications", d.Admin.PendingVerifications)
	admin.GET("/verifications/:verification_id/document", d.Admin.VerificationDocument)
	admin.POST("/verifications/:verification_id/review", d.Admin.ReviewVerification)
	admin.POST("/listings/:listing_id/expire", d.Admin.ForceExpireListing)
}
