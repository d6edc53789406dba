package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/workcafe/workcafe-api/internal/audit"
	"github.com/workcafe/workcafe-api/internal/config"
	"github.com/workcafe/workcafe-api/internal/handlers"
	infraRepo "github.com/workcafe/workcafe-api/internal/infra/repository"
	"github.com/workcafe/workcafe-api/internal/middleware"
	"github.com/workcafe/workcafe-api/internal/uploads"
	ucVenue "github.com/workcafe/workcafe-api/internal/usecase/venue"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	venueRepo := infraRepo.NewVenueGormRepository(db)
	checkInRepo := infraRepo.NewCheckInGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	uploader := uploads.NewUploader(cfg)

	// ======================================================
	// USE CASES — VENUES
	// ======================================================
	submitVenueUC := ucVenue.NewSubmitVenue(venueRepo, auditDispatcher)
	updateVenueUC := ucVenue.NewUpdateVenue(venueRepo, auditDispatcher)
	approveVenueUC := ucVenue.NewApproveVenue(venueRepo, auditDispatcher)
	rejectVenueUC := ucVenue.NewRejectVenue(venueRepo, auditDispatcher)
	claimVenueUC := ucVenue.NewClaimVenue(venueRepo, auditDispatcher)
	deleteVenueUC := ucVenue.NewDeleteVenue(venueRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	meHandler := handlers.NewMeHandler(db)

	cafeHandler := handlers.NewCafeHandler(
		db, cfg, venueRepo,
		submitVenueUC, updateVenueUC, deleteVenueUC,
	)
	locationHandler := handlers.NewLocationHandler(
		db, cfg, venueRepo, uploader, auditDispatcher,
		submitVenueUC, updateVenueUC,
		approveVenueUC, rejectVenueUC,
		claimVenueUC, deleteVenueUC,
	)

	reviewHandler := handlers.NewReviewHandler(db, auditDispatcher)
	checkInHandler := handlers.NewCheckInHandler(checkInRepo, venueRepo, auditDispatcher)
	favoriteHandler := handlers.NewFavoriteHandler(db, auditDispatcher)
	categoryHandler := handlers.NewCategoryHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	requireAuth := middleware.RequireAuth(cfg)
	optionalAuth := middleware.OptionalAuth(cfg)
	requireAdmin := middleware.RequireAdmin()

	// ======================================================
	// USERS
	// ======================================================
	users := r.Group("/api/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)

		me := users.Group("/me", requireAuth)
		{
			me.GET("", meHandler.Get)
			me.PUT("", meHandler.Update)
			me.PUT("/password", meHandler.ChangePassword)

			me.GET("/reviews", meHandler.MyReviews)
			me.GET("/favorites", favoriteHandler.List)
			me.GET("/checkins", checkInHandler.MyHistory)
			me.POST("/checkout", checkInHandler.CheckOut)
			me.GET("/locations", locationHandler.MySubmissions)
		}
	}

	// ======================================================
	// CAFES
	// ======================================================
	cafes := r.Group("/api/cafes")
	{
		cafes.GET("", cafeHandler.List)
		cafes.GET("/search", cafeHandler.Search)
		cafes.GET("/nearby", cafeHandler.Nearby)
		cafes.GET("/:id", optionalAuth, cafeHandler.Get)

		cafes.GET("/:id/reviews", reviewHandler.ListForVenue)
		cafes.POST("/:id/reviews", requireAuth, reviewHandler.Create)

		cafes.GET("/:id/checkins", checkInHandler.Active)
		cafes.POST("/:id/checkins", requireAuth, checkInHandler.Create)
		cafes.GET("/:id/occupancy", checkInHandler.Occupancy)

		cafes.POST("/:id/favorite", requireAuth, favoriteHandler.Add)
		cafes.DELETE("/:id/favorite", requireAuth, favoriteHandler.Remove)

		admin := cafes.Group("", requireAuth, requireAdmin)
		{
			admin.POST("", cafeHandler.Create)
			admin.PUT("/:id", cafeHandler.Update)
			admin.DELETE("/:id", cafeHandler.Delete)
		}
	}

	// ======================================================
	// REVIEWS
	// ======================================================
	reviews := r.Group("/api/reviews", requireAuth)
	{
		reviews.PUT("/:id", reviewHandler.Update)
		reviews.DELETE("/:id", reviewHandler.Delete)
	}

	// ======================================================
	// LOCATIONS
	// ======================================================
	locations := r.Group("/api/locations")
	{
		locations.GET("", locationHandler.List)

		admin := locations.Group("/admin", requireAuth, requireAdmin)
		{
			admin.GET("/pending", locationHandler.Pending)
			admin.PUT("/:id/approve", locationHandler.Approve)
			admin.PUT("/:id/reject", locationHandler.Reject)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}

		locations.GET("/:id", optionalAuth, locationHandler.Get)
		locations.POST("", requireAuth, locationHandler.Submit)
		locations.PUT("/:id", requireAuth, locationHandler.Update)
		locations.DELETE("/:id", requireAuth, requireAdmin, locationHandler.Delete)

		locations.POST("/:id/claim", requireAuth, locationHandler.Claim)
		locations.POST("/:id/photos", requireAuth, locationHandler.UploadPhotos)
		locations.POST("/:id/verify", requireAuth, locationHandler.Verify)

		locations.GET("/:id/reviews", reviewHandler.ListForVenue)
		locations.POST("/:id/reviews", requireAuth, reviewHandler.Create)
	}

	// ======================================================
	// CATEGORIES
	// ======================================================
	categories := r.Group("/api/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.POST("", requireAuth, requireAdmin, categoryHandler.Create)
	}
}
