package router

import (
	"github.com/rehanFauzan/uangbro-api/internal/auth"
	"github.com/rehanFauzan/uangbro-api/internal/config"
	"github.com/rehanFauzan/uangbro-api/internal/handler"
	"github.com/rehanFauzan/uangbro-api/internal/middleware"
	"github.com/rehanFauzan/uangbro-api/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and wires every endpoint to its
// auth mode: none for login/register, soft for the ledger itself, strict
// for claim, profile, targets and export.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	resolver := auth.NewResolver(db, cfg.Auth.AllowQueryToken)
	ledger := store.NewLedgerStore(db)

	api := r.Group("/api")

	// registration and login mint the credential; no auth here
	authHandler := handler.NewAuthHandler(db, cfg.Security.BcryptCost, cfg.Auth.ResetSecret, cfg.Auth.ResetExpireMinutes)
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/password/forgot", authHandler.ForgotPassword)
	api.POST("/password/reset", authHandler.ResetPassword)

	profileHandler := handler.NewProfileHandler(db, cfg.App.UploadDir)
	api.GET("/images/:file", profileHandler.GetImage)

	// the ledger works before login: soft auth degrades to anonymous
	txHandler := handler.NewTransactionHandler(ledger)
	soft := api.Group("")
	soft.Use(middleware.Identify(resolver))
	soft.GET("/transactions", txHandler.List)
	soft.POST("/transactions", txHandler.Upsert)
	soft.DELETE("/transactions/:id", txHandler.Delete)

	// everything below needs a resolved identity
	strict := api.Group("")
	strict.Use(middleware.RequireAuth(resolver))

	strict.POST("/transactions/claim", txHandler.Claim)

	strict.GET("/me", profileHandler.Me)
	strict.POST("/profile", profileHandler.UpdateProfile)

	targetHandler := handler.NewTargetHandler(db)
	strict.GET("/targets", targetHandler.List)
	strict.POST("/targets", targetHandler.Create)
	strict.PUT("/targets/:id", targetHandler.Update)
	strict.DELETE("/targets/:id", targetHandler.Delete)

	exportHandler := handler.NewExportHandler(db)
	strict.GET("/export/csv", exportHandler.ExportCSV)
	strict.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
