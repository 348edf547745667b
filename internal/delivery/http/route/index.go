package route

import (
	"database/sql"

	httpHandler "service-market/internal/delivery/http/handler"
	"service-market/internal/delivery/http/middleware"
	"service-market/internal/repository/mongodb"
	repo "service-market/internal/repository/postgresql"
	service "service-market/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRoute wires repositories, services and handlers onto the engine.
// mongoClient may be nil; order status history is then skipped.
func SetupRoute(app *gin.Engine, db *sql.DB, mongoClient *mongo.Client, mediaDir string) {
	userRepo := repo.NewUserRepository(db)
	profileRepo := repo.NewProfileRepository(db)
	tokenRepo := repo.NewTokenRepository(db)
	offerRepo := repo.NewOfferRepository(db)
	orderRepo := repo.NewOrderRepository(db)
	reviewRepo := repo.NewReviewRepository(db)

	var logRepo mongodb.LogRepository
	if mongoClient != nil {
		logRepo = mongodb.NewLogRepository(mongoClient)
	}

	authService := service.NewAuthService(userRepo, profileRepo, tokenRepo)
	profileService := service.NewProfileService(profileRepo, userRepo)
	offerService := service.NewOfferService(offerRepo, profileRepo)
	orderService := service.NewOrderService(orderRepo, offerRepo, profileRepo, logRepo)
	reviewService := service.NewReviewService(reviewRepo, profileRepo, userRepo)
	infoService := service.NewInfoService(reviewRepo, profileRepo, offerRepo, orderRepo)

	authHandler := httpHandler.NewAuthHandler(authService)
	profileHandler := httpHandler.NewProfileHandler(profileService, mediaDir)
	offerHandler := httpHandler.NewOfferHandler(offerService, mediaDir)
	orderHandler := httpHandler.NewOrderHandler(orderService)
	reviewHandler := httpHandler.NewReviewHandler(reviewService)
	infoHandler := httpHandler.NewInfoHandler(infoService)

	authRequired := middleware.AuthRequired(tokenRepo)
	optionalAuth := middleware.OptionalAuth(tokenRepo)

	app.Static("/media", mediaDir)

	api := app.Group("/api")

	api.POST("/registration/", authHandler.Register)
	api.POST("/login/", authHandler.Login)
	api.POST("/logout/", authRequired, authHandler.Logout)

	api.GET("/profile/:user_id/", authRequired, profileHandler.Get)
	api.PATCH("/profile/:user_id/", authRequired, profileHandler.Patch)
	api.GET("/profiles/business/", authRequired, profileHandler.ListBusiness)
	api.GET("/profiles/customer/", authRequired, profileHandler.ListCustomer)

	api.GET("/offers/", optionalAuth, offerHandler.List)
	api.POST("/offers/", authRequired, offerHandler.Create)
	api.GET("/offers/:id/", authRequired, offerHandler.Get)
	api.PATCH("/offers/:id/", authRequired, offerHandler.Patch)
	api.DELETE("/offers/:id/", authRequired, offerHandler.Delete)
	api.GET("/offerdetails/:id/", optionalAuth, offerHandler.GetDetail)

	api.GET("/orders/", authRequired, orderHandler.List)
	api.POST("/orders/", authRequired, orderHandler.Create)
	api.GET("/orders/:id/", authRequired, orderHandler.Get)
	api.PATCH("/orders/:id/", authRequired, orderHandler.PatchStatus)
	api.DELETE("/orders/:id/", authRequired, orderHandler.Delete)
	api.GET("/order-count/:business_user_id/", authRequired, orderHandler.OrderCount)
	api.GET("/completed-order-count/:business_user_id/", authRequired, orderHandler.CompletedOrderCount)

	api.GET("/reviews/", optionalAuth, reviewHandler.List)
	api.POST("/reviews/", authRequired, reviewHandler.Create)
	api.PATCH("/reviews/:id/", authRequired, reviewHandler.Patch)
	api.DELETE("/reviews/:id/", authRequired, reviewHandler.Delete)

	api.GET("/base-info/", infoHandler.BaseInfo)
	api.GET("/dashboard/", authRequired, infoHandler.Dashboard)
}
