package routes

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/dhanu742005-ai/pothole-app/handlers"
	"github.com/dhanu742005-ai/pothole-app/routeplanner"
)

func SetupRouter(firestoreClient *firestore.Client, planner *routeplanner.Planner) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Pothole reporting service is running",
		})
	})

	// Inject Firestore client into handlers
	r.POST("/upload", func(c *gin.Context) {
		handlers.UploadReportHandler(c, firestoreClient)
	})
	r.POST("/whatsapp", func(c *gin.Context) {
		handlers.WhatsappWebhookHandler(c, firestoreClient)
	})

	admin := r.Group("/admin")
	{
		admin.GET("/dashboard", func(c *gin.Context) {
			handlers.AdminDashboardHandler(c, firestoreClient)
		})
		admin.POST("/cluster/update", func(c *gin.Context) {
			handlers.UpdateClusterStatusHandler(c, firestoreClient)
		})
	}

	api := r.Group("/api")
	{
		api.GET("/export/potholes", func(c *gin.Context) {
			handlers.ExportPotholesHandler(c, firestoreClient)
		})
		api.GET("/potholes/locations", func(c *gin.Context) {
			handlers.GetPotholeLocationsHandler(c, firestoreClient)
		})
		api.GET("/bad-segments", func(c *gin.Context) {
			handlers.GetBadSegmentsHandler(c, firestoreClient)
		})
		api.POST("/bad-segments/refresh", func(c *gin.Context) {
			handlers.RefreshBadSegmentsHandler(c, firestoreClient)
		})
		api.POST("/route/plan", func(c *gin.Context) {
			handlers.PlanRouteHandler(c, firestoreClient, planner)
		})
		api.POST("/admin/add-pothole", func(c *gin.Context) {
			handlers.AdminAddPotholeHandler(c, firestoreClient)
		})
	}

	return r
}
