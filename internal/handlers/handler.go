package handlers

import (
	"thermal_planner/internal/logger"
	"thermal_planner/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Simulation progress stream (HTTP upgrade) on the same port
	router.GET("/ws/simulation", h.wsSimulation)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerBuildingRoutes(api)
		h.registerSimulationRoutes(api)
		h.registerProjectRoutes(api)
		h.registerLogRoutes(api)
		api.GET("/catalog", h.getCatalog)
	}
}

func (h *Handler) registerBuildingRoutes(api *gin.RouterGroup) {
	b := api.Group("/building")
	{
		b.GET("", h.getBuilding)
		b.DELETE("", h.resetBuilding)

		// Body example: {"x_len":4,"y_len":5,"height":2.7,"material":"Brick_Red_380","name":"Living"}
		b.POST("/rooms/initial", h.createInitialRoom)
		b.PATCH("/rooms/:id", h.renameRoom)
		b.DELETE("/rooms/:id", h.deleteRoom)
		b.POST("/rooms/:id/hvac", h.addHVAC)
		b.DELETE("/rooms/:id/hvac/:device", h.removeHVAC)
		b.GET("/rooms/:id/walls/:direction", h.wallByDirection)

		b.POST("/walls/:id/rooms", h.addRoomToWall)
		b.POST("/walls/:id/openings", h.addOpening)
		b.PUT("/walls/:id/material", h.setWallMaterial)
	}
}

func (h *Handler) registerSimulationRoutes(api *gin.RouterGroup) {
	sim := api.Group("/simulation")
	{
		sim.GET("/defaults", h.simulationDefaults)
		sim.POST("/run", h.runSimulation)
		sim.POST("/export.csv", h.exportCSV)
		sim.GET("/runs", h.listRuns)
	}
}

func (h *Handler) registerProjectRoutes(api *gin.RouterGroup) {
	p := api.Group("/projects")
	{
		p.GET("", h.listProjects)
		p.POST("/:name", h.saveProject)
		p.POST("/:name/load", h.loadProject)
		p.DELETE("/:name", h.deleteProject)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
