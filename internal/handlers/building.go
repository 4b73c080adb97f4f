package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"thermal_planner/internal/catalog"
	"thermal_planner/internal/service"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusReset   = "reset"
	statusDeleted = "deleted"

	errInvalidBodyPref = "invalid body: "
)

type initialRoomRequest struct {
	XLen     float64 `json:"x_len" example:"4"`
	YLen     float64 `json:"y_len" example:"5"`
	Height   float64 `json:"height" example:"2.7"`
	Material string  `json:"material,omitempty" example:"Brick_Red_380"`
	Name     string  `json:"name,omitempty" example:"Living room"`
}

type addRoomRequest struct {
	Depth float64 `json:"depth" example:"3"`
	Name  string  `json:"name,omitempty" example:"Kitchen"`
}

type renameRoomRequest struct {
	Name string `json:"name" binding:"required" example:"Bedroom"`
}

type openingRequest struct {
	Tech   string  `json:"tech" binding:"required" example:"Win_Standard"`
	Width  float64 `json:"width" example:"1.2"`
	Height float64 `json:"height" example:"1.4"`
}

type materialRequest struct {
	Material string `json:"material" binding:"required" example:"Aeroc_D400_300"`
}

type hvacRequest struct {
	Preset string `json:"preset" binding:"required" example:"AC_09"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get building
// @Tags         building
// @Produce      json
// @Success      200  {object}  models.BuildingDocument
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/building [get]
// @Security     BearerAuth
func (h *Handler) getBuilding(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Document(c.Request.Context()))
}

// @Summary      Reset building
// @Description  Drops every room and wall.
// @Tags         building
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, building"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/building [delete]
// @Security     BearerAuth
func (h *Handler) resetBuilding(c *gin.Context) {
	doc := h.services.Reset(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": statusReset, "building": doc})
}

// @Summary      Create the first room
// @Description  Only allowed on an empty building. Material defaults to the configured one.
// @Tags         building
// @Accept       json
// @Produce      json
// @Param        body  body      initialRoomRequest  true  "Room size"
// @Success      201   {object}  service.Mutation
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/building/rooms/initial [post]
// @Security     BearerAuth
func (h *Handler) createInitialRoom(c *gin.Context) {
	var req initialRoomRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	m, err := h.services.CreateInitialRoom(c.Request.Context(), service.InitialRoomParams{
		XLen:     req.XLen,
		YLen:     req.YLen,
		Height:   req.Height,
		Material: req.Material,
		Name:     req.Name,
	})
	if err != nil {
		h.respondError(c, "create_initial_room_failed", err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// @Summary      Add a room behind a wall
// @Description  The new room extends the wall outward by depth metres and reuses walls with identical geometry.
// @Tags         building
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Wall id"
// @Param        body  body      addRoomRequest  true  "Depth and name"
// @Success      201   {object}  service.Mutation
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/building/walls/{id}/rooms [post]
// @Security     BearerAuth
func (h *Handler) addRoomToWall(c *gin.Context) {
	var req addRoomRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	wallID := c.Param("id")
	m, err := h.services.AddRoomToWall(c.Request.Context(), wallID, req.Depth, req.Name)
	if err != nil {
		h.respondError(c, "add_room_failed", err, "wall_id", wallID)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// @Summary      Delete room
// @Tags         building
// @Produce      json
// @Param        id   path      string  true  "Room id"
// @Success      200  {object}  service.Mutation
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/building/rooms/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteRoom(c *gin.Context) {
	roomID := c.Param("id")
	m, err := h.services.DeleteRoom(c.Request.Context(), roomID)
	if err != nil {
		h.respondError(c, "delete_room_failed", err, "room_id", roomID)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Rename room
// @Tags         building
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Room id"
// @Param        body  body      renameRoomRequest  true  "New name"
// @Success      200   {object}  service.Mutation
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/building/rooms/{id} [patch]
// @Security     BearerAuth
func (h *Handler) renameRoom(c *gin.Context) {
	var req renameRoomRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	roomID := c.Param("id")
	m, err := h.services.RenameRoom(c.Request.Context(), roomID, req.Name)
	if err != nil {
		h.respondError(c, "rename_room_failed", err, "room_id", roomID)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Add window or door
// @Tags         building
// @Accept       json
// @Produce      json
// @Param        id    path      string          true  "Wall id"
// @Param        body  body      openingRequest  true  "Catalog tech and size"
// @Success      201   {object}  service.Mutation
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/building/walls/{id}/openings [post]
// @Security     BearerAuth
func (h *Handler) addOpening(c *gin.Context) {
	var req openingRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	wallID := c.Param("id")
	m, err := h.services.AddOpening(c.Request.Context(), wallID, service.OpeningParams{
		Tech:   req.Tech,
		Width:  req.Width,
		Height: req.Height,
	})
	if err != nil {
		h.respondError(c, "add_opening_failed", err, "wall_id", wallID)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// @Summary      Change wall material
// @Tags         building
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Wall id"
// @Param        body  body      materialRequest  true  "Catalog material key"
// @Success      200   {object}  service.Mutation
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/building/walls/{id}/material [put]
// @Security     BearerAuth
func (h *Handler) setWallMaterial(c *gin.Context) {
	var req materialRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	wallID := c.Param("id")
	m, err := h.services.SetWallMaterial(c.Request.Context(), wallID, req.Material)
	if err != nil {
		h.respondError(c, "set_wall_material_failed", err, "wall_id", wallID)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Install HVAC device
// @Tags         building
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Room id"
// @Param        body  body      hvacRequest  true  "Catalog preset key"
// @Success      201   {object}  service.Mutation
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/building/rooms/{id}/hvac [post]
// @Security     BearerAuth
func (h *Handler) addHVAC(c *gin.Context) {
	var req hvacRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}
	roomID := c.Param("id")
	m, err := h.services.AddHVAC(c.Request.Context(), roomID, req.Preset)
	if err != nil {
		h.respondError(c, "add_hvac_failed", err, "room_id", roomID)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// @Summary      Remove HVAC device
// @Tags         building
// @Produce      json
// @Param        id      path      string  true  "Room id"
// @Param        device  path      string  true  "Device id"
// @Success      200     {object}  service.Mutation
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/building/rooms/{id}/hvac/{device} [delete]
// @Security     BearerAuth
func (h *Handler) removeHVAC(c *gin.Context) {
	roomID, deviceID := c.Param("id"), c.Param("device")
	m, err := h.services.RemoveHVAC(c.Request.Context(), roomID, deviceID)
	if err != nil {
		h.respondError(c, "remove_hvac_failed", err, "room_id", roomID, "device_id", deviceID)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Wall facing a direction
// @Tags         building
// @Produce      json
// @Param        id         path      string  true  "Room id"
// @Param        direction  path      string  true  "Compass direction"  Enums(N,E,S,W,north,east,south,west)
// @Success      200        {object}  models.WallDocument
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /api/v1/building/rooms/{id}/walls/{direction} [get]
// @Security     BearerAuth
func (h *Handler) wallByDirection(c *gin.Context) {
	roomID, dir := c.Param("id"), c.Param("direction")
	w, err := h.services.WallByDirection(c.Request.Context(), roomID, dir)
	if err != nil {
		h.respondError(c, "wall_by_direction_failed", err, "room_id", roomID, "direction", dir)
		return
	}
	c.JSON(http.StatusOK, w)
}

// catalogFilter reads the optional u_min, u_max, density_min, density_max and q parameters.
func catalogFilter(c *gin.Context) (catalog.Filter, error) {
	f := catalog.Filter{Query: c.Query("q")}
	for key, dst := range map[string]**float64{
		"u_min":       &f.UMin,
		"u_max":       &f.UMax,
		"density_min": &f.DensityMin,
		"density_max": &f.DensityMax,
	} {
		s := c.Query(key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) {
			return f, fmt.Errorf("%w: %s must be a number", service.ErrInvalidParams, key)
		}
		*dst = &v
	}
	if f.UMin != nil && f.UMax != nil && *f.UMin > *f.UMax {
		return f, fmt.Errorf("%w: u_min exceeds u_max", service.ErrInvalidParams)
	}
	if f.DensityMin != nil && f.DensityMax != nil && *f.DensityMin > *f.DensityMax {
		return f, fmt.Errorf("%w: density_min exceeds density_max", service.ErrInvalidParams)
	}
	return f, nil
}

// @Summary      Catalog
// @Description  Wall materials, window and door techs and HVAC presets, sorted by key.
// @Description  U bounds narrow materials and openings, density bounds narrow materials, q searches keys and names.
// @Tags         catalog
// @Produce      json
// @Param        u_min        query     number  false  "Minimum U-value, W/(m²·K)"
// @Param        u_max        query     number  false  "Maximum U-value, W/(m²·K)"
// @Param        density_min  query     number  false  "Minimum density, kg/m³"
// @Param        density_max  query     number  false  "Maximum density, kg/m³"
// @Param        q            query     string  false  "Case-insensitive name search"
// @Success      200          {object}  catalog.Listing
// @Failure      400          {object}  map[string]string
// @Router       /api/v1/catalog [get]
// @Security     BearerAuth
func (h *Handler) getCatalog(c *gin.Context) {
	f, err := catalogFilter(c)
	if err != nil {
		h.respondError(c, "catalog_bad_filter", err)
		return
	}
	c.JSON(http.StatusOK, h.services.Catalog(f))
}
