package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, projects"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/projects [get]
// @Security     BearerAuth
func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.services.ListProjects(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to list projects", "projects_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(projects), "projects": projects})
}

// @Summary      Save project
// @Description  Stores the current building under name, replacing an existing project of that name.
// @Tags         projects
// @Produce      json
// @Param        name  path      string  true  "Project name ([A-Za-z0-9_.-], up to 64)"
// @Success      201   {object}  models.ProjectInfo
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/projects/{name} [post]
// @Security     BearerAuth
func (h *Handler) saveProject(c *gin.Context) {
	name := c.Param("name")
	info, err := h.services.SaveProject(c.Request.Context(), name)
	if err != nil {
		h.respondError(c, "project_save_failed", err, "project", name)
		return
	}
	c.JSON(http.StatusCreated, info)
}

// @Summary      Load project
// @Description  Replaces the current building with the stored one.
// @Tags         projects
// @Produce      json
// @Param        name  path      string  true  "Project name"
// @Success      200   {object}  models.BuildingDocument
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/projects/{name}/load [post]
// @Security     BearerAuth
func (h *Handler) loadProject(c *gin.Context) {
	name := c.Param("name")
	doc, err := h.services.LoadProject(c.Request.Context(), name)
	if err != nil {
		h.respondError(c, "project_load_failed", err, "project", name)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// @Summary      Delete project
// @Tags         projects
// @Produce      json
// @Param        name  path      string  true  "Project name"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/projects/{name} [delete]
// @Security     BearerAuth
func (h *Handler) deleteProject(c *gin.Context) {
	name := c.Param("name")
	if err := h.services.DeleteProject(c.Request.Context(), name); err != nil {
		h.respondError(c, "project_delete_failed", err, "project", name)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusDeleted, "project": name})
}
