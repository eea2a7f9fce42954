package handlers

import (
	"net/http"

	"toy_store_backend/internal/models"
	"toy_store_backend/internal/repositories"
	"toy_store_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
	pager         Pagination
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService, pager Pagination) *ClientHandler {
	return &ClientHandler{clientService: cs, pager: pager}
}

// CreateClient handles POST /clients/.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req services.CreateClientRequest
	if !bindJSON(c, &req, "CreateClient") {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateClient")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClients handles GET /clients/ with exact-match fullName and email filters.
func (h *ClientHandler) GetClients(c *gin.Context) {
	var filter repositories.ClientFilter
	if v := c.Query("fullName"); v != "" {
		filter.FullName = &v
	}
	if v := c.Query("email"); v != "" {
		filter.Email = &v
	}

	page, ok := h.pager.PageFromRequest(c)
	if !ok {
		return
	}

	clients, totalCount, err := h.clientService.GetClients(c.Request.Context(), filter, page)
	if err != nil {
		respondServiceError(c, err, "GetClients")
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}
	h.pager.Respond(c, page, totalCount, clients)
}

// GetClientByID handles GET /clients/:id/.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		respondServiceError(c, err, "GetClientByID")
		return
	}
	c.JSON(http.StatusOK, client)
}

// ReplaceClient handles PUT /clients/:id/.
func (h *ClientHandler) ReplaceClient(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.CreateClientRequest
	if !bindJSON(c, &req, "ReplaceClient") {
		return
	}

	client, err := h.clientService.ReplaceClient(c.Request.Context(), clientID, req)
	if err != nil {
		respondServiceError(c, err, "ReplaceClient")
		return
	}
	c.JSON(http.StatusOK, client)
}

// UpdateClient handles PATCH /clients/:id/.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateClientRequest
	if !bindJSON(c, &req, "UpdateClient") {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req)
	if err != nil {
		respondServiceError(c, err, "UpdateClient")
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /clients/:id/. The client's sales go with it.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), clientID); err != nil {
		respondServiceError(c, err, "DeleteClient")
		return
	}
	c.Status(http.StatusNoContent)
}
