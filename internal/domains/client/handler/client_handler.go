package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"billpop-backend/internal/domains/client/model"
	"billpop-backend/internal/domains/client/service"
	"billpop-backend/internal/shared/response"
)

// =====================================================
// CLIENT HANDLER
// =====================================================
type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// RegisterRoutes registers all client routes
func (h *ClientHandler) RegisterRoutes(api *gin.RouterGroup) {
	clients := api.Group("/clients")
	{
		clients.GET("", h.ListClients)          // GET /api/clients
		clients.POST("", h.CreateClient)        // POST /api/clients
		clients.PATCH("", h.UpdateClient)       // PATCH /api/clients
		clients.DELETE("", h.DeleteClient)      // DELETE /api/clients
		clients.POST("/default", h.EnsureDefault) // POST /api/clients/default
	}
}

// ListClients returns all clients, newest first.
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, clients)
}

// CreateClient creates a client from {name, email?}.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req model.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Name is required", err.Error())
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, client)
}

// UpdateClient updates name/email of the client named by {id}.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var req model.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "ID is required", err.Error())
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, client)
}

// DeleteClient deletes the client named by {id}.
// A missing id fails validation here; no store call is attempted.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	var req model.DeleteClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "ID is required", err.Error())
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), req.ID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.DeleteClientResponse{Success: true})
}

// EnsureDefault provisions the default client when the store is empty.
// Idempotent; the invoice form calls this when it first renders.
func (h *ClientHandler) EnsureDefault(c *gin.Context) {
	client, err := h.clientService.EnsureDefaultClient(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, client)
}

func (h *ClientHandler) handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrClientNotFound) {
		response.NotFound(c, "Client not found")
		return
	}
	response.InternalServerError(c, err.Error())
}
