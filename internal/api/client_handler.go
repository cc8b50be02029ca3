package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartgains/trainer-app/internal/domain"
	"smartgains/trainer-app/internal/service"
)

// ClientHandler serves the trainer's client roster.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type ClientRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Occupation  string `json:"occupation"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	LocationGym string `json:"locationGym"`
}

func (r ClientRequest) toDomain() *domain.Client {
	return &domain.Client{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Age:         r.Age,
		Gender:      r.Gender,
		Occupation:  r.Occupation,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		LocationGym: r.LocationGym,
	}
}

func (h *ClientHandler) Create(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), trainerID, req.toDomain())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) List(c *gin.Context) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	clients, err := h.clientService.List(c.Request.Context(), trainerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), trainerID, clientID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	client := req.toDomain()
	client.ID = clientID
	if err := h.clientService.Update(c.Request.Context(), trainerID, client); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	trainerID, clientID, ok := trainerAndPathID(c, "clientId")
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), trainerID, clientID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}

// trainerAndPathID pulls the trainer from the JWT context and one int64 path
// parameter, writing the error response itself on failure.
func trainerAndPathID(c *gin.Context, param string) (trainerID, pathID int64, ok bool) {
	trainerID, err := getTrainerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return 0, 0, false
	}

	pathID, err = strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || pathID < 1 {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s", param))
		return 0, 0, false
	}
	return trainerID, pathID, true
}
