package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/volneilb/user-registry/internal/application"
	"github.com/volneilb/user-registry/internal/domain/entity"
	"github.com/volneilb/user-registry/pkg/events"
	"github.com/volneilb/user-registry/pkg/response"
	"github.com/volneilb/user-registry/pkg/validation"
)

const birthdayLayout = "2006-01-02"

// NotificationPublisher is the outbound channel announcing user
// creation. Publishing is best effort: a failure is logged and never
// fails the HTTP request.
type NotificationPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type UserHandler struct {
	Svc            *userapp.Service
	Pub            NotificationPublisher
	Logger         *logrus.Logger
	PublishTimeout time.Duration
}

func NewUserHandler(svc *userapp.Service, pub NotificationPublisher, logger *logrus.Logger, publishTimeout time.Duration) *UserHandler {
	if publishTimeout <= 0 {
		publishTimeout = 2 * time.Second
	}
	return &UserHandler{Svc: svc, Pub: pub, Logger: logger, PublishTimeout: publishTimeout}
}

type addressRequest struct {
	PostalCode     string `json:"postal_code" binding:"required,max=9"`
	Street         string `json:"street" binding:"required"`
	Neighborhood   string `json:"neighborhood" binding:"required"`
	City           string `json:"city" binding:"required"`
	State          string `json:"state" binding:"required"`
	AdditionalInfo string `json:"additional_info"`
	Number         string `json:"number" binding:"required"`
}

type userRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required,email,max=100"`
	Birthday string         `json:"birthday" binding:"required,datetime=2006-01-02"`
	Address  addressRequest `json:"address" binding:"required"`
}

type addressResponse struct {
	PostalCode     string `json:"postal_code"`
	Street         string `json:"street"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	State          string `json:"state"`
	AdditionalInfo string `json:"additional_info,omitempty"`
	Number         string `json:"number"`
}

type userResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Birthday  string          `json:"birthday"`
	Address   addressResponse `json:"address"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (r userRequest) toInput() userapp.UserInput {
	birthday, _ := time.Parse(birthdayLayout, r.Birthday) // format checked by binding
	return userapp.UserInput{
		Name:     r.Name,
		Email:    r.Email,
		Birthday: birthday,
		Address: entity.Address{
			PostalCode:     r.Address.PostalCode,
			Street:         r.Address.Street,
			Neighborhood:   r.Address.Neighborhood,
			City:           r.Address.City,
			State:          r.Address.State,
			AdditionalInfo: r.Address.AdditionalInfo,
			Number:         r.Address.Number,
		},
	}
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Birthday: u.Birthday.Format(birthdayLayout),
		Address: addressResponse{
			PostalCode:     u.Address.PostalCode,
			Street:         u.Address.Street,
			Neighborhood:   u.Address.Neighborhood,
			City:           u.Address.City,
			State:          u.Address.State,
			AdditionalInfo: u.Address.AdditionalInfo,
			Number:         u.Address.Number,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Create handles POST /users. After a successful create it announces
// the new user on the notification queue; that publish never affects
// the response.
func (h *UserHandler) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}

	h.publishCreated(req)
	response.Success(c, http.StatusCreated, toUserResponse(u), "user created")
}

// FindAll handles GET /users.
func (h *UserHandler) FindAll(c *gin.Context) {
	users, err := h.Svc.FindAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	response.Success(c, http.StatusOK, out, "users")
}

// FindByID handles GET /users/:id.
func (h *UserHandler) FindByID(c *gin.Context) {
	u, err := h.Svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user")
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "user updated")
}

// Delete handles DELETE /users/:id. No notification is emitted.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// publishCreated sends the original request payload to the queue with
// a bounded timeout, detached from the request context so client
// disconnects cannot cancel it.
func (h *UserHandler) publishCreated(req userRequest) {
	if h.Pub == nil {
		return
	}
	msg := events.UserCreated{
		Name:     req.Name,
		Email:    req.Email,
		Birthday: req.Birthday,
		Address: events.AddressPayload{
			PostalCode:     req.Address.PostalCode,
			Street:         req.Address.Street,
			Neighborhood:   req.Address.Neighborhood,
			City:           req.Address.City,
			State:          req.Address.State,
			AdditionalInfo: req.Address.AdditionalInfo,
			Number:         req.Address.Number,
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), h.PublishTimeout)
	defer cancel()
	if err := h.Pub.PublishJSON(ctx, msg); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("email", msg.Email).Warn("failed to publish user created message")
		}
		return
	}
	if h.Logger != nil {
		h.Logger.WithField("email", msg.Email).Info("published user created message")
	}
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, userapp.ErrEmailTaken):
		response.Error(c, http.StatusConflict, err.Error(), nil)
	default:
		// Keep store diagnostics out of the response body.
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
