package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/mithai/app/services"
	"github.com/shashiranjanraj/mithai/pkg/bind"
	"github.com/shashiranjanraj/mithai/pkg/logger"
	"github.com/shashiranjanraj/mithai/pkg/response"
)

type SweetController struct {
	service *services.SweetService
}

func NewSweetController(service *services.SweetService) *SweetController {
	return &SweetController{service: service}
}

type sweetRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Category string  `json:"category" validate:"required,max=255"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (req sweetRequest) fields() services.SweetFields {
	return services.SweetFields{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
}

// sweetID parses the {id} URL parameter. A non-numeric id can never match a
// record, so it is reported the same way as an absent one.
func sweetID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	return uint(id), err
}

// Create handles POST /api/sweets.
func (c *SweetController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	var body sweetRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sweet, err := c.service.Create(body.fields(), user)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("sweet created", "sweet_id", sweet.ID, "by", user.Username)
	response.Created(w, sweet)
}

// List handles GET /api/sweets.
func (c *SweetController) List(w http.ResponseWriter, r *http.Request) {
	sweets, err := c.service.List()
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	response.Success(w, sweets)
}

// Search handles GET /api/sweets/search?name=.
func (c *SweetController) Search(w http.ResponseWriter, r *http.Request) {
	sweets, err := c.service.Search(r.URL.Query().Get("name"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	response.Success(w, sweets)
}

// Update handles PUT /api/sweets/{id}.
func (c *SweetController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	id, err := sweetID(r)
	if err != nil {
		response.NotFound(w, "Sweet not found")
		return
	}

	var body sweetRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	sweet, err := c.service.Update(id, body.fields(), user)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	response.Success(w, sweet)
}

// Delete handles DELETE /api/sweets/{id}.
func (c *SweetController) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	id, err := sweetID(r)
	if err != nil {
		response.NotFound(w, "Sweet not found")
		return
	}

	if err := c.service.Delete(id, user); err != nil {
		c.writeError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("sweet deleted", "sweet_id", id, "by", user.Username)
	response.NoContent(w)
}

// Purchase handles POST /api/sweets/{id}/purchase.
func (c *SweetController) Purchase(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Not authenticated")
		return
	}

	id, err := sweetID(r)
	if err != nil {
		response.NotFound(w, "Sweet not found")
		return
	}

	remaining, err := c.service.Purchase(id, user)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info("sweet purchased",
		"sweet_id", id, "by", user.Username, "remaining", remaining)
	response.Success(w, map[string]interface{}{
		"message":            "Purchase successful",
		"remaining_quantity": remaining,
	})
}

// writeError maps service errors to HTTP responses.
func (c *SweetController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w, "Sweet not found")
	case errors.Is(err, services.ErrOutOfStock):
		response.Error(w, http.StatusBadRequest, "Out of stock")
	case errors.Is(err, services.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, services.ErrInvalidInput.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		response.Unauthorized(w, "Not authenticated")
	default:
		logger.WithCtx(r.Context()).Error("sweet operation failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
