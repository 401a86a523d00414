package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"contacts-api/internal/delivery/http/response"
	"contacts-api/internal/domain"
	"contacts-api/internal/usecase"
	"contacts-api/pkg/apperror"
	"contacts-api/pkg/logger"
	"contacts-api/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

type contactURI struct {
	ID string `uri:"id" binding:"required,objectid"`
}

// NewContactHandler registers the /contacts routes
func NewContactHandler(r gin.IRouter, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	contacts := r.Group("/contacts")
	{
		contacts.GET("", handler.List)
		contacts.GET("/:id", handler.Get)
		contacts.POST("", handler.Create)
		contacts.PUT("/:id", handler.Update)
		contacts.DELETE("/:id", handler.Delete)
	}
}

// List godoc
// @Summary      List contacts
// @Description  Returns every stored contact
// @Tags         contacts
// @Produce      json
// @Success      200  {array}   domain.Contact
// @Failure      500  {object}  response.ErrorResponse
// @Router       /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contactUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	logger.Log.Debug("Listed contacts", "request_id", response.RequestID(c), "count", len(contacts))
	response.Success(c, http.StatusOK, contacts)
}

// Get godoc
// @Summary      Get a contact
// @Description  Returns the contact with the given id
// @Tags         contacts
// @Produce      json
// @Param        id   path      string  true  "Contact ID (24 hex characters)"
// @Success      200  {object}  domain.Contact
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       /contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := bindContactID(c)
	if !ok {
		return
	}

	contact, err := h.contactUC.Get(c.Request.Context(), id)
	if err != nil {
		logNotFound(c, id, err)
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, contact)
}

// Create godoc
// @Summary      Create a contact
// @Description  Creates a contact; all five fields are required
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactInput  true  "Contact"
// @Success      201      {object}  response.CreatedResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var in domain.ContactInput
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		logRejectedBody(c, err)
		c.Error(usecase.MissingFieldsError().WithDetails(receivedBody(c)))
		return
	}

	id, err := h.contactUC.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrMissingFields) {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				appErr.WithDetails(receivedBody(c))
			}
		}
		c.Error(err)
		return
	}

	logger.Log.Info("Contact created", "request_id", response.RequestID(c), "id", id)
	response.Success(c, http.StatusCreated, response.CreatedResponse{
		Message:   "Contact created successfully",
		ContactID: id,
	})
}

// Update godoc
// @Summary      Replace a contact
// @Description  Replaces all five fields of an existing contact
// @Tags         contacts
// @Accept       json
// @Param        id       path      string               true  "Contact ID (24 hex characters)"
// @Param        contact  body      domain.ContactInput  true  "Contact"
// @Success      204
// @Failure      400      {object}  response.ErrorResponse
// @Failure      404      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := bindContactID(c)
	if !ok {
		return
	}

	var in domain.ContactInput
	if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
		logRejectedBody(c, err)
		c.Error(usecase.MissingFieldsError())
		return
	}

	if err := h.contactUC.Update(c.Request.Context(), id, in); err != nil {
		logNotFound(c, id, err)
		c.Error(err)
		return
	}

	logger.Log.Info("Contact updated", "request_id", response.RequestID(c), "id", id)
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary      Delete a contact
// @Description  Permanently removes a contact
// @Tags         contacts
// @Produce      json
// @Param        id   path      string  true  "Contact ID (24 hex characters)"
// @Success      200  {object}  response.DeletedResponse
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Failure      500  {object}  response.ErrorResponse
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := bindContactID(c)
	if !ok {
		return
	}

	if err := h.contactUC.Delete(c.Request.Context(), id); err != nil {
		logNotFound(c, id, err)
		c.Error(err)
		return
	}

	logger.Log.Info("Contact deleted", "request_id", response.RequestID(c), "id", id)
	response.Success(c, http.StatusOK, response.DeletedResponse{
		Message:   "Contact deleted successfully",
		DeletedID: id,
	})
}

// bindContactID rejects malformed ids before any storage call.
func bindContactID(c *gin.Context) (string, bool) {
	var uri contactURI
	if err := c.ShouldBindUri(&uri); err != nil {
		logger.Log.Debug("Invalid contact id", "request_id", response.RequestID(c), "id", c.Param("id"))
		c.Error(usecase.InvalidIDError())
		return "", false
	}
	return uri.ID, true
}

// receivedBody returns the request body as decoded JSON for echoing back,
// or the raw text when it is not valid JSON.
func receivedBody(c *gin.Context) interface{} {
	raw, ok := c.Get(gin.BodyBytesKey)
	if !ok {
		return nil
	}
	body, _ := raw.([]byte)
	if len(body) == 0 {
		return nil
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return string(body)
	}
	return decoded
}

func logRejectedBody(c *gin.Context, err error) {
	logger.Log.Debug("Contact body rejected",
		"request_id", response.RequestID(c),
		"missing", validation.MissingFields(err),
		"problems", validation.FormatValidationErrors(err),
	)
}

func logNotFound(c *gin.Context, id string, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == http.StatusNotFound {
		logger.Log.Info("Contact not found", "request_id", response.RequestID(c), "id", id)
	}
}
