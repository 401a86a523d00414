package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every 4xx/5xx answer
type ErrorResponse struct {
	Error    string      `json:"error" example:"Contact not found"`
	Message  string      `json:"message" example:"No contact exists with ID: 507f1f77bcf86cd799439011"`
	Received interface{} `json:"received,omitempty" swaggertype:"object"`
}

// CreatedResponse is returned by POST /contacts
type CreatedResponse struct {
	Message   string `json:"message" example:"Contact created successfully"`
	ContactID string `json:"contactId" example:"507f1f77bcf86cd799439011"`
}

// DeletedResponse is returned by DELETE /contacts/{id}
type DeletedResponse struct {
	Message   string `json:"message" example:"Contact deleted successfully"`
	DeletedID string `json:"deletedId" example:"507f1f77bcf86cd799439011"`
}

// Success writes data as the JSON body
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error sends an error response
func Error(c *gin.Context, code int, category, message string, received interface{}) {
	c.JSON(code, ErrorResponse{
		Error:    category,
		Message:  message,
		Received: received,
	})
}

// RequestID returns the id assigned by the RequestID middleware, or ""
func RequestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
