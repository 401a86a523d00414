package apperror

import "net/http"

// AppError is the error value handlers attach to the gin context.
// Category becomes the "error" field of the JSON body and Message the "message" field.
type AppError struct {
	Code     int         `json:"code"`
	Category string      `json:"error"`
	Message  string      `json:"message"`
	Details  interface{} `json:"received,omitempty"`
	Err      error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails attaches data that is echoed back to the client (e.g. the received body).
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func New(code int, category, message string, err error) *AppError {
	return &AppError{
		Code:     code,
		Category: category,
		Message:  message,
		Err:      err,
	}
}

func BadRequest(category, message string) *AppError {
	return New(http.StatusBadRequest, category, message, nil)
}

func NotFound(category, message string) *AppError {
	return New(http.StatusNotFound, category, message, nil)
}

// Internal keeps the driver message in Message so operators can see it in the response.
func Internal(category string, err error) *AppError {
	msg := "Internal Server Error"
	if err != nil {
		msg = err.Error()
	}
	return New(http.StatusInternalServerError, category, msg, err)
}
