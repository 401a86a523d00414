package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("objectid", ObjectID)
	_ = v.RegisterValidation("notblank", NotBlank)
}

// IsValidObjectID reports whether s is a 24 character hex identifier.
// It says nothing about whether a record with that id exists.
func IsValidObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// CanonicalObjectID returns s in the lower-case hex form storage assigns.
func CanonicalObjectID(s string) (string, bool) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return "", false
	}
	return oid.Hex(), true
}

// ObjectID validates that a string field holds a well-formed identifier
func ObjectID(fl validator.FieldLevel) bool {
	return IsValidObjectID(fl.Field().String())
}

// NotBlank rejects strings made only of whitespace
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
