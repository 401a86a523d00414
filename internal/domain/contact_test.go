package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactInputNormalize(t *testing.T) {
	in := ContactInput{
		FirstName:     "  Juan ",
		LastName:      "Perez\t",
		Email:         " Juan@X.com ",
		FavoriteColor: " azul",
		Birthday:      "1990-05-15 ",
	}

	got := in.Normalize()

	assert.Equal(t, ContactInput{
		FirstName:     "Juan",
		LastName:      "Perez",
		Email:         "juan@x.com",
		FavoriteColor: "azul",
		Birthday:      "1990-05-15",
	}, got)
	// original is untouched
	assert.Equal(t, "  Juan ", in.FirstName)
}

func TestContactInputToContact(t *testing.T) {
	c := ContactInput{FirstName: "a", LastName: "b", Email: "c", FavoriteColor: "d", Birthday: "e"}.
		ToContact("507f1f77bcf86cd799439011")

	assert.Equal(t, "507f1f77bcf86cd799439011", c.ID)
	assert.Equal(t, "a", c.FirstName)
	assert.Equal(t, "e", c.Birthday)
}
