package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollect(t *testing.T) {
	errs := Collect(
		Required("title", " "),
		MinInt("price", 10, 0),
		Email("email", "not-an-email"),
		OneOf("role", "root", "user", "admin"),
		Date("publishedAt", "2024-02-30"),
		MaxLen("isbn", "12345678901234", 13),
		MinLen("password", "abc", 6),
	)
	assert.Len(t, errs, 6)
	assert.Equal(t, "title", errs[0].Field)
	assert.Contains(t, errs.Error(), "email: must be a valid email")

	assert.Nil(t, Collect(Required("name", "Borges"), Email("email", "a@b.co"), Date("d", "2024-02-29")))
}
