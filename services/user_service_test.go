package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpsertAssignmentColumns(t *testing.T) {
	// Only provided fields may be assigned on conflict; in particular an
	// upsert without a password must not touch the stored hash.
	cols := upsertAssignmentColumns(&UpsertUser{ID: "u1", Email: "a@example.com"})
	assert.Equal(t, []string{"updated_at", "email"}, cols)
	assert.NotContains(t, cols, "password")
	assert.NotContains(t, cols, "role")

	cols = upsertAssignmentColumns(&UpsertUser{
		ID:       "u1",
		Username: "mia",
		Password: "sekrit42",
		Role:     "admin",
	})
	assert.Equal(t, []string{"updated_at", "username", "password", "role"}, cols)
}
