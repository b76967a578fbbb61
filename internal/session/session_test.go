package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/agency-backend/internal/domain/valueobject"
)

func TestNavigation_ByRole(t *testing.T) {
	staff := Session{UserID: uuid.New(), Name: "Ali", Role: valueobject.RoleStaff}
	nav := staff.Navigation()
	assert.Len(t, nav, 2)
	assert.Equal(t, valueobject.PageProposals, nav[0].Page)
	assert.Equal(t, "/notes", nav[1].Path)
	assert.False(t, staff.CanAccess(valueobject.PageEmployees))

	admin := Development()
	assert.Len(t, admin.Navigation(), len(valueobject.AllPages))
	assert.False(t, admin.IsZero())
	assert.True(t, Session{}.IsZero())
}
