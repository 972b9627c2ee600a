package access

import (
	"net/http"
	"testing"

	"mediakeep/media-api/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCanRead(t *testing.T) {
	owner := &Requester{UserID: "u1", TenantID: 1}
	outsider := &Requester{UserID: "u2", TenantID: 2}

	cases := []struct {
		name       string
		tenantID   uint
		visibility string
		requester  *Requester
		want       error
	}{
		{"public anonymous", 1, model.VisibilityPublic, nil, nil},
		{"public cross-tenant", 1, model.VisibilityPublic, outsider, nil},
		{"public same tenant", 1, model.VisibilityPublic, owner, nil},
		{"private anonymous", 1, model.VisibilityPrivate, nil, ErrUnauthenticated},
		{"private cross-tenant", 1, model.VisibilityPrivate, outsider, ErrForbidden},
		{"private same tenant", 1, model.VisibilityPrivate, owner, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CanRead(c.tenantID, c.visibility, c.requester)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

func TestCanMutate(t *testing.T) {
	owner := &Requester{UserID: "u1", TenantID: 1}
	outsider := &Requester{UserID: "u2", TenantID: 2}

	assert.NoError(t, CanMutate(1, owner))
	assert.ErrorIs(t, CanMutate(1, nil), ErrUnauthenticated)

	// Cross-tenant mutation attempts must not reveal the resource
	// exists
	assert.ErrorIs(t, CanMutate(1, outsider), ErrNotFound)
}

func TestValidVisibility(t *testing.T) {
	assert.True(t, ValidVisibility(model.VisibilityPublic))
	assert.True(t, ValidVisibility(model.VisibilityPrivate))
	assert.False(t, ValidVisibility(""))
	assert.False(t, ValidVisibility("hidden"))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, Status(nil))
	assert.Equal(t, http.StatusUnauthorized, Status(ErrUnauthenticated))
	assert.Equal(t, http.StatusForbidden, Status(ErrForbidden))
	assert.Equal(t, http.StatusNotFound, Status(ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, Status(ErrBadVisibility))
	assert.Equal(t, http.StatusInternalServerError, Status(assert.AnError))
}
