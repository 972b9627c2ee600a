// Package access decides whether a requester may read or mutate a
// tenant-scoped resource. One policy covers files and videos, the
// handlers only differ in which record they load
package access

import (
	"errors"
	"net/http"

	"mediakeep/media-api/internal/model"
)

var (
	// ErrUnauthenticated means the operation needs a verified identity
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the requester's tenant doesn't match the resource's
	ErrForbidden = errors.New("access denied outside your tenant")

	// ErrNotFound is returned on mutation-path lookups instead of
	// ErrForbidden so cross-tenant probes can't confirm a resource exists
	ErrNotFound = errors.New("resource not found")

	ErrBadVisibility = errors.New("visibility must be either public or private")
)

// Requester identifies an authenticated caller. A nil *Requester is
// an anonymous one
type Requester struct {
	UserID   string
	TenantID uint
}

// CanRead applies the read policy: public resources are open to
// anyone, private ones need an authenticated requester in the owning
// tenant
func CanRead(tenantID uint, visibility string, r *Requester) error {
	if visibility == model.VisibilityPublic {
		return nil
	}

	if r == nil {
		return ErrUnauthenticated
	}

	if r.TenantID != tenantID {
		return ErrForbidden
	}

	return nil
}

// CanMutate applies the strict policy used for visibility changes and
// auth-required download variants: authentication always, same tenant
// always, and a cross-tenant target looks like it doesn't exist
func CanMutate(tenantID uint, r *Requester) error {
	if r == nil {
		return ErrUnauthenticated
	}

	if r.TenantID != tenantID {
		return ErrNotFound
	}

	return nil
}

// ValidVisibility reports whether v is an accepted visibility value
func ValidVisibility(v string) bool {
	return v == model.VisibilityPublic || v == model.VisibilityPrivate
}

// Status maps a gate error to the HTTP status the endpoints report
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadVisibility):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
