package services

import "github.com/tanvir-rahman/skillshare-backend/internal/apperrors"

// Authorize reports whether the acting identity owns the resource. Pure
// comparison, no side effects.
func Authorize(resourceOwnerID, actorID uint) bool {
	return resourceOwnerID == actorID
}

// RequireOwner returns ErrForbidden when the actor does not own the resource.
// Callers must have established that the resource exists first, so Forbidden
// is never conflated with NotFound.
func RequireOwner(resourceOwnerID, actorID uint) error {
	if !Authorize(resourceOwnerID, actorID) {
		return apperrors.Forbiddenf("actor %d does not own this resource", actorID)
	}
	return nil
}

// RequireAnyOwner returns ErrForbidden unless the actor matches at least one
// of the owning identities. Used for comments, which may be mutated by the
// comment owner or the owning post's owner.
func RequireAnyOwner(actorID uint, ownerIDs ...uint) error {
	for _, ownerID := range ownerIDs {
		if Authorize(ownerID, actorID) {
			return nil
		}
	}
	return apperrors.Forbiddenf("actor %d does not own this resource", actorID)
}
