package eligibility

import (
	"github.com/google/uuid"
	types "github.com/yungbote/payona-backend/internal/domain"
)

// Listing is anything with an owner that can appear in a discovery feed.
type Listing interface {
	OwnerID() uuid.UUID
}

// Filter narrows candidates to what viewer may see: same city, same
// dormitory, someone else's, and gender-compatible with the viewer's
// dormitory. Candidate order is preserved.
//
// A nil viewer, or one without city or dormitory, sees nothing. Owners
// missing from owners are dropped.
func Filter[T Listing](p *Policy, viewer *types.Profile, candidates []T, owners map[uuid.UUID]*types.Profile) []T {
	if p == nil {
		p = DefaultPolicy()
	}
	out := make([]T, 0, len(candidates))
	if viewer == nil || fold(viewer.City) == "" || fold(viewer.Dormitory) == "" {
		return out
	}
	kind := p.Classify(viewer.Dormitory)
	city, dorm := fold(viewer.City), fold(viewer.Dormitory)
	for _, c := range candidates {
		ownerID := c.OwnerID()
		if ownerID == viewer.UserID {
			continue
		}
		owner := owners[ownerID]
		if owner == nil {
			continue
		}
		if fold(owner.City) != city || fold(owner.Dormitory) != dorm {
			continue
		}
		if !p.Allows(kind, owner.Gender) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// OwnerIDs returns the distinct owners of listings in first-seen order.
func OwnerIDs[T Listing](listings []T) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(listings))
	out := make([]uuid.UUID, 0, len(listings))
	for _, l := range listings {
		id := l.OwnerID()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
