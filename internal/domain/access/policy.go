package access

import "gallery-api/internal/domain/users"

// CanView: owners see every privacy level, everyone else only public.
// Unlisted items are hidden from non-owners on direct lookup as well.
func CanView(v Viewer, ownerID uint, p Privacy) bool {
	if v.Owns(ownerID) {
		return true
	}
	return p == PrivacyPublic
}

// ListPrivacy is the privacy filter to apply to a listing. Non-owners are
// pinned to public no matter what they asked for; owners may pass "" for all.
func ListPrivacy(v Viewer, ownerID uint, requested Privacy) Privacy {
	if !v.Owns(ownerID) {
		return PrivacyPublic
	}
	if requested.Valid() {
		return requested
	}
	return ""
}

// GalleryVisible reports whether v may browse owner's public gallery.
func GalleryVisible(v Viewer, owner *users.User) bool {
	if owner == nil {
		return false
	}
	if v.Owns(owner.ID) {
		return true
	}
	return owner.IsPublicGallery && owner.IsActive
}
