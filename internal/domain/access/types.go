package access

type Privacy string

const (
	PrivacyPublic   Privacy = "public"
	PrivacyPrivate  Privacy = "private"
	PrivacyUnlisted Privacy = "unlisted"
)

func (p Privacy) Valid() bool {
	switch p {
	case PrivacyPublic, PrivacyPrivate, PrivacyUnlisted:
		return true
	}
	return false
}

// Viewer is whoever is making the request. UserID 0 is anonymous.
type Viewer struct {
	UserID uint
}

func Anonymous() Viewer { return Viewer{} }

func As(userID uint) Viewer { return Viewer{UserID: userID} }

func (v Viewer) IsAnonymous() bool { return v.UserID == 0 }

func (v Viewer) Owns(ownerID uint) bool {
	return v.UserID != 0 && v.UserID == ownerID
}
