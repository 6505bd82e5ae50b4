package common

// AuthorizationHeader carries "Bearer <token>" on every authenticated request.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)

// Local store keys, the dashboard's equivalent of browser local storage.
const (
	TokenStorageKey             = "auth_token"
	ConsentStorageKey           = "cookie_consent"
	ConsentCategoriesStorageKey = "cookie_consent_categories"
)

// Query cache keys. They mirror the endpoint that fills them.
const (
	QueryKeyCurrentUser        = "/api/auth/me"
	QueryKeyMenuSettings       = "/api/admin/menu-settings"
	QueryKeyMessages           = "/api/messages"
	QueryKeyVerificationStatus = "/api/verification/status"
	QueryKeyParticipants       = "/api/manager/participants"
)

// MinPasswordLength applies to sign-up and password reset.
const MinPasswordLength = 8
