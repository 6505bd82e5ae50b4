// Package access centralises role capability checks so that the dashboard's
// presentation gates and the server's authorization use the same rules.
// The server-side check is the authoritative one.
package access

import "github.com/dmitrijs2005/focusgroup/internal/api"

// CanReview reports whether role may see verification status badges and
// review documents.
func CanReview(role api.Role) bool {
	return role == api.RoleAdmin || role == api.RoleManager
}

// CanSendMessages reports whether role may send messages to other users.
func CanSendMessages(role api.Role) bool {
	return CanReview(role)
}

// CanListParticipants reports whether role may browse participants.
func CanListParticipants(role api.Role) bool {
	return CanReview(role)
}

// CanEditSettings reports whether role may replace the menu settings.
func CanEditSettings(role api.Role) bool {
	return role == api.RoleAdmin
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role api.Role) bool {
	switch role {
	case api.RoleClient, api.RoleParticipant, api.RoleManager, api.RoleAdmin:
		return true
	}
	return false
}

// SelfAssignable reports whether role may be requested at sign-up.
func SelfAssignable(role api.Role) bool {
	return role == api.RoleClient || role == api.RoleParticipant
}
