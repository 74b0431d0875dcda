package models

// RoleType defines the caller role carried in the access token
type RoleType string

const (
	RoleVoter RoleType = "VOTER"
	RoleAdmin RoleType = "ADMIN"
)

// Valid reports whether r is a known role
func (r RoleType) Valid() bool {
	return r == RoleVoter || r == RoleAdmin
}
