package domain

// UserRole роль пользователя в системе
type UserRole string

const (
	RoleClient UserRole = "client"
	RoleBarber UserRole = "barber"
	RoleAdmin  UserRole = "admin"
)

// User minimal authenticated profile stored alongside the token.
type User struct {
	ID    string
	Name  string
	Email string
	Role  UserRole
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsBarber returns true if the user has the barber role.
func (u *User) IsBarber() bool {
	return u != nil && u.Role == RoleBarber
}

// Session evidence of an authenticated user: bearer token plus profile.
// Lifecycle is owned by the session service; the booking flow only reads
// presence and reacts to the absent -> present transition.
type Session struct {
	Token string
	User  User
}
