package domain

// Built-in roles assigned at registration.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
