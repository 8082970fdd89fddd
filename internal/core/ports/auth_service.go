package ports

import "context"

// AuthService is the opaque authentication gate in front of the admin panel.
type AuthService interface {
	// Login checks the admin password and returns a signed token.
	Login(ctx context.Context, password string) (string, error)
}
