package auth

import "context"

// Service defines the interface for admin authentication.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}
