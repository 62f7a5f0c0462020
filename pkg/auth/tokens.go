package auth

import "time"

// TokenIssuer abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenIssuer interface {
	Issue(subject, role string, now time.Time) (string, error)
}
