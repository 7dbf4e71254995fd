package domain

// Identity is the verified result of a Google sign-in. It lives only in
// server-side session state and is never persisted on its own.
type Identity struct {
	GoogleID string `json:"google_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}
