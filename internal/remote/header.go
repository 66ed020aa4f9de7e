package remote

import "sync"

// AuthHeader is the Authorization value shared by every outbound call of one
// console client. The session manager is its only writer.
type AuthHeader struct {
	mu    sync.RWMutex
	value string
}

// NewAuthHeader returns an empty header.
func NewAuthHeader() *AuthHeader {
	return &AuthHeader{}
}

// SetBearer attaches token as a bearer credential.
func (h *AuthHeader) SetBearer(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.value = "Bearer " + token
}

// Clear removes the credential.
func (h *AuthHeader) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.value = ""
}

// Value returns the current header value and whether one is set.
func (h *AuthHeader) Value() (string, bool) {
	if h == nil {
		return "", false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.value, h.value != ""
}
