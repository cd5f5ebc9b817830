package persistence

// Fixed storage keys for persisted client state. Only the session store
// writes through Storage; no other component touches persisted state.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Storage is the minimal key/value contract for persisted client state.
type Storage interface {
	// Get returns the stored value for key. Missing keys return a
	// NOT_FOUND error.
	Get(key string) ([]byte, error)

	// Set stores the value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes the value under key. Missing keys are a no-op.
	Delete(key string) error
}
