package auth

// TokenStore defines the interface for token storage operations
// This allows us to mock the keyring in tests
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	DeleteToken() error
}

// defaultTokenStore implements TokenStore using the OS keyring
type defaultTokenStore struct{}

var Default TokenStore = &defaultTokenStore{}

func (d *defaultTokenStore) SaveToken(token string) error {
	return SaveToken(token)
}

func (d *defaultTokenStore) LoadToken() (string, error) {
	return LoadToken()
}

func (d *defaultTokenStore) DeleteToken() error {
	return DeleteToken()
}

// MemoryTokenStore is an in-memory TokenStore for tests and for
// environments without a usable OS keyring.
type MemoryTokenStore struct {
	token string
	set   bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) SaveToken(token string) error {
	m.token = token
	m.set = true
	return nil
}

func (m *MemoryTokenStore) LoadToken() (string, error) {
	if !m.set {
		return "", ErrNotAuthenticated
	}
	return m.token, nil
}

func (m *MemoryTokenStore) DeleteToken() error {
	m.token = ""
	m.set = false
	return nil
}
