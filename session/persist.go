package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Credentials is the persisted shape of a session.
type Credentials struct {
	Token    string
	Username string
	IsAdmin  bool
}

// Persister stores credentials across processes. At most one writer
// exists (the user's own sequential logins/logouts), so implementations
// need no locking beyond what their medium provides.
type Persister interface {
	// Load returns the stored credentials. ok is false when nothing is
	// stored; that is not an error.
	Load() (creds Credentials, ok bool, err error)
	Save(Credentials) error
	// Clear removes stored credentials. Clearing an empty store is a no-op.
	Clear() error
}

// credentialsFile is the on-disk TOML shape. isAdmin is serialized as the
// literal text "true"/"false", matching what earlier clients of this
// registry wrote.
type credentialsFile struct {
	AuthToken string `toml:"authToken"`
	Username  string `toml:"username"`
	IsAdmin   string `toml:"isAdmin"`
}

// FileStore persists credentials to a TOML file.
type FileStore struct {
	Path string
}

// DefaultCredentialsPath returns the per-user credentials file location.
func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".regctl", "credentials.toml"), nil
}

func (f *FileStore) Load() (Credentials, bool, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, false, nil
		}
		return Credentials{}, false, err
	}

	var file credentialsFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return Credentials{}, false, err
	}
	if file.AuthToken == "" {
		return Credentials{}, false, nil
	}
	return Credentials{
		Token:    file.AuthToken,
		Username: file.Username,
		IsAdmin:  file.IsAdmin == "true",
	}, true, nil
}

func (f *FileStore) Save(creds Credentials) error {
	raw, err := toml.Marshal(credentialsFile{
		AuthToken: creds.Token,
		Username:  creds.Username,
		IsAdmin:   strconv.FormatBool(creds.IsAdmin),
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.Path, raw, 0o600)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemStore is an in-memory Persister for tests and tokenless use.
type MemStore struct {
	mu    sync.Mutex
	creds Credentials
	set   bool
}

func (m *MemStore) Load() (Credentials, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds, m.set, nil
}

func (m *MemStore) Save(creds Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = creds
	m.set = true
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = Credentials{}
	m.set = false
	return nil
}
