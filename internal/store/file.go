package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/and161185/edu-web/internal/model"
)

// Sealer encrypts the record at rest. Implemented by *sealer.Sealer.
type Sealer interface {
	Seal(aad, plaintext []byte) ([]byte, error)
	Open(aad, blob []byte) ([]byte, error)
}

// File keeps the session as a single 0600 file under <dir>/<origin>/.
type File struct {
	path   string
	sealer Sealer
	log    *zap.Logger
}

var _ Store = (*File)(nil)

// NewFile constructs a file store scoped to origin. A nil sealer stores plain JSON.
func NewFile(dir, origin string, s Sealer, log *zap.Logger) *File {
	if log == nil {
		log = zap.NewNop()
	}
	return &File{
		path:   filepath.Join(dir, origin, Key+".json"),
		sealer: s,
		log:    log,
	}
}

// Path returns the record location.
func (f *File) Path() string { return f.path }

// Load reads the record; corrupt content is removed and reported as absent.
func (f *File) Load() (model.PersistedSession, bool) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.log.Warn("read persisted session", zap.String("path", f.path), zap.Error(err))
		}
		return model.PersistedSession{}, false
	}

	if f.sealer != nil {
		if b, err = f.sealer.Open([]byte(Key), b); err != nil {
			f.discard("unseal persisted session", err)
			return model.PersistedSession{}, false
		}
	}

	var p model.PersistedSession
	if err := json.Unmarshal(b, &p); err != nil {
		f.discard("decode persisted session", err)
		return model.PersistedSession{}, false
	}
	if !p.Complete() {
		f.discard("persisted session incomplete", nil)
		return model.PersistedSession{}, false
	}
	return p, true
}

// Save writes the record atomically via a temp file and rename.
func (f *File) Save(p model.PersistedSession) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if f.sealer != nil {
		if b, err = f.sealer.Seal([]byte(Key), b); err != nil {
			return err
		}
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, Key+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

// Clear deletes the record.
func (f *File) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (f *File) discard(msg string, err error) {
	f.log.Warn(msg, zap.String("path", f.path), zap.Error(err))
	if rerr := f.Clear(); rerr != nil {
		f.log.Warn("remove corrupt session", zap.String("path", f.path), zap.Error(rerr))
	}
}
