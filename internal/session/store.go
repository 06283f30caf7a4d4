package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"

	"imagique/internal/status"
	"imagique/models"
)

// Key is the fixed name the session record is stored under.
const Key = "user"

// Store persists the one session record. Load returns status.ErrNoSession when
// nothing is stored.
type Store interface {
	Load(ctx context.Context) (models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}

// FileStore keeps a small JSON document on disk, keyed like browser local
// storage. Other keys in the document are preserved.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Load(_ context.Context) (models.Session, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	doc, err := fs.read()
	if err != nil {
		return models.Session{}, err
	}
	raw, ok := doc[Key]
	if !ok {
		return models.Session{}, status.ErrNoSession
	}
	var s models.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.Session{}, fmt.Errorf("session: decode %s: %w", fs.path, err)
	}
	return s, nil
}

func (fs *FileStore) Save(_ context.Context, s models.Session) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	doc, err := fs.read()
	if err != nil {
		doc = make(map[string]json.RawMessage)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	doc[Key] = raw
	return fs.write(doc)
}

func (fs *FileStore) Clear(_ context.Context) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	doc, err := fs.read()
	if err != nil {
		if errors.Is(err, status.ErrNoSession) {
			return nil
		}
		doc = make(map[string]json.RawMessage)
	}
	if _, ok := doc[Key]; !ok {
		return nil
	}
	delete(doc, Key)
	return fs.write(doc)
}

func (fs *FileStore) read() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, status.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("session: read %s: %w", fs.path, err)
	}
	doc := make(map[string]json.RawMessage)
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", fs.path, err)
	}
	return doc, nil
}

// write replaces the file atomically via a sibling temp file.
func (fs *FileStore) write(doc map[string]json.RawMessage) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("session: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("session: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return fmt.Errorf("session: rename: %w", err)
	}
	return nil
}

// RedisStore keeps the record under <prefix>user, for clients sharing one
// session across processes.
type RedisStore struct {
	redis *redis.Client
	key   string
}

func NewRedisStore(redisClient *redis.Client, prefix string) *RedisStore {
	return &RedisStore{redis: redisClient, key: prefix + Key}
}

func (rs *RedisStore) Load(ctx context.Context) (models.Session, error) {
	raw, err := rs.redis.Get(ctx, rs.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, status.ErrNoSession
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("session: redis get %s: %w", rs.key, err)
	}
	var s models.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.Session{}, fmt.Errorf("session: decode %s: %w", rs.key, err)
	}
	return s, nil
}

func (rs *RedisStore) Save(ctx context.Context, s models.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := rs.redis.Set(ctx, rs.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("session: redis set %s: %w", rs.key, err)
	}
	return nil
}

func (rs *RedisStore) Clear(ctx context.Context) error {
	if err := rs.redis.Del(ctx, rs.key).Err(); err != nil {
		return fmt.Errorf("session: redis del %s: %w", rs.key, err)
	}
	return nil
}
