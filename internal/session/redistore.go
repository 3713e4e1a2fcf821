package session

import (
	"context"
	"encoding/base32"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const redisKeyPrefix = "session:"

// Cache is the slice of the redis client the store needs. Get reports a
// missing key as nil with no error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisStore is a server-side sessions.Store: the cookie carries only a
// signed session id, the values live in redis under a TTL matching the
// cookie's max age.
type RedisStore struct {
	cache   Cache
	codecs  []securecookie.Codec
	options *sessions.Options
}

var _ sessions.Store = (*RedisStore)(nil)

// NewRedisStore builds a redis-backed store signing cookies with the
// given key pairs.
func NewRedisStore(client Cache, keyPairs ...[]byte) *RedisStore {
	return &RedisStore{
		cache:  client,
		codecs: securecookie.CodecsFromPairs(keyPairs...),
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   maxAge,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns the cached session for this request, loading it on first use.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New builds a session, restoring state from redis when the request
// carries a valid session cookie. An unreadable cookie or a missing redis
// record yields a fresh session, not an error.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	sess := sessions.NewSession(s, name)
	opts := *s.options
	sess.Options = &opts
	sess.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return sess, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, cookie.Value, &id, s.codecs...); err != nil {
		return sess, nil
	}
	sess.ID = id
	if err := s.load(r.Context(), sess); err == nil {
		sess.IsNew = false
	}
	return sess, nil
}

// Save persists the session to redis and writes the id cookie. A non
// positive max age deletes the record and expires the cookie.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, sess *sessions.Session) error {
	if sess.Options.MaxAge <= 0 {
		if sess.ID != "" {
			if err := s.cache.Delete(r.Context(), redisKeyPrefix+sess.ID); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(sess.Name(), "", sess.Options))
		return nil
	}

	if sess.ID == "" {
		sess.ID = strings.TrimRight(
			base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)), "=")
	}
	if err := s.persist(r.Context(), sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.ID, s.codecs...)
	if err != nil {
		return err
	}
	http.SetCookie(w, sessions.NewCookie(sess.Name(), encoded, sess.Options))
	return nil
}

func (s *RedisStore) persist(ctx context.Context, sess *sessions.Session) error {
	encoded, err := securecookie.EncodeMulti(sess.Name(), sess.Values, s.codecs...)
	if err != nil {
		return err
	}
	ttl := time.Duration(sess.Options.MaxAge) * time.Second
	return s.cache.Set(ctx, redisKeyPrefix+sess.ID, []byte(encoded), ttl)
}

func (s *RedisStore) load(ctx context.Context, sess *sessions.Session) error {
	data, err := s.cache.Get(ctx, redisKeyPrefix+sess.ID)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("session %s not found", sess.ID)
	}
	return securecookie.DecodeMulti(sess.Name(), string(data), &sess.Values, s.codecs...)
}
