// Package backend defines the contract against the external
// backend-as-a-service provider: identity, relational tables and object
// storage behind one call interface. Implementations must be safe for
// concurrent use; a single client is constructed at process start and
// shared across requests.
package backend

import (
	"context"

	"tunedeck/internal/model"
)

// Identity is the record returned by the identity provider on sign-in or
// sign-up.
type Identity struct {
	ID    string
	Email string
}

// SongFields are the columns written when inserting a song row.
type SongFields struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	AudioURL string `json:"audio_url"`
	CoverURL string `json:"cover_url"`
}

// Auth covers the identity capability group.
type Auth interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignUp(ctx context.Context, email, password string) (*Identity, error)
}

// Store covers the relational capability group (users and songs tables).
type Store interface {
	FetchUserRole(ctx context.Context, id string) (string, error)
	CreateUserRow(ctx context.Context, user model.User) error
	// ListSongs returns all songs, ordered by the given column when
	// orderBy is non-empty.
	ListSongs(ctx context.Context, orderBy string) ([]model.Song, error)
	GetSong(ctx context.Context, id int64) (*model.Song, error)
	InsertSong(ctx context.Context, fields SongFields) error
	// UpdateSong patches only the given columns.
	UpdateSong(ctx context.Context, id int64, fields map[string]any) error
	DeleteSong(ctx context.Context, id int64) error
}

// ObjectStore covers the object storage capability group.
type ObjectStore interface {
	// UploadObject stores data under bucket/name and returns the object's
	// public URL.
	UploadObject(ctx context.Context, bucket, name string, data []byte, contentType string) (string, error)
	DeleteObjects(ctx context.Context, bucket string, names []string) error
}

// Client is the full backend surface consumed by the services.
type Client interface {
	Auth
	Store
	ObjectStore
}
