package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tunedeck/internal/backend"
	"tunedeck/internal/model"
)

// MockBackend is a mock implementation of backend.Client.
type MockBackend struct {
	mock.Mock
}

var _ backend.Client = (*MockBackend)(nil)

func (m *MockBackend) SignIn(ctx context.Context, email, password string) (*backend.Identity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.Identity), args.Error(1)
}

func (m *MockBackend) SignUp(ctx context.Context, email, password string) (*backend.Identity, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.Identity), args.Error(1)
}

func (m *MockBackend) FetchUserRole(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) CreateUserRow(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockBackend) ListSongs(ctx context.Context, orderBy string) ([]model.Song, error) {
	args := m.Called(ctx, orderBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Song), args.Error(1)
}

func (m *MockBackend) GetSong(ctx context.Context, id int64) (*model.Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Song), args.Error(1)
}

func (m *MockBackend) InsertSong(ctx context.Context, fields backend.SongFields) error {
	args := m.Called(ctx, fields)
	return args.Error(0)
}

func (m *MockBackend) UpdateSong(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockBackend) DeleteSong(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) UploadObject(ctx context.Context, bucket, name string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, bucket, name, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) DeleteObjects(ctx context.Context, bucket string, names []string) error {
	args := m.Called(ctx, bucket, names)
	return args.Error(0)
}
