package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tunedeck/internal/model"
	"tunedeck/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

type MockSongService struct {
	mock.Mock
}

func (m *MockSongService) List(ctx context.Context) ([]model.Song, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Song), args.Error(1)
}

func (m *MockSongService) Get(ctx context.Context, id int64) (*model.Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Song), args.Error(1)
}

func (m *MockSongService) Create(ctx context.Context, title, artist string, audio, cover service.Upload) error {
	args := m.Called(ctx, title, artist, audio, cover)
	return args.Error(0)
}

func (m *MockSongService) Update(ctx context.Context, id int64, title, artist string) error {
	args := m.Called(ctx, id, title, artist)
	return args.Error(0)
}

func (m *MockSongService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
