package service

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"tunedeck/internal/backend"
	"tunedeck/internal/model"
)

// Upload is one file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SongService handles the song catalog and its backing objects.
type SongService interface {
	// List returns all songs ordered by title.
	List(ctx context.Context) ([]model.Song, error)
	// Get returns the song or errors.ErrNotFound.
	Get(ctx context.Context, id int64) (*model.Song, error)
	// Create uploads both files, resolves their public URLs and inserts
	// the row. If the insert fails the uploaded objects are removed
	// best-effort.
	Create(ctx context.Context, title, artist string, audio, cover Upload) error
	// Update patches title and artist; an empty value keeps the stored one.
	Update(ctx context.Context, id int64, title, artist string) error
	// Delete removes both backing objects, then the row. A failed object
	// removal is logged and does not stop the row deletion.
	Delete(ctx context.Context, id int64) error
}

type songService struct {
	backend     backend.Client
	audioBucket string
	coverBucket string
}

// NewSongService creates a song service writing to the given buckets.
func NewSongService(client backend.Client, audioBucket, coverBucket string) SongService {
	return &songService{
		backend:     client,
		audioBucket: audioBucket,
		coverBucket: coverBucket,
	}
}

func (s *songService) List(ctx context.Context) ([]model.Song, error) {
	return s.backend.ListSongs(ctx, "title")
}

func (s *songService) Get(ctx context.Context, id int64) (*model.Song, error) {
	return s.backend.GetSong(ctx, id)
}

func (s *songService) Create(ctx context.Context, title, artist string, audio, cover Upload) error {
	audioName := objectName(audio.Filename)
	coverName := objectName(cover.Filename)

	audioURL, err := s.backend.UploadObject(ctx, s.audioBucket, audioName, audio.Data, audio.ContentType)
	if err != nil {
		return fmt.Errorf("upload audio: %w", err)
	}
	coverURL, err := s.backend.UploadObject(ctx, s.coverBucket, coverName, cover.Data, cover.ContentType)
	if err != nil {
		s.removeObject(ctx, s.audioBucket, audioName)
		return fmt.Errorf("upload cover: %w", err)
	}

	fields := backend.SongFields{
		Title:    title,
		Artist:   artist,
		AudioURL: audioURL,
		CoverURL: coverURL,
	}
	if err := s.backend.InsertSong(ctx, fields); err != nil {
		// compensate, otherwise the objects are orphaned with no row
		// pointing at them
		s.removeObject(ctx, s.audioBucket, audioName)
		s.removeObject(ctx, s.coverBucket, coverName)
		return fmt.Errorf("insert song: %w", err)
	}
	return nil
}

func (s *songService) Update(ctx context.Context, id int64, title, artist string) error {
	fields := map[string]any{}
	if title != "" {
		fields["title"] = title
	}
	if artist != "" {
		fields["artist"] = artist
	}
	if len(fields) == 0 {
		return nil
	}
	return s.backend.UpdateSong(ctx, id, fields)
}

func (s *songService) Delete(ctx context.Context, id int64) error {
	song, err := s.backend.GetSong(ctx, id)
	if err != nil {
		return err
	}

	// Object names are the final path segment of each stored URL. This
	// derivation breaks silently if the storage URL scheme ever changes.
	if name := objectNameFromURL(song.AudioURL); name != "" {
		if err := s.backend.DeleteObjects(ctx, s.audioBucket, []string{name}); err != nil {
			log.Warnf("delete song %d: audio object %s not removed, continuing: %v", id, name, err)
		}
	}
	if name := objectNameFromURL(song.CoverURL); name != "" {
		if err := s.backend.DeleteObjects(ctx, s.coverBucket, []string{name}); err != nil {
			log.Warnf("delete song %d: cover object %s not removed, continuing: %v", id, name, err)
		}
	}

	return s.backend.DeleteSong(ctx, id)
}

func (s *songService) removeObject(ctx context.Context, bucket, name string) {
	if err := s.backend.DeleteObjects(ctx, bucket, []string{name}); err != nil {
		log.Warnf("cleanup of %s/%s failed, object orphaned: %v", bucket, name, err)
	}
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// objectName builds a collision-resistant object name: a random prefix
// joined to the sanitized original filename.
func objectName(filename string) string {
	base := unsafeNameChars.ReplaceAllString(path.Base(filename), "-")
	if base == "" || base == "." || base == ".." {
		base = "file"
	}
	return uuid.NewString() + "_" + base
}

// objectNameFromURL derives the object name from a stored public URL.
func objectNameFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return path.Base(raw)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
