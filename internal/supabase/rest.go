package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	stderrors "errors"

	"tunedeck/internal/backend"
	"tunedeck/internal/errors"
	"tunedeck/internal/model"
)

const (
	usersPath = "/rest/v1/users"
	songsPath = "/rest/v1/songs"

	// singleObjectAccept makes PostgREST return one JSON object instead of
	// an array, failing with 406 when the filter matches no row.
	singleObjectAccept = "application/vnd.pgrst.object+json"
)

// FetchUserRole reads the role column of the users row with the given id.
func (c *Client) FetchUserRole(ctx context.Context, id string) (string, error) {
	query := url.Values{
		"id":     {"eq." + id},
		"select": {"role"},
	}
	req, err := c.newRequest(ctx, http.MethodGet, usersPath, query, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", singleObjectAccept)

	resp, err := c.do(req)
	if err != nil {
		return "", notFoundOr(err, "fetch user role")
	}
	var row struct {
		Role string `json:"role"`
	}
	if err := decodeBody(resp, &row); err != nil {
		return "", fmt.Errorf("decode user row: %w", err)
	}
	return row.Role, nil
}

// CreateUserRow inserts the users row created alongside an identity record
// at registration. There is no transaction spanning the identity creation
// and this insert.
func (c *Client) CreateUserRow(ctx context.Context, user model.User) error {
	if err := c.insert(ctx, usersPath, user); err != nil {
		return fmt.Errorf("create user row: %w", err)
	}
	return nil
}

// ListSongs returns all songs, ordered ascending by orderBy when non-empty.
func (c *Client) ListSongs(ctx context.Context, orderBy string) ([]model.Song, error) {
	query := url.Values{"select": {"*"}}
	if orderBy != "" {
		query.Set("order", orderBy+".asc")
	}
	req, err := c.newRequest(ctx, http.MethodGet, songsPath, query, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	var songs []model.Song
	if err := decodeBody(resp, &songs); err != nil {
		return nil, fmt.Errorf("decode songs: %w", err)
	}
	return songs, nil
}

// GetSong returns the song with the given id, or ErrNotFound.
func (c *Client) GetSong(ctx context.Context, id int64) (*model.Song, error) {
	query := url.Values{
		"id":     {"eq." + strconv.FormatInt(id, 10)},
		"select": {"*"},
	}
	req, err := c.newRequest(ctx, http.MethodGet, songsPath, query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", singleObjectAccept)

	resp, err := c.do(req)
	if err != nil {
		return nil, notFoundOr(err, "get song")
	}
	var song model.Song
	if err := decodeBody(resp, &song); err != nil {
		return nil, fmt.Errorf("decode song: %w", err)
	}
	return &song, nil
}

// InsertSong creates one song row.
func (c *Client) InsertSong(ctx context.Context, fields backend.SongFields) error {
	if err := c.insert(ctx, songsPath, fields); err != nil {
		return fmt.Errorf("insert song: %w", err)
	}
	return nil
}

// UpdateSong patches only the given columns of the song row.
func (c *Client) UpdateSong(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	query := url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
	req, err := c.newRequest(ctx, http.MethodPatch, songsPath, query, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	drainBody(resp)
	return nil
}

// DeleteSong removes the song row. Deleting an id that matches no row is
// not an error at this layer; PostgREST reports success with zero rows.
func (c *Client) DeleteSong(ctx context.Context, id int64) error {
	query := url.Values{"id": {"eq." + strconv.FormatInt(id, 10)}}
	req, err := c.newRequest(ctx, http.MethodDelete, songsPath, query, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	drainBody(resp)
	return nil
}

func (c *Client) insert(ctx context.Context, path string, row any) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	drainBody(resp)
	return nil
}

// notFoundOr maps the 406 PostgREST returns for an empty single-object
// response to ErrNotFound, leaving every other failure wrapped as-is.
func notFoundOr(err error, op string) error {
	var be *errors.BackendError
	if stderrors.As(err, &be) && be.StatusCode == http.StatusNotAcceptable {
		return errors.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
