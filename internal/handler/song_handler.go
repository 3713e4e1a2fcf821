package handler

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tunedeck/internal/errors"
	"tunedeck/internal/model"
	"tunedeck/internal/service"
	"tunedeck/internal/session"
)

// DashboardPage is the template data for both dashboard views.
type DashboardPage struct {
	Email   string
	Songs   []model.Song
	Flashes []string
}

// EditPage is the template data for the edit form.
type EditPage struct {
	Song *model.Song
}

// DeleteResponse is the JSON body of the delete endpoint.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SongHandler handles the dashboard and the admin song operations.
type SongHandler struct {
	songs    service.SongService
	sessions *session.Manager
}

// NewSongHandler creates a new song handler.
func NewSongHandler(songs service.SongService, sessions *session.Manager) *SongHandler {
	return &SongHandler{songs: songs, sessions: sessions}
}

// Dashboard renders the song list, ordered by title, in the admin or user
// view depending on the session's role.
func (h *SongHandler) Dashboard(c echo.Context) error {
	user, ok := session.FromContext(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	songs, err := h.songs.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list songs: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load songs")
	}

	page := DashboardPage{
		Email:   user.Email,
		Songs:   songs,
		Flashes: h.sessions.Flashes(c),
	}
	if user.Role == model.RoleAdmin {
		return c.Render(http.StatusOK, "dashboard_admin.html", page)
	}
	return c.Render(http.StatusOK, "dashboard_user.html", page)
}

// Add accepts the multipart add-song form: title, artist and the two file
// uploads.
func (h *SongHandler) Add(c echo.Context) error {
	title := c.FormValue("title")
	artist := c.FormValue("artist")
	if title == "" || artist == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and artist are required")
	}

	audio, err := readUpload(c, "audio_file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "audio_file is required")
	}
	cover, err := readUpload(c, "cover_file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cover_file is required")
	}

	if err := h.songs.Create(c.Request().Context(), title, artist, audio, cover); err != nil {
		c.Logger().Errorf("add song: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add song")
	}

	return c.Redirect(http.StatusFound, "/dashboard")
}

// EditForm renders the edit form prefilled from the current row. An
// unknown id silently returns to the dashboard.
func (h *SongHandler) EditForm(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	song, err := h.songs.Get(c.Request().Context(), id)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return c.Redirect(http.StatusFound, "/dashboard")
		}
		c.Logger().Errorf("get song %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load song")
	}

	return c.Render(http.StatusOK, "edit_song.html", EditPage{Song: song})
}

// Edit applies the submitted fields; empty fields keep their stored
// values. No validation beyond presence.
func (h *SongHandler) Edit(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.Redirect(http.StatusFound, "/dashboard")
	}

	title := c.FormValue("title")
	artist := c.FormValue("artist")
	if err := h.songs.Update(c.Request().Context(), id, title, artist); err != nil {
		c.Logger().Errorf("update song %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update song")
	}

	if err := h.sessions.Flash(c, "Lagu berhasil diperbarui"); err != nil {
		c.Logger().Errorf("flash: %v", err)
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Delete removes the song row and its backing objects, answering JSON.
func (h *SongHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, DeleteResponse{Success: false, Error: "Song not found"})
	}

	if err := h.songs.Delete(c.Request().Context(), id); err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			return c.JSON(http.StatusNotFound, DeleteResponse{Success: false, Error: "Song not found"})
		}
		c.Logger().Errorf("delete song %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, DeleteResponse{Success: false, Error: "internal server error"})
	}

	return c.JSON(http.StatusOK, DeleteResponse{Success: true})
}

// readUpload pulls one file out of the multipart form.
func readUpload(c echo.Context, field string) (service.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return service.Upload{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return service.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return service.Upload{}, err
	}
	return service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
