package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tunedeck/internal/errors"
	"tunedeck/internal/model"
	"tunedeck/internal/service"
	"tunedeck/internal/session"
)

func dashboardContext(e *echo.Echo, role string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(session.ContextKey, &session.Data{UserID: "uid-1", Email: "a@x.com", Role: role})
	return c, rec
}

func TestSongHandler_Dashboard(t *testing.T) {
	songs := []model.Song{
		{ID: 1, Title: "Aurora", Artist: "A", AudioURL: "https://x/a.mp3", CoverURL: "https://x/a.png"},
		{ID: 2, Title: "Borealis", Artist: "B", AudioURL: "https://x/b.mp3", CoverURL: "https://x/b.png"},
	}

	t.Run("admin sees the management view", func(t *testing.T) {
		e := newTestEcho()
		songService := new(MockSongService)
		songService.On("List", mock.Anything).Return(songs, nil)
		h := NewSongHandler(songService, newSessions())

		c, rec := dashboardContext(e, model.RoleAdmin)
		require.NoError(t, h.Dashboard(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Aurora")
		assert.Contains(t, rec.Body.String(), "Tambah Lagu")
	})

	t.Run("regular user sees the player view", func(t *testing.T) {
		e := newTestEcho()
		songService := new(MockSongService)
		songService.On("List", mock.Anything).Return(songs, nil)
		h := NewSongHandler(songService, newSessions())

		c, rec := dashboardContext(e, model.RoleUser)
		require.NoError(t, h.Dashboard(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Aurora")
		assert.NotContains(t, rec.Body.String(), "Tambah Lagu")
	})

	t.Run("listing failure is a 500", func(t *testing.T) {
		e := newTestEcho()
		songService := new(MockSongService)
		songService.On("List", mock.Anything).Return(nil, fmt.Errorf("list songs: backend down"))
		h := NewSongHandler(songService, newSessions())

		c, _ := dashboardContext(e, model.RoleUser)
		err := h.Dashboard(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	})
}

func multipartSongForm(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, w.WriteField(name, value))
	}
	for field, data := range files {
		fw, err := w.CreateFormFile(field, field+".bin")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestSongHandler_Add(t *testing.T) {
	t.Run("uploads both files and redirects", func(t *testing.T) {
		e := newTestEcho()
		songService := new(MockSongService)
		songService.On("Create", mock.Anything, "Judul", "Artis",
			mock.MatchedBy(func(u service.Upload) bool { return string(u.Data) == "audio-bytes" }),
			mock.MatchedBy(func(u service.Upload) bool { return string(u.Data) == "cover-bytes" }),
		).Return(nil)
		h := NewSongHandler(songService, newSessions())

		body, contentType := multipartSongForm(t,
			map[string]string{"title": "Judul", "artist": "Artis"},
			map[string][]byte{"audio_file": []byte("audio-bytes"), "cover_file": []byte("cover-bytes")},
		)
		req := httptest.NewRequest(http.MethodPost, "/songs/add", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()

		require.NoError(t, h.Add(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
		songService.AssertExpectations(t)
	})

	t.Run("missing audio file is a 400", func(t *testing.T) {
		e := newTestEcho()
		songService := new(MockSongService)
		h := NewSongHandler(songService, newSessions())

		body, contentType := multipartSongForm(t,
			map[string]string{"title": "Judul", "artist": "Artis"},
			map[string][]byte{"cover_file": []byte("cover-bytes")},
		)
		req := httptest.NewRequest(http.MethodPost, "/songs/add", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()

		err := h.Add(e.NewContext(req, rec))

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		songService.AssertNotCalled(t, "Create",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing title is a 400", func(t *testing.T) {
		e := newTestEcho()
		h := NewSongHandler(new(MockSongService), newSessions())

		body, contentType := multipartSongForm(t,
			map[string]string{"artist": "Artis"},
			map[string][]byte{"audio_file": []byte("a"), "cover_file": []byte("c")},
		)
		req := httptest.NewRequest(http.MethodPost, "/songs/add", body)
		req.Header.Set(echo.HeaderContentType, contentType)
		rec := httptest.NewRecorder()

		err := h.Add(e.NewContext(req, rec))

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestSongHandler_EditForm(t *testing.T) {
	t.Run("renders the prefilled form", func(t *testing.T) {
		e := newTestEcho()
		songService := new(MockSongService)
		songService.On("Get", mock.Anything, int64(5)).
			Return(&model.Song{ID: 5, Title: "Aurora", Artist: "A"}, nil)
		h := NewSongHandler(songService, newSessions())

		req := httptest.NewRequest(http.MethodGet, "/songs/edit/5", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("5")

		require.NoError(t, h.EditForm(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Aurora")
	})

	t.Run("unknown id returns to the dashboard", func(t *testing.T) {
		e := newTestEcho()
		songService := new(MockSongService)
		songService.On("Get", mock.Anything, int64(99)).Return(nil, errors.ErrNotFound)
		h := NewSongHandler(songService, newSessions())

		req := httptest.NewRequest(http.MethodGet, "/songs/edit/99", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("99")

		require.NoError(t, h.EditForm(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("non-numeric id returns to the dashboard", func(t *testing.T) {
		e := newTestEcho()
		h := NewSongHandler(new(MockSongService), newSessions())

		req := httptest.NewRequest(http.MethodGet, "/songs/edit/abc", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("abc")

		require.NoError(t, h.EditForm(c))
		assert.Equal(t, http.StatusFound, rec.Code)
	})
}

func TestSongHandler_Edit(t *testing.T) {
	e := newTestEcho()
	songService := new(MockSongService)
	songService.On("Update", mock.Anything, int64(5), "Baru", "").Return(nil)
	h := NewSongHandler(songService, newSessions())

	form := url.Values{"title": {"Baru"}}
	c, rec := postForm(e, "/songs/edit/5", form)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.Edit(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	songService.AssertExpectations(t)
}

func TestSongHandler_Delete(t *testing.T) {
	deleteContext := func(e *echo.Echo, id string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/songs/delete/"+id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		return c, rec
	}

	t.Run("success answers json", func(t *testing.T) {
		e := newTestEcho()
		songService := new(MockSongService)
		songService.On("Delete", mock.Anything, int64(123)).Return(nil)
		h := NewSongHandler(songService, newSessions())

		c, rec := deleteContext(e, "123")
		require.NoError(t, h.Delete(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success": true}`, rec.Body.String())
	})

	t.Run("missing row is a 404 with the error message", func(t *testing.T) {
		e := newTestEcho()
		songService := new(MockSongService)
		songService.On("Delete", mock.Anything, int64(123)).Return(errors.ErrNotFound)
		h := NewSongHandler(songService, newSessions())

		c, rec := deleteContext(e, "123")
		require.NoError(t, h.Delete(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"success": false, "error": "Song not found"}`, rec.Body.String())
	})

	t.Run("non-numeric id is a 404", func(t *testing.T) {
		e := newTestEcho()
		songService := new(MockSongService)
		h := NewSongHandler(songService, newSessions())

		c, rec := deleteContext(e, "abc")
		require.NoError(t, h.Delete(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		songService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("backend failure is a 500", func(t *testing.T) {
		e := newTestEcho()
		songService := new(MockSongService)
		songService.On("Delete", mock.Anything, int64(123)).Return(fmt.Errorf("delete objects in audio: timeout"))
		h := NewSongHandler(songService, newSessions())

		c, rec := deleteContext(e, "123")
		require.NoError(t, h.Delete(c))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success": false, "error": "internal server error"}`, rec.Body.String())
	})
}
