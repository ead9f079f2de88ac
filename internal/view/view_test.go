package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-review/internal/data/entity"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_LoadsAllPages(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, name := range []string{
		"home",
		"movies/index", "movies/new", "movies/edit", "movies/show",
		"reviews/new", "users/new", "sessions/new",
	} {
		assert.Contains(t, r.pages, name)
	}
	assert.NotContains(t, r.pages, "layout")
}

func TestRender_MovieShow(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, "movies/show", &Page{
		Title:       "Alien",
		CurrentUser: &response.UserResponse{ID: 1, Name: "ripley"},
		Flash:       "Welcome back",
		Movie:       &entity.Movie{Base: entity.Base{ID: 3}, Name: "Alien", Director: "Ridley Scott", Summary: "In space no one\ncan hear you scream."},
		Reviews:     []response.ReviewResponse{{Point: 5, Comment: "<b>Classic</b>", UserName: "ash"}},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "<h1>Alien</h1>")
	assert.Contains(t, body, "Signed in as ripley")
	assert.Contains(t, body, "Welcome back")
	assert.Contains(t, body, "by ash")
	assert.Contains(t, body, "&lt;b&gt;Classic&lt;/b&gt;")
	assert.Contains(t, body, `href="/movies/3/reviews/new"`)
}

func TestRender_FormWithErrors(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, "movies/new", &Page{
		Form:   &request.MovieRequest{Name: "Heat", Summary: "short"},
		Errors: utils.ValidationErrors{"director": "can't be blank", "summary": "is too short (minimum is 10 characters)"},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Contains(t, body, `data-field="director"`)
	assert.Contains(t, body, `data-field="summary"`)
	assert.Contains(t, body, `value="Heat"`)
	assert.Contains(t, body, "Sign in")
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.Error(t, r.Render(rec, http.StatusOK, "movies/missing", &Page{}))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Email", humanize("email"))
	assert.Equal(t, "Movie id", humanize("movie_id"))
	assert.Equal(t, "", humanize(""))
}
