package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/pairs-tournament/brackets"
	"github.com/Dosada05/pairs-tournament/services"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: t1", services.ErrTournamentNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: c1", services.ErrCategoryNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: ZA_M9", brackets.ErrUnknownMatch), http.StatusNotFound},
		{services.ErrTournamentConflict, http.StatusConflict},
		{services.ErrDuplicateCategory, http.StatusConflict},
		{services.ErrTournamentCancelled, http.StatusConflict},
		{brackets.ErrDuplicateTeam, http.StatusConflict},
		{brackets.ErrZonesIncomplete, http.StatusConflict},
		{brackets.ErrWrongStatus, http.StatusConflict},
		{services.ErrValidationFailed, http.StatusUnprocessableEntity},
		{brackets.ErrNotEnoughQualifiers, http.StatusUnprocessableEntity},
		{brackets.ErrInvalidScore, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		mapServiceErrorToHTTP(rec, req, tc.err)
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestReadJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		body    string
		wantErr string
	}{
		{`{"name":"Open"}`, ""},
		{``, "body must not be empty"},
		{`{"name":`, "badly-formed JSON"},
		{`{"name":1}`, `incorrect JSON type for field "name"`},
		{`{"other":"x"}`, "unknown key"},
		{`{"name":"a"}{"name":"b"}`, "single JSON value"},
		{`{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`, "must not be larger"},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
		var dst payload
		err := readJSON(httptest.NewRecorder(), req, &dst)
		if tc.wantErr == "" {
			require.NoError(t, err)
			assert.Equal(t, "Open", dst.Name)
			continue
		}
		require.Error(t, err)
		assert.Contains(t, err.Error(), tc.wantErr)
	}
}

func TestQueryInt(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?limit=5&offset=-1&bad=x", nil)

	v, err := queryInt(req, "limit", 20, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = queryInt(req, "missing", 20, 1)
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	_, err = queryInt(req, "offset", 0, 0)
	assert.Error(t, err)
	_, err = queryInt(req, "bad", 0, 0)
	assert.Error(t, err)
}

func TestListFilter(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?status=finished&offset=10", nil)
	filter, err := listFilter(req)
	require.NoError(t, err)
	require.NotNil(t, filter.Status)
	assert.EqualValues(t, "finished", *filter.Status)
	assert.Equal(t, defaultListLimit, filter.Limit)
	assert.Equal(t, 10, filter.Offset)
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	v := newValidator()
	err := validateRequest(httptest.NewRequest(http.MethodGet, "/", nil).Context(), v, scoreRequest{Status: "abandoned"})
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrValidationFailed)

	err = validateRequest(httptest.NewRequest(http.MethodGet, "/", nil).Context(), v, scoreRequest{
		ScoreA: []int{6, 4, 7},
		ScoreB: []int{3, 6, 5},
		Status: "finished",
	})
	assert.NoError(t, err)
}
