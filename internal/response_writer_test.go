package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("tracks status and size", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := newResponseWriter(rec, false)
		require.False(t, rw.Written())

		rw.WriteHeader(http.StatusNotFound)
		_, err := rw.Write([]byte("missing"))
		require.NoError(t, err)

		require.True(t, rw.Written())
		require.Equal(t, http.StatusNotFound, rw.Status())
		require.Equal(t, int64(7), rw.Size())
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("implicit 200 on first write", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := newResponseWriter(rec, false)
		_, err := rw.Write([]byte("ok"))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, rw.Status())
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("header written once", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := newResponseWriter(rec, false)
		rw.WriteHeader(http.StatusCreated)
		rw.WriteHeader(http.StatusInternalServerError)
		require.Equal(t, http.StatusCreated, rw.Status())
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("htmx gets 200 on the wire", func(t *testing.T) {
		t.Parallel()

		for _, code := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
			rec := httptest.NewRecorder()
			rw := newResponseWriter(rec, true)
			rw.WriteHeader(code)
			require.Equal(t, code, rw.Status())
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("does not double wrap", func(t *testing.T) {
		t.Parallel()

		rw := newResponseWriter(httptest.NewRecorder(), false)
		require.Same(t, rw, newResponseWriter(rw, true))
	})
}
