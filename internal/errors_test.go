package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hydrate/internal"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("constructors", func(t *testing.T) {
		t.Parallel()

		nf := internal.ErrNotFound("no such post")
		require.Equal(t, http.StatusNotFound, nf.StatusCode())
		require.Equal(t, "no such post", nf.Error())
		require.Equal(t, "Not Found", nf.StatusText())

		cause := errors.New("db down")
		ie := internal.ErrInternal("try later", cause)
		require.Equal(t, http.StatusInternalServerError, ie.StatusCode())
		require.ErrorIs(t, ie, cause)
	})

	t.Run("AsHTTPError unwraps chains", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("customize: %w", internal.NewHTTPError(http.StatusForbidden, "nope"))
		he := internal.AsHTTPError(err)
		require.NotNil(t, he)
		require.Equal(t, http.StatusForbidden, he.Code)

		require.Nil(t, internal.AsHTTPError(errors.New("plain")))
		require.Nil(t, internal.AsHTTPError(nil))
	})
}
