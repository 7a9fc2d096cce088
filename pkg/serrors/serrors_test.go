package serrors_test

import (
	"errors"
	"fmt"
	"linkguard/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrBadRequest,
		serrors.ErrForbidden,
		serrors.ErrNotFound,
		serrors.ErrInternal,
		serrors.ErrUnavailable,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("bad escape")

	e1 := serrors.With(serrors.ErrBadRequest, "missing %s parameter", "url")
	require.Equal(t, "missing url parameter", e1.Error())

	e2 := serrors.Wrap(serrors.ErrBadRequest, base, "invalid origin")
	require.Equal(t, "invalid origin: bad escape", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrForbidden)
	require.Equal(t, "FORBIDDEN", e3.Error())
}

func TestIsAndAs(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrBadRequest, base, "parsing")

	require.ErrorIs(t, e, serrors.ErrBadRequest)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrForbidden)

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrBadRequest, k)

	var ce *customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, base, ce)
}

func TestKindOf(t *testing.T) {
	require.Equal(t, serrors.ErrInternal, serrors.KindOf(errors.New("plain")))
	require.Equal(t, serrors.ErrNotFound, serrors.KindOf(serrors.ErrNotFound))

	wrapped := fmt.Errorf("could not open: %w", serrors.With(serrors.ErrForbidden, "navigation blocked"))
	require.Equal(t, serrors.ErrForbidden, serrors.KindOf(wrapped))
	require.Equal(t, "navigation blocked", serrors.MessageOf(wrapped))
	require.Empty(t, serrors.MessageOf(errors.New("plain")))
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrUnavailable, base, "upstream")
	require.Equal(t, serrors.ErrUnavailable, e.Kind())
	require.Equal(t, "upstream", e.Message())
	require.Equal(t, base, e.Cause())

	var nilErr *serrors.Error
	require.Equal(t, "<nil>", nilErr.Error())
}
