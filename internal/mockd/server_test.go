package mockd

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/facetdev/facet/internal/api"
)

func newTestServer(t *testing.T) (*Server, *api.Client) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(5, logger)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL)
	require.NoError(t, err)
	return s, client
}

func TestSeededProfilesAreServed(t *testing.T) {
	s, client := newTestServer(t)
	require.GreaterOrEqual(t, len(s.IDs()), 8, "3 well-known + 5 generated")

	p, err := client.FetchProfile(t.Context(), "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", p.ID)
	require.True(t, p.Role.Valid())
	require.NotEmpty(t, p.FirstName)
	require.NotEmpty(t, p.Email)
}

func TestFetchUnknownUserIs404(t *testing.T) {
	_, client := newTestServer(t)

	_, err := client.FetchProfile(t.Context(), "nope")
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.ErrNotFound, apiErr.Kind)
	require.Equal(t, "Not Found", apiErr.StatusText)
}

func TestPatchRoundTrip(t *testing.T) {
	_, client := newTestServer(t)
	ctx := t.Context()

	before, err := client.FetchProfile(ctx, "u1")
	require.NoError(t, err)

	first := "Jane"
	after, err := client.UpdateProfile(ctx, "u1", api.Patch{FirstName: &first})
	require.NoError(t, err)
	require.Equal(t, "Jane", after.FirstName)
	require.Equal(t, before.LastName, after.LastName, "unpatched fields survive")
	require.Equal(t, before.CreatedAt, after.CreatedAt)
	require.NotEqual(t, before.UpdatedAt, after.UpdatedAt, "update bumps the timestamp")

	// The stored profile reflects the patch on the next fetch.
	again, err := client.FetchProfile(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Jane", again.FirstName)
}

func TestPatchAdminIsForbidden(t *testing.T) {
	_, client := newTestServer(t)

	first := "Mallory"
	_, err := client.UpdateProfile(t.Context(), "admin", api.Patch{FirstName: &first})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.ErrForbidden, apiErr.Kind)
}

func TestPatchValidation(t *testing.T) {
	_, client := newTestServer(t)

	blank := "   "
	_, err := client.UpdateProfile(t.Context(), "u1", api.Patch{FirstName: &blank})
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, api.ErrValidation, apiErr.Kind)
	require.Equal(t, 422, apiErr.Status)
}
