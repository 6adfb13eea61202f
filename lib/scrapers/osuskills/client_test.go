package osuskills

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"osucard-backend/lib/apierr"
	"osucard-backend/lib/testutil"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t testing.TB, username string, status int, body []byte) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/"+username {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetUserSkills(t *testing.T) {
	username := testutil.RandomUsername(t)
	srv := newTestServer(t, username, http.StatusOK, userPage)

	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	report, err := client.GetUserSkills(context.Background(), username)
	require.NoError(t, err)
	require.Len(t, report.Skills, len(SkillNames))
	for _, name := range SkillNames {
		require.Contains(t, report.Skills, name)
	}
	require.Equal(t, 500, report.Skills["agility"].Value)
	require.Equal(t, 100.0, report.Skills["memory"].Percent)
	require.Equal(t, []string{"Legendary Aim", "Speed Demon"}, report.Tags)
}

func TestGetUserSkillsFetchFailure(t *testing.T) {
	username := testutil.RandomUsername(t)
	srv := newTestServer(t, username, http.StatusOK, userPage)

	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	// unknown user, the test server responds 404
	_, err = client.GetUserSkills(context.Background(), username+"x")
	require.Error(t, err)
	require.Equal(t, apierr.KindUpstream, apierr.KindOf(err))
	require.Equal(t, "Failed to get skills data", err.Error())

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()
	client, err = NewClient(ClientOptions{BaseUrl: closed.URL})
	require.NoError(t, err)

	_, err = client.GetUserSkills(context.Background(), username)
	require.Error(t, err)
	require.Equal(t, apierr.KindUpstream, apierr.KindOf(err))
	require.Equal(t, "Failed to get skills data", err.Error())
}

func TestGetUserSkillsStructureFailure(t *testing.T) {
	username := testutil.RandomUsername(t)
	srv := newTestServer(t, username, http.StatusOK, []byte(`<html><body>
		<div class="skillsList"><output class="skillValue">10</output></div>
	</body></html>`))

	client, err := NewClient(ClientOptions{BaseUrl: srv.URL})
	require.NoError(t, err)

	_, err = client.GetUserSkills(context.Background(), username)
	require.Error(t, err)
	require.Equal(t, apierr.KindScrapeStructure, apierr.KindOf(err))

	var structErr *ScrapeStructureError
	require.True(t, errors.As(err, &structErr))
	require.Equal(t, 1, structErr.Got)
	require.Equal(t, 7, structErr.Want)
}
