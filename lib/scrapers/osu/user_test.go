package osu

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"osucard-backend/lib/apierr"
	"osucard-backend/lib/testutil"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const (
	stepProfile = iota + 1
	stepGrades
	stepScores
	stepMedals
	stepTopRanks
)

var stepFailures = map[int]string{
	stepProfile:  "Failed to get user data",
	stepGrades:   "Failed to get user grades data",
	stepScores:   "Failed to get user scores data",
	stepMedals:   "Failed to get user medals data",
	stepTopRanks: "Failed to get user first places data",
}

// fakeOsu imitates the osu! website routes GetUser depends on.
type fakeOsu struct {
	t        testing.TB
	username string
	// respond returns the body served for a step
	respond func(step int) string

	lock     sync.Mutex
	requests []string
	steps    []int
}

func (f *fakeOsu) stepOf(r *http.Request) int {
	prefix := "/user/" + f.username + "/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		f.t.Errorf("unexpected path %s", r.URL.Path)
		return 0
	}
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	switch rest {
	case "grades":
		return stepGrades
	case "medals":
		return stepMedals
	case "scores":
		if r.URL.Query().Get("type") == "Top" {
			return stepTopRanks
		}
		return stepScores
	}
	return stepProfile
}

func (f *fakeOsu) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	step := f.stepOf(r)

	f.lock.Lock()
	f.requests = append(f.requests, r.URL.RequestURI())
	f.steps = append(f.steps, step)
	f.lock.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(f.respond(step)))
}

func successBody(step int) string {
	switch step {
	case stepProfile:
		return `{"user_id":2,"username":"peppy","pp_rank":1000}`
	case stepGrades:
		return `{"SS":12,"S":40,"A":100}`
	case stepScores:
		return `[{"beatmap_id":1,"pp":300.5}]`
	case stepMedals:
		return `[{"name":"500 Combo"}]`
	case stepTopRanks:
		return `[]`
	}
	return `null`
}

func newFakeClient(t testing.TB, fake *fakeOsu) (*Client, string) {
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{
		Scheme:     "http",
		FixtureDir: t.TempDir(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return client, srv.Listener.Addr().String()
}

func TestGetUserMerge(t *testing.T) {
	username := testutil.RandomUsername(t)

	for _, mode := range Playmodes() {
		t.Run(string(mode), func(t *testing.T) {
			fake := &fakeOsu{t: t, username: username, respond: successBody}
			client, server := newFakeClient(t, fake)

			profile, err := client.GetUser(context.Background(), username, UserOptions{
				Server:   server,
				Playmode: string(mode),
			})
			require.NoError(t, err)

			require.Equal(t, []int{stepProfile, stepGrades, stepScores, stepMedals, stepTopRanks}, fake.steps)
			for _, uri := range fake.requests {
				require.Contains(t, uri, mode.ServerName())
			}
			require.Equal(t, []string{
				fmt.Sprintf("/user/%s/%s", username, mode.ServerName()),
				fmt.Sprintf("/user/%s/grades?mode=%s", username, mode.ServerName()),
				fmt.Sprintf("/user/%s/scores?mode=%s&type=Best&limit=100", username, mode.ServerName()),
				fmt.Sprintf("/user/%s/medals?mode=%s", username, mode.ServerName()),
				fmt.Sprintf("/user/%s/scores?mode=%s&type=Top", username, mode.ServerName()),
			}, fake.requests)

			expected := UserProfile{
				"user_id":  float64(2),
				"username": "peppy",
				"pp_rank":  float64(1000),
				KeyGrades: map[string]any{
					"SS": float64(12),
					"S":  float64(40),
					"A":  float64(100),
				},
				KeyScores: []any{
					map[string]any{"beatmap_id": float64(1), "pp": 300.5},
				},
				KeyMedals: []any{
					map[string]any{"name": "500 Combo"},
				},
				KeyTopRanks:    []any{},
				KeyCurrentMode: string(mode),
			}
			if diff := cmp.Diff(expected, profile); diff != "" {
				t.Fatalf("merged profile mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetUserDefaults(t *testing.T) {
	opts := UserOptions{}.withDefaults()
	require.Equal(t, DefaultServer, opts.Server)
	require.Equal(t, "std", opts.Playmode)
	require.False(t, opts.IncludeTopPlays)
	require.False(t, opts.IncludeSkills)
}

func TestGetUserInvalidPlaymode(t *testing.T) {
	username := testutil.RandomUsername(t)
	fake := &fakeOsu{t: t, username: username, respond: successBody}
	client, server := newFakeClient(t, fake)

	for _, mode := range []string{"osu", "Standard", "STD", " std"} {
		_, err := client.GetUser(context.Background(), username, UserOptions{
			Server:   server,
			Playmode: mode,
		})
		require.Error(t, err)
		require.Equal(t, apierr.KindInvalidPlaymode, apierr.KindOf(err))
		require.Equal(t, "Invalid playmode "+mode, err.Error())
	}
	require.Empty(t, fake.requests)
}

func TestGetUserFailFast(t *testing.T) {
	username := testutil.RandomUsername(t)

	failureBodies := []string{`<html>bad gateway</html>`, `null`, `""`, ``}

	for failing := stepProfile; failing <= stepTopRanks; failing++ {
		for _, body := range failureBodies {
			t.Run(fmt.Sprintf("step %d body %q", failing, body), func(t *testing.T) {
				fake := &fakeOsu{t: t, username: username, respond: func(step int) string {
					if step == failing {
						return body
					}
					return successBody(step)
				}}
				client, server := newFakeClient(t, fake)

				profile, err := client.GetUser(context.Background(), username, UserOptions{
					Server:   server,
					Playmode: "mania",
				})
				require.Nil(t, profile)
				require.Error(t, err)
				require.Equal(t, apierr.KindUpstream, apierr.KindOf(err))
				require.Equal(t, stepFailures[failing], err.Error())

				require.Len(t, fake.steps, failing)
				require.Equal(t, failing, fake.steps[len(fake.steps)-1])
			})
		}
	}
}

func TestGetUserProfileNotObject(t *testing.T) {
	username := testutil.RandomUsername(t)
	fake := &fakeOsu{t: t, username: username, respond: func(step int) string {
		if step == stepProfile {
			return `[1, 2, 3]`
		}
		return successBody(step)
	}}
	client, server := newFakeClient(t, fake)

	_, err := client.GetUser(context.Background(), username, UserOptions{Server: server})
	require.Error(t, err)
	require.Equal(t, "Failed to get user data", err.Error())
	require.Len(t, fake.steps, 1)
}

func TestGetUserStatusNotChecked(t *testing.T) {
	username := testutil.RandomUsername(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	}))
	defer srv.Close()

	client, err := NewClient(ClientOptions{Scheme: "http"})
	require.NoError(t, err)

	profile, err := client.GetUser(context.Background(), username, UserOptions{
		Server: srv.Listener.Addr().String(),
	})
	require.NoError(t, err)
	require.Equal(t, "not found", profile["error"])
	require.Equal(t, "std", profile[KeyCurrentMode])
}

func TestGetUserTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	server := srv.Listener.Addr().String()
	srv.Close()

	client, err := NewClient(ClientOptions{Scheme: "http"})
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), "peppy", UserOptions{Server: server})
	require.Error(t, err)
	require.Equal(t, apierr.KindUpstream, apierr.KindOf(err))
	require.Equal(t, "Failed to get user data", err.Error())
}

func TestGetUserExample(t *testing.T) {
	dir := t.TempDir()
	fixture := `{"username":"example","statistics":{"pp":4000.5},"current_mode":"taiko"}`
	err := os.WriteFile(filepath.Join(dir, "user.json"), []byte(fixture), 0600)
	require.NoError(t, err)

	client, err := NewClient(ClientOptions{
		Scheme:     "http",
		FixtureDir: dir,
	})
	require.NoError(t, err)

	// the server is unreachable and the playmode invalid, neither is consulted
	profile, err := client.GetUser(context.Background(), ExampleUsername, UserOptions{
		Server:   "127.0.0.1:0",
		Playmode: "not-a-mode",
	})
	require.NoError(t, err)

	expected := UserProfile{
		"username":     "example",
		"statistics":   map[string]any{"pp": 4000.5},
		"current_mode": "taiko",
	}
	if diff := cmp.Diff(expected, profile); diff != "" {
		t.Fatalf("fixture mismatch (-want +got):\n%s", diff)
	}
}

func TestGetUserExampleMissing(t *testing.T) {
	client, err := NewClient(ClientOptions{FixtureDir: t.TempDir()})
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), ExampleUsername, UserOptions{})
	require.Error(t, err)
	require.Equal(t, apierr.KindFixture, apierr.KindOf(err))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestGetUserExampleNotAnObject(t *testing.T) {
	testCases := []struct {
		fixture string
		message string
	}{
		{fixture: `[{"username":"example"}]`, message: "Example user is not an object"},
		{fixture: `"example"`, message: "Example user is not an object"},
		{fixture: `null`, message: "Example user is not an object"},
		{fixture: `{"username":`, message: "Failed to parse example user"},
	}

	for _, test := range testCases {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "user.json"), []byte(test.fixture), 0600)
		require.NoError(t, err)

		client, err := NewClient(ClientOptions{FixtureDir: dir})
		require.NoError(t, err)

		_, err = client.GetUser(context.Background(), ExampleUsername, UserOptions{})
		require.Error(t, err, test.fixture)
		require.Equal(t, apierr.KindFixture, apierr.KindOf(err), test.fixture)
		require.Equal(t, test.message, err.Error(), test.fixture)
	}
}

func TestTruthy(t *testing.T) {
	require.False(t, truthy(nil))
	require.False(t, truthy(false))
	require.False(t, truthy(float64(0)))
	require.False(t, truthy(""))
	require.True(t, truthy([]any{}))
	require.True(t, truthy(map[string]any{}))
	require.True(t, truthy("0"))
	require.True(t, truthy(float64(-1)))
}
