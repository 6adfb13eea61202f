package osu

import (
	"context"
	"fmt"
	"net/url"
	"osucard-backend/lib/apierr"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ExampleUsername bypasses the network and returns the bundled user.json
// unchanged. The fixture must hold a json object like any other profile.
const ExampleUsername = "@example"

// UserProfile is the upstream profile object with the other fetched
// resources attached under the keys below. Upstream fields are passed
// through untouched.
type UserProfile map[string]any

const (
	KeyGrades      = "grades"
	KeyScores      = "scores"
	KeyMedals      = "medals"
	KeyTopRanks    = "top_ranks"
	KeyCurrentMode = "current_mode"
)

// UserOptions configures GetUser, zero values pick the defaults.
type UserOptions struct {
	// Server is the host profiles are requested from, defaults to osu.ppy.sh.
	Server string
	// Playmode is a client facing key (std, taiko, catch, mania), defaults
	// to std.
	Playmode string

	// IncludeTopPlays is accepted but not consulted, top ranks are always
	// fetched.
	IncludeTopPlays bool
	// IncludeSkills is accepted but not consulted, skills are never fetched
	// by GetUser. Use osuskills.Client for them.
	IncludeSkills bool
}

func (o UserOptions) withDefaults() UserOptions {
	if o.Server == "" {
		o.Server = DefaultServer
	}
	if o.Playmode == "" {
		o.Playmode = string(PlaymodeStd)
	}
	return o
}

type fetchStep struct {
	// key the result is attached under, empty for the profile itself
	key     string
	path    string
	failure string
}

func userSteps(username string, mode Playmode) []fetchStep {
	name := url.PathEscape(username)
	modeName := mode.ServerName()
	return []fetchStep{
		{
			path:    fmt.Sprintf("/user/%s/%s", name, modeName),
			failure: "Failed to get user data",
		},
		{
			key:     KeyGrades,
			path:    fmt.Sprintf("/user/%s/grades?mode=%s", name, modeName),
			failure: "Failed to get user grades data",
		},
		{
			key:     KeyScores,
			path:    fmt.Sprintf("/user/%s/scores?mode=%s&type=Best&limit=100", name, modeName),
			failure: "Failed to get user scores data",
		},
		{
			key:     KeyMedals,
			path:    fmt.Sprintf("/user/%s/medals?mode=%s", name, modeName),
			failure: "Failed to get user medals data",
		},
		{
			key:     KeyTopRanks,
			path:    fmt.Sprintf("/user/%s/scores?mode=%s&type=Top", name, modeName),
			failure: "Failed to get user first places data",
		},
	}
}

// GetUser fetches a profile, its grades, best scores, medals and first
// places one after another and merges them into a single record. The first
// step that yields no data aborts the rest.
func (c *Client) GetUser(ctx context.Context, username string, opts UserOptions) (UserProfile, error) {
	ctx, span := tracer.Start(ctx, "client:GetUser")
	defer span.End()

	if username == ExampleUsername {
		span.SetAttributes(attribute.Bool("fixture", true))
		return c.exampleUser()
	}

	opts = opts.withDefaults()
	span.SetAttributes(
		attribute.String("username", username),
		attribute.String("server", opts.Server),
		attribute.String("playmode", opts.Playmode),
	)

	mode, err := ParsePlaymode(opts.Playmode)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var profile UserProfile
	for _, step := range userSteps(username, mode) {
		data, ok := c.fetchJSON(ctx, c.serverURL(opts.Server, step.path))
		if !ok || !truthy(data) {
			span.SetStatus(codes.Error, step.failure)
			return nil, apierr.New(apierr.KindUpstream, step.failure)
		}

		if step.key == "" {
			object, isObject := data.(map[string]any)
			if !isObject {
				span.SetStatus(codes.Error, step.failure)
				return nil, apierr.New(apierr.KindUpstream, step.failure)
			}
			profile = object
			continue
		}
		profile[step.key] = data
	}

	profile[KeyCurrentMode] = string(mode)
	return profile, nil
}

func (c *Client) serverURL(server, path string) string {
	return fmt.Sprintf("%s://%s%s", c.scheme, server, path)
}

// truthy mirrors how the upstream site's own frontend decides a payload is
// missing: null, false, 0 and "" count as no data.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	}
	return true
}
