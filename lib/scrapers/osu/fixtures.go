package osu

import (
	"encoding/json"
	"fmt"
	"os"
	"osucard-backend/lib/apierr"
	"path/filepath"
	"strings"
)

// ExampleImagePrefix marks image urls that are served from the fixture
// directory instead of the network.
const ExampleImagePrefix = "example_"

func (c *Client) exampleUser() (UserProfile, error) {
	contents, err := os.ReadFile(filepath.Join(c.fixtureDir, "user.json"))
	if err != nil {
		return nil, apierr.Wrap(apierr.KindFixture, "Failed to read example user", err)
	}

	var decoded any
	err = json.Unmarshal(contents, &decoded)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindFixture, "Failed to parse example user", err)
	}
	// returned as is, but it must have the shape of a profile
	profile, ok := decoded.(map[string]any)
	if !ok {
		return nil, apierr.Wrap(
			apierr.KindFixture,
			"Example user is not an object",
			fmt.Errorf("user.json holds %T", decoded),
		)
	}
	return profile, nil
}

func (c *Client) exampleImage(name string) ([]byte, error) {
	if filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return nil, apierr.New(apierr.KindFixture, fmt.Sprintf("Invalid example image %s", name))
	}
	contents, err := os.ReadFile(filepath.Join(c.fixtureDir, name))
	if err != nil {
		return nil, apierr.Wrap(apierr.KindFixture, fmt.Sprintf("Failed to read example image %s", name), err)
	}
	return contents, nil
}
