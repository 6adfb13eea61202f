package devenv

// LiveTestConfig is read from dev/.state/live_test.json5, tests that talk to
// the real upstream sites skip themselves when it is absent.
type LiveTestConfig struct {
	Username string `json:"username"`
	Server   string `json:"server"`
	Playmode string `json:"playmode"`
}
