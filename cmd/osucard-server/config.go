package main

import (
	"osucard-backend/lib/sqliteutil"
)

type Config struct {
	Port int `json:"port"`
	// FixtureDir holds the example user and images, defaults to assets/example.
	FixtureDir            string `json:"fixture_dir"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	// UpstreamTimeoutSeconds bounds each outgoing request, 0 disables it.
	UpstreamTimeoutSeconds int               `json:"upstream_timeout_seconds"`
	OsuskillsUrl           string            `json:"osuskills_url"`
	CloudflareBypass       bool              `json:"cloudflare_bypass"`
	Store                  sqliteutil.Config `json:"store"`
}

var defaultConfig = Config{
	Port:                  8000,
	RequestTimeoutSeconds: 60,
}
