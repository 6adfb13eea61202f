package osu

import (
	"osucard-backend/lib/apierr"
)

// Playmode is the client facing key of a game variant.
type Playmode string

const (
	PlaymodeStd   Playmode = "std"
	PlaymodeTaiko Playmode = "taiko"
	PlaymodeCatch Playmode = "catch"
	PlaymodeMania Playmode = "mania"
)

var serverNames = map[Playmode]string{
	PlaymodeStd:   "Standard",
	PlaymodeTaiko: "Taiko",
	PlaymodeCatch: "CatchTheBeat",
	PlaymodeMania: "Mania",
}

// Playmodes lists every supported playmode in display order.
func Playmodes() []Playmode {
	return []Playmode{PlaymodeStd, PlaymodeTaiko, PlaymodeCatch, PlaymodeMania}
}

// ParsePlaymode validates a playmode key, unknown keys are never
// substituted with a default.
func ParsePlaymode(key string) (Playmode, error) {
	mode := Playmode(key)
	if _, ok := serverNames[mode]; !ok {
		return "", apierr.Newf(apierr.KindInvalidPlaymode, "Invalid playmode %s", key)
	}
	return mode, nil
}

// ServerName is the name the osu! website uses for the playmode in urls.
func (p Playmode) ServerName() string {
	return serverNames[p]
}
