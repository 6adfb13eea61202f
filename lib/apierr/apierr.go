package apierr

import (
	"errors"
	"fmt"
)

// Kind discriminates the failure classes every public operation can return.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidPlaymode is returned before any network activity when a
	// playmode key is not recognized.
	KindInvalidPlaymode
	// KindUpstream is returned when an upstream resource yielded no usable data.
	KindUpstream
	// KindScrapeStructure is returned when an html page did not have the
	// structure a scraper expected.
	KindScrapeStructure
	// KindTransport is returned when a binary download failed.
	KindTransport
	// KindFixture is returned when a bundled example asset could not be read.
	KindFixture
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPlaymode:
		return "invalid_playmode"
	case KindUpstream:
		return "upstream"
	case KindScrapeStructure:
		return "scrape_structure"
	case KindTransport:
		return "transport"
	case KindFixture:
		return "fixture"
	}
	return "unknown"
}

// Error is the error type returned by the osu and osuskills clients.
//
// Error() returns Message verbatim, the cause is only reachable through
// errors.Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports a match against another *Error of the same kind and message,
// so sentinel values can be compared with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}
