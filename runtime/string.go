package runtime

import (
	"strings"
	"unicode/utf8"

	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/errors"
)

// String is an engine-native string. It is independent of any context.
type String struct {
	api    engine.API
	handle *Handle[engine.StringRef]
}

// NewString copies s into an engine string. The engine takes
// NUL-terminated input, so s must not contain NUL bytes.
func NewString(api engine.API, s string) (*String, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, errors.EmbeddedNUL(errors.PhaseString, s)
	}
	return adoptString(api, api.StringCreateWithUTF8CString(s)), nil
}

// adoptString wraps a reference the engine returned already retained.
func adoptString(api engine.API, ref engine.StringRef) *String {
	return &String{api: api, handle: newHandle(api, stringOps, ref)}
}

// withString runs fn with a temporary engine copy of s.
func withString(api engine.API, phase errors.Phase, s string, fn func(engine.StringRef)) error {
	if strings.IndexByte(s, 0) >= 0 {
		return errors.EmbeddedNUL(phase, s)
	}
	ref := api.StringCreateWithUTF8CString(s)
	defer api.StringRelease(ref)
	fn(ref)
	return nil
}

// readString copies an engine string into Go memory.
func readString(api engine.API, ref engine.StringRef) []byte {
	buf := make([]byte, api.StringGetMaximumUTF8CStringSize(ref))
	n := api.StringGetUTF8CString(ref, buf)
	buf = buf[:n]
	if n > 0 && buf[n-1] == 0 {
		buf = buf[:n-1]
	}
	return buf
}

// GoString copies the string out of the engine.
func (s *String) GoString() (string, error) {
	buf := readString(s.api, s.handle.Raw())
	if !utf8.Valid(buf) {
		return "", errors.InvalidUTF8(errors.PhaseString, buf)
	}
	return string(buf), nil
}

// String copies the string out, replacing invalid UTF-8.
func (s *String) String() string {
	return strings.ToValidUTF8(string(readString(s.api, s.handle.Raw())), "\uFFFD")
}

// Equal compares contents with another engine string.
func (s *String) Equal(other *String) bool {
	return s.api.StringIsEqual(s.handle.Raw(), other.handle.Raw())
}

// Raw returns the engine reference. It panics after Release.
func (s *String) Raw() engine.StringRef {
	return s.handle.Raw()
}

// Clone returns a second owner of the same engine string.
func (s *String) Clone() *String {
	return &String{api: s.api, handle: s.handle.Clone()}
}

// Release drops this owner's reference. Further calls are no-ops.
func (s *String) Release() {
	s.handle.Release()
}
