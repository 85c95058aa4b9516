package proto

import "strings"

type Proto uint8

const (
	Unknown Proto = iota
	HTTP11
)

type version struct {
	proto        Proto
	major, minor int
}

// supported lists every version the server speaks, ascending.
var supported = []version{
	{HTTP11, 1, 1},
}

var literals = [...]string{HTTP11: "HTTP/1.1"}

// byLiteral resolves exact literal matches without negotiation.
var byLiteral = map[string]Proto{
	"HTTP/1.1": HTTP11,
}

// String returns the protocol literal as it appears on the wire
func (p Proto) String() string {
	if p == Unknown || int(p) >= len(literals) {
		return ""
	}

	return literals[p]
}

// Negotiate resolves a client-supplied version literal to the best supported version: an
// exact literal match wins, otherwise the greatest supported version with the same major
// and a minor not greater than requested. Unknown is returned if nothing fits or the
// literal isn't of the form HTTP/<major>.<minor>.
func Negotiate(literal string) Proto {
	if p, found := byLiteral[literal]; found {
		return p
	}

	major, minor, ok := parseVersion(literal)
	if !ok {
		return Unknown
	}

	best := Unknown
	bestMinor := -1

	for _, v := range supported {
		if v.major == major && v.minor <= minor && v.minor > bestMinor {
			best, bestMinor = v.proto, v.minor
		}
	}

	return best
}

func parseVersion(literal string) (major, minor int, ok bool) {
	const scheme = "HTTP/"

	if !strings.HasPrefix(literal, scheme) {
		return 0, 0, false
	}

	majorStr, minorStr, found := strings.Cut(literal[len(scheme):], ".")
	if !found {
		return 0, 0, false
	}

	if major, ok = parseUint(majorStr); !ok {
		return 0, 0, false
	}

	minor, ok = parseUint(minorStr)

	return major, minor, ok
}

// parseUint accepts plain decimal digits only. Values are capped at 1000 which is way
// beyond any version that might be ever negotiated.
func parseUint(str string) (n int, ok bool) {
	if len(str) == 0 {
		return 0, false
	}

	for i := 0; i < len(str); i++ {
		char := str[i]
		if char < '0' || char > '9' {
			return 0, false
		}

		if n = n*10 + int(char-'0'); n > 1000 {
			n = 1000
		}
	}

	return n, true
}
