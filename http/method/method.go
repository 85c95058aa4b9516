package method

import "strings"

type Method uint8

const (
	Unknown Method = iota
	GET
	HEAD

	// Count is the last one enum, so contains the greatest integer value of all the
	// methods. So real number of methods is lower by 1
	Count = iota - 1
)

// List contains all the supported HTTP methods, sorted by their integer value. Unknown
// isn't included.
var List = []Method{GET, HEAD}

var names = [...]string{
	Unknown: "UNKNOWN",
	GET:     "GET",
	HEAD:    "HEAD",
}

var lookup = map[string]Method{
	"GET":  GET,
	"HEAD": HEAD,
}

// Parse returns Unknown if the method isn't supported. Methods are case-sensitive.
func Parse(str string) Method {
	return lookup[str]
}

func (m Method) String() string {
	if int(m) >= len(names) {
		return names[Unknown]
	}

	return names[m]
}

// Allow renders the methods as a value of the Allow header, e.g. "GET, HEAD".
func Allow(methods ...Method) string {
	var b strings.Builder

	for i, m := range methods {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(m.String())
	}

	return b.String()
}
