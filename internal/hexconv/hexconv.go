package hexconv

// Invalid marks bytes that aren't hexadecimal digits in the Halfbyte table.
const Invalid = 0xFF

// Halfbyte maps an ASCII hexadecimal digit into its value. Any other byte maps to Invalid.
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = Invalid
	}

	for c := '0'; c <= '9'; c++ {
		table[c] = byte(c - '0')
	}

	for c := 'a'; c <= 'f'; c++ {
		table[c] = byte(c-'a') + 10
		table[c-'a'+'A'] = byte(c-'a') + 10
	}

	return table
}()

// ParseUint parses a non-empty sequence of hexadecimal digits. The bool is false if the
// string is empty, contains a non-hex character or the value doesn't fit into max.
func ParseUint(str string, max uint64) (uint64, bool) {
	if len(str) == 0 {
		return 0, false
	}

	var result uint64

	for i := 0; i < len(str); i++ {
		half := Halfbyte[str[i]]
		if half == Invalid {
			return 0, false
		}

		if result > max>>4 {
			return 0, false
		}

		if result = result<<4 | uint64(half); result > max {
			return 0, false
		}
	}

	return result, true
}
