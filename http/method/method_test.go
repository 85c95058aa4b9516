package method

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func BenchmarkMethod(b *testing.B) {
	var parsed Method

	for i := Unknown; i <= Count; i++ {
		b.Run(i.String(), func(b *testing.B) {
			m := i.String()
			b.SetBytes(int64(len(m)))
			b.ResetTimer()

			for j := 0; j < b.N; j++ {
				parsed = Parse(m)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}

func TestMethod(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, method := range List {
			require.Equal(t, method, Parse(method.String()))
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		for _, str := range []string{"POST", "PUT", "get", "Head", "", "GETS", "UNKNOWN"} {
			require.Equal(t, Unknown, Parse(str), str)
		}
	})

	t.Run("allow", func(t *testing.T) {
		require.Equal(t, "GET, HEAD", Allow(List...))
		require.Equal(t, "GET", Allow(GET))
		require.Empty(t, Allow())
	})
}
