// Package requestgen renders raw requests for tests and benchmarks.
package requestgen

import (
	"strconv"
	"strings"

	"github.com/indigo-web/statik/http/method"
	"github.com/indigo-web/statik/kv"
)

// Headers returns n headers, the last one is always Host.
func Headers(n int) *kv.Storage {
	hdrs := kv.NewPrealloc(n)

	for i := 0; i < n-1; i++ {
		hdrs.Add("some-random-header-name-nobody-cares-about"+strconv.Itoa(i), strings.Repeat("b", 100))
	}

	return hdrs.Add("Host", "localhost")
}

func HeadersBlock(hdrs *kv.Storage) (buff []byte) {
	for key, value := range hdrs.Pairs() {
		buff = append(buff, key+": "+value+"\r\n"...)
	}

	return buff
}

// Generate renders a request without body.
func Generate(m method.Method, target string, hdrs *kv.Storage) (request []byte) {
	request = append(request, m.String()+" "+target+" HTTP/1.1\r\n"...)
	request = append(request, HeadersBlock(hdrs)...)

	return append(request, '\r', '\n')
}
