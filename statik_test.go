package statik

import (
	"bufio"
	"fmt"
	"io"
	"net"
	stdhttp "net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/indigo-web/statik/config"
	"github.com/indigo-web/statik/http"
	"github.com/indigo-web/statik/http/status"
	"github.com/indigo-web/statik/router"
	"github.com/stretchr/testify/require"
)

const indexPage = "<html><body>Hello, world!</body></html>"

func newWebroot(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(indexPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("remember the milk"), 0o644))

	return dir
}

// run starts the app on a random port and returns the address to connect to.
func run(t *testing.T, app *App) string {
	started := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- app.NotifyOnStart(func() {
			close(started)
		}).Serve()
	}()

	select {
	case <-started:
	case err := <-done:
		require.FailNow(t, "serve failed", err)
	}

	t.Cleanup(func() {
		require.NoError(t, app.Stop())
		require.ErrorIs(t, <-done, status.ErrShutdown)
	})

	return fmt.Sprintf("127.0.0.1:%d", app.Addr().(*net.TCPAddr).Port)
}

func newApp(t *testing.T) *App {
	cfg := config.Default()
	cfg.Port = 0
	cfg.Webroot = newWebroot(t)

	return New(cfg)
}

// exchange sends the request and reads everything until the server closes the connection.
func exchange(addr, raw string) (string, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return "", err
	}

	defer conn.Close()

	if _, err = conn.Write([]byte(raw)); err != nil {
		return "", err
	}

	response, err := io.ReadAll(conn)
	return string(response), err
}

func send(t *testing.T, addr, raw string) string {
	response, err := exchange(addr, raw)
	require.NoError(t, err)

	return response
}

func TestApp(t *testing.T) {
	addr := run(t, newApp(t))

	t.Run("stdlib client", func(t *testing.T) {
		resp, err := stdhttp.Get("http://" + addr + "/index.html")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
		require.Equal(t, "text/html", resp.Header.Get("Content-Type"))
		require.EqualValues(t, len(indexPage), resp.ContentLength)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, indexPage, string(body))
	})

	t.Run("HEAD", func(t *testing.T) {
		response := send(t, addr, "HEAD /notes.txt HTTP/1.1\r\nHost: localhost\r\n\r\n")
		require.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 17\r\n\r\n", response)
	})

	t.Run("not found", func(t *testing.T) {
		response := send(t, addr, "GET /nope.html HTTP/1.1\r\n\r\n")
		resp, err := stdhttp.ReadResponse(bufio.NewReader(strings.NewReader(response)), nil)
		require.NoError(t, err)
		require.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
		require.Empty(t, resp.Header.Get("Allow"))
	})

	t.Run("not implemented", func(t *testing.T) {
		response := send(t, addr, "DELETE /index.html HTTP/1.1\r\n\r\n")
		require.True(t, strings.HasPrefix(response, "HTTP/1.1 501 Not Implemented\r\n"))
	})

	t.Run("version not supported", func(t *testing.T) {
		response := send(t, addr, "GET /index.html HTTP/2.0\r\n\r\n")
		require.True(t, strings.HasPrefix(response, "HTTP/1.1 505 HTTP Version Not Supported\r\n"))
	})

	t.Run("chunked request body", func(t *testing.T) {
		response := send(t, addr,
			"GET /index.html HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n5\r\nhello\r\n0\r\n\r\n")
		require.True(t, strings.HasPrefix(response, "HTTP/1.1 200 OK\r\n"))
	})

	t.Run("client leaves early", func(t *testing.T) {
		conn, err := net.Dial("tcp", addr)
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		// the server is still alive
		response := send(t, addr, "GET /index.html HTTP/1.1\r\n\r\n")
		require.True(t, strings.HasPrefix(response, "HTTP/1.1 200 OK\r\n"))
	})
}

func TestApp_Concurrency(t *testing.T) {
	const (
		workers = 2
		clients = 6
	)

	var (
		mu           sync.Mutex
		active, peak int
	)

	release := make(chan struct{})
	slowRouter := router.Func(func(_ *http.Request, response *http.Response) {
		mu.Lock()
		active++
		peak = max(peak, active)
		mu.Unlock()

		<-release

		mu.Lock()
		active--
		mu.Unlock()

		response.Code(status.NoContent).Status("No Content")
	})

	app := newApp(t)
	app.cfg.Workers = workers
	addr := run(t, app.Router(slowRouter))

	var wg sync.WaitGroup
	responses := make(chan string, clients)
	errs := make(chan error, clients)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			response, err := exchange(addr, "GET / HTTP/1.1\r\n\r\n")
			responses <- response
			errs <- err
		}()
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return active == workers
	}, 5*time.Second, 10*time.Millisecond)

	// saturated pool doesn't take more
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	require.Equal(t, workers, active)
	mu.Unlock()

	close(release)
	wg.Wait()
	close(responses)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	for response := range responses {
		require.Equal(t, "HTTP/1.1 204 No Content\r\n\r\n", response)
	}

	require.Equal(t, workers, peak)
}

func TestApp_BindFailure(t *testing.T) {
	occupied, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer occupied.Close()

	cfg := config.Default()
	cfg.Port = occupied.Addr().(*net.TCPAddr).Port
	cfg.Webroot = t.TempDir()

	err = New(cfg).Serve()
	require.Error(t, err)
	require.NotErrorIs(t, err, status.ErrShutdown)
}

func TestApp_StopBeforeServe(t *testing.T) {
	app := New(nil)
	require.Nil(t, app.Addr())
	require.NoError(t, app.Stop())
}
