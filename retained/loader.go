package retained

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// maxGraphicSize bounds a fetched graphic body.
const maxGraphicSize = 4 << 20

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// Client performs HTTP fetches. Default: a client with a 10s timeout.
	Client *http.Client

	// CacheSize is the number of fetched bodies kept in memory (default: 64).
	CacheSize int
}

// Loader fetches remote graphics and delivers parsed documents on a loop.
// Concurrent loads of one URL share a single fetch; bodies are cached by URL.
// Failures are reported to the callback and never retried.
type Loader struct {
	loop   *Loop
	client *http.Client
	cache  *lru.Cache[string, []byte]
	group  singleflight.Group
}

// NewLoader creates a loader that delivers results on loop.
func NewLoader(loop *Loop, config LoaderConfig) (*Loader, error) {
	if config.Client == nil {
		config.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if config.CacheSize < 1 {
		config.CacheSize = 64
	}
	cache, err := lru.New[string, []byte](config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create graphic cache: %w", err)
	}
	return &Loader{loop: loop, client: config.Client, cache: cache}, nil
}

// Loader returns the loop's shared loader, created with the default
// configuration on first use.
func (l *Loop) Loader() *Loader {
	l.loaderOnce.Do(func() {
		loader, err := NewLoader(l, LoaderConfig{})
		if err != nil {
			panic(fmt.Sprintf("retained: failed to create loader: %v", err))
		}
		l.loader = loader
	})
	return l.loader
}

// Load fetches url in the background, then parses it and calls cb on the loop.
// url may be http(s)://, file://, or a local path.
func (l *Loader) Load(ctx context.Context, url string, cb func(*Document, error)) {
	go func() {
		body, err := l.fetch(ctx, url)
		l.loop.Post(func() {
			if err != nil {
				cb(nil, err)
				return
			}
			doc, err := ParseInline(string(body))
			cb(doc, err)
		})
	}()
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if body, ok := l.cache.Get(url); ok {
		return body, nil
	}

	// The shared fetch outlives any one caller; the client timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(url, func() (interface{}, error) {
		var body []byte
		var err error
		if isURL(url) {
			body, err = l.fetchURL(fetchCtx, url)
		} else {
			body, err = readGraphicFile(strings.TrimPrefix(url, "file://"))
		}
		if err != nil {
			return nil, err
		}
		l.cache.Add(url, body)
		return body, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to load %s: %w", url, ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", url, r.Err)
		}
		return r.Val.([]byte), nil
	}
}

// fetchURL fetches data from a URL.
func (l *Loader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxGraphicSize))
}

// readGraphicFile reads graphic data from a file path.
func readGraphicFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graphic file: %w", err)
	}
	return data, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
