// Package wordsource gathers raw word list text from files, stdin and web pages.
// Splitting that text into words is left to the word store.
package wordsource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/japaniel/spelling/pkg/config"
)

// DefaultMaxBodySize caps how much of a page is read.
const DefaultMaxBodySize = 10 * 1024 * 1024

// FromReader returns everything r yields as text.
func FromReader(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FromFile returns the contents of path; "-" reads stdin.
func FromFile(path string) (string, error) {
	if path == "-" {
		return FromReader(os.Stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read word file: %w", err)
	}
	return string(b), nil
}

// Fetcher downloads word lists from web pages.
type Fetcher struct {
	Client      *http.Client
	UserAgent   string
	MaxBodySize int64
	Workers     int
	Logger      *slog.Logger
}

// NewFetcher creates a Fetcher from fetch settings.
func NewFetcher(cfg config.FetchConfig, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		Client:      &http.Client{Timeout: cfg.Timeout},
		UserAgent:   cfg.UserAgent,
		MaxBodySize: cfg.MaxBodyBytes,
		Workers:     cfg.Workers,
		Logger:      logger.With("component", "wordsource"),
	}
}

// Fetch downloads rawURL and returns its word list text. Plain text bodies are
// returned as-is; HTML goes through ExtractWords.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		return "", fmt.Errorf("invalid url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: got status code %d", rawURL, resp.StatusCode)
	}

	maxBodySize := f.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	if resp.ContentLength > maxBodySize {
		return "", fmt.Errorf("fetch %s: content-length %d exceeds limit of %d bytes", rawURL, resp.ContentLength, maxBodySize)
	}
	// Read one byte past the limit so an exactly-full body is not mistaken for truncation.
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", rawURL, err)
	}
	if int64(len(body)) > maxBodySize {
		return "", fmt.Errorf("fetch %s: body exceeded maximum size limit of %d bytes", rawURL, maxBodySize)
	}

	f.logger().Debug("page fetched",
		slog.String("url", rawURL),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)),
	)

	contentType := resp.Header.Get("Content-Type")
	body, err = toUTF8(body, contentType)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", rawURL, err)
	}

	if isPlainText(contentType) {
		return string(body), nil
	}
	return ExtractWords(body, parsedURL)
}

// toUTF8 transcodes body from the charset declared in contentType, or sniffed
// from a BOM or <meta> tag when none is declared.
func toUTF8(body []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// FetchAll fetches urls concurrently and joins their texts with newlines, in
// the order the urls were given. The error of the earliest failing url is returned.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) (string, error) {
	if len(urls) == 0 {
		return "", nil
	}

	texts := make([]string, len(urls))
	errs := make([]error, len(urls))

	// The queue holds every url, so submitting never blocks.
	pool := NewWorkerPool(f.Workers, len(urls))
	pool.Start(ctx)
	for i, u := range urls {
		if err := pool.SubmitCtx(ctx, func(ctx context.Context) error {
			texts[i], errs[i] = f.Fetch(ctx, u)
			return errs[i]
		}); err != nil {
			errs[i] = err
		}
	}
	pool.Close()

	// Workers stop early on cancellation, leaving queued urls unfetched.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, err := range errs {
		if err != nil {
			return "", err
		}
	}
	return strings.Join(texts, "\n"), nil
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}

func isPlainText(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "text/plain"
}
