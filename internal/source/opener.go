// Package source opens trip data locators as byte streams.
//
// A locator is either an http(s) URL fetched with a GET request or a
// local file path. Gzip-compressed sources are transparently decompressed.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/vvka-141/tripload/internal/format"
)

// Open returns a reader for the locator's decompressed contents.
// The caller must close the returned reader. Fetch and decode failures
// are fatal to the run; no retries are attempted.
func Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	raw, err := openRaw(ctx, locator)
	if err != nil {
		return nil, err
	}

	if !format.IsGzipped(locator) {
		return raw, nil
	}

	gz, err := gzip.NewReader(raw)
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("failed to create gzip reader for %q: %w", locator, err)
	}
	return &gzipReadCloser{Reader: gz, raw: raw}, nil
}

func openRaw(ctx context.Context, locator string) (io.ReadCloser, error) {
	if strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
		if err != nil {
			return nil, fmt.Errorf("invalid source URL %q: %w", locator, err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %q: %w", locator, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to fetch %q: unexpected status %s", locator, resp.Status)
		}
		return resp.Body, nil
	}

	f, err := os.Open(locator)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	return f, nil
}

// gzipReadCloser closes both the gzip reader and the underlying stream.
type gzipReadCloser struct {
	*gzip.Reader
	raw io.ReadCloser
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.Reader.Close()
	rawErr := g.raw.Close()
	if gzErr != nil {
		return gzErr
	}
	return rawErr
}
