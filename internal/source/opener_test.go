package source

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trips.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0644))

	r, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestOpen_LocalGzipFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trips.csv.gz")

	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("a,b\n1,2\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	r, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestOpen_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("a,b\n1,2\n"))
	}))
	defer srv.Close()

	r, err := Open(context.Background(), srv.URL+"/trips.csv")
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestOpen_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Open(context.Background(), srv.URL+"/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
