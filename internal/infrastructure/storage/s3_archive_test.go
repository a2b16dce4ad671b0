package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kizora/invoicer/internal/infrastructure/config"
	"github.com/kizora/invoicer/internal/infrastructure/printing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeS3 is a path-style S3 endpoint keeping objects in memory.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	buckets map[string]bool
}

func newFakeS3(t *testing.T) (*fakeS3, *httptest.Server) {
	f := &fakeS3{objects: map[string][]byte{}, buckets: map[string]bool{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, _ := strings.Cut(path, "/")

	if key == "" {
		switch r.Method {
		case http.MethodHead:
			if !f.buckets[bucket] {
				w.WriteHeader(http.StatusNotFound)
				return
			}
		case http.MethodPut:
			f.buckets[bucket] = true
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[path] = decodeChunked(r, body)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	case http.MethodDelete:
		delete(f.objects, path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// decodeChunked unwraps an aws-chunked body sent with a trailing checksum.
func decodeChunked(r *http.Request, body []byte) []byte {
	if !strings.Contains(r.Header.Get("Content-Encoding"), "aws-chunked") {
		return body
	}
	var out []byte
	rest := string(body)
	for {
		sizeLine, after, ok := strings.Cut(rest, "\r\n")
		if !ok {
			return out
		}
		sizeHex, _, _ := strings.Cut(sizeLine, ";")
		var size int
		for _, c := range strings.TrimSpace(sizeHex) {
			size *= 16
			switch {
			case c >= '0' && c <= '9':
				size += int(c - '0')
			case c >= 'a' && c <= 'f':
				size += int(c-'a') + 10
			case c >= 'A' && c <= 'F':
				size += int(c-'A') + 10
			}
		}
		if size == 0 || size > len(after) {
			return out
		}
		out = append(out, after[:size]...)
		rest = strings.TrimPrefix(after[size:], "\r\n")
	}
}

func testConfig(endpoint string) *config.StorageConfig {
	return &config.StorageConfig{
		Backend:      config.StorageS3,
		Bucket:       "invoices",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		Region:       "us-east-1",
		Endpoint:     endpoint,
		UsePathStyle: true,
	}
}

func TestNewS3Archive_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr string
	}{
		{name: "nil config", cfg: nil, wantErr: "configuration is required"},
		{name: "missing bucket", cfg: &config.StorageConfig{AccessKey: "k", SecretKey: "s"}, wantErr: "bucket is required"},
		{name: "missing access key", cfg: &config.StorageConfig{Bucket: "b", SecretKey: "s"}, wantErr: "access key is required"},
		{name: "missing secret key", cfg: &config.StorageConfig{Bucket: "b", AccessKey: "k"}, wantErr: "secret key is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewS3Archive(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("valid config uses defaults", func(t *testing.T) {
		archive, err := NewS3Archive(&config.StorageConfig{Bucket: "b", AccessKey: "k", SecretKey: "s"})
		require.NoError(t, err)
		assert.Equal(t, "b", archive.GetBucket())
		assert.Equal(t, 15*time.Minute, archive.presignExpiration)
	})

	t.Run("options", func(t *testing.T) {
		archive, err := NewS3Archive(testConfig("localhost:9000"),
			WithLogger(zaptest.NewLogger(t)),
			WithPresignExpiration(time.Hour),
		)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, archive.presignExpiration)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		useSSL   bool
		want     string
	}{
		{"", false, "http://localhost:9000"},
		{"minio:9000", false, "http://minio:9000"},
		{"s3.example.com", true, "https://s3.example.com"},
		{"https://s3.example.com", false, "https://s3.example.com"},
	}
	for _, tt := range tests {
		got, err := normalizeEndpoint(tt.endpoint, tt.useSSL)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestS3Archive_StoreGetDelete(t *testing.T) {
	fake, srv := newFakeS3(t)
	archive, err := NewS3Archive(testConfig(srv.URL))
	require.NoError(t, err)

	ctx := context.Background()
	key := printing.ArchiveKey("p-1", "Invoice-INVOICE-WEST-MAR25.html")
	content := []byte("<html><body>Invoice</body></html>")

	require.NoError(t, archive.EnsureBucket(ctx))
	assert.True(t, fake.buckets["invoices"])

	doc, err := archive.Store(ctx, key, printing.HTMLContentType, content)
	require.NoError(t, err)
	assert.Equal(t, key, doc.Key)
	assert.Equal(t, int64(len(content)), doc.Size)
	assert.Contains(t, doc.URL, "/invoices/exports/p-1/Invoice-INVOICE-WEST-MAR25.html")
	assert.Contains(t, doc.URL, "X-Amz-Signature")

	rc, err := archive.Get(ctx, key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, content, got)

	require.NoError(t, archive.Delete(ctx, key))
	_, err = archive.Get(ctx, key)
	assert.Error(t, err)
}

func TestS3Archive_ValidationErrors(t *testing.T) {
	archive, err := NewS3Archive(testConfig("http://localhost:9000"))
	require.NoError(t, err)
	ctx := context.Background()

	var renderErr *printing.RenderError

	_, err = archive.Store(ctx, "", printing.HTMLContentType, []byte("x"))
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, printing.ErrCodeInvalidPath, renderErr.Code)

	_, err = archive.Store(ctx, "k", printing.HTMLContentType, nil)
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, printing.ErrCodeStorageFailed, renderErr.Code)

	_, err = archive.Get(ctx, "")
	assert.Error(t, err)
	assert.Error(t, archive.Delete(ctx, ""))
}

func TestNewArchive(t *testing.T) {
	ctx := context.Background()

	t.Run("none", func(t *testing.T) {
		archive, err := NewArchive(ctx, &config.StorageConfig{Backend: config.StorageNone}, nil)
		require.NoError(t, err)
		assert.Nil(t, archive)
	})

	t.Run("filesystem", func(t *testing.T) {
		archive, err := NewArchive(ctx, &config.StorageConfig{
			Backend:  config.StorageFileSystem,
			BasePath: t.TempDir(),
		}, nil)
		require.NoError(t, err)
		assert.IsType(t, &printing.FileSystemArchive{}, archive)
	})

	t.Run("s3 ensures bucket", func(t *testing.T) {
		fake, srv := newFakeS3(t)
		archive, err := NewArchive(ctx, testConfig(srv.URL), nil)
		require.NoError(t, err)
		assert.IsType(t, &S3Archive{}, archive)
		assert.True(t, fake.buckets["invoices"])
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := NewArchive(ctx, &config.StorageConfig{Backend: "ftp"}, nil)
		assert.Error(t, err)
	})
}
