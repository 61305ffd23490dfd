package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBucket answers the handful of path style S3 calls the store makes.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeBucket) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if decoded, ok := decodeChunked(body); ok {
			body = decoded
		}
		f.objects[key] = body
		return reply(http.StatusOK, nil), nil
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			return reply(http.StatusNotFound, nil), nil
		}
		return reply(http.StatusOK, body), nil
	case http.MethodDelete:
		delete(f.objects, key)
		return reply(http.StatusNoContent, nil), nil
	}
	return reply(http.StatusNotImplemented, nil), nil
}

func reply(status int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     http.Header{"Content-Length": {strconv.Itoa(len(body))}},
	}
}

// decodeChunked unwraps a single chunk aws-chunked payload.
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 {
		return nil, false
	}
	n, err := strconv.ParseInt(strings.SplitN(parts[0], ";", 2)[0], 16, 64)
	if err != nil || n <= 0 || int64(len(parts[1])) != n {
		return nil, false
	}
	return []byte(parts[1]), true
}

func newTestS3(t *testing.T) (*S3Storage, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string][]byte{}}
	store, err := NewS3Storage(context.Background(), S3Config{
		Bucket:          "reports",
		Region:          "us-east-1",
		Endpoint:        "https://s3.test.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
	}, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: bucket}
	})
	require.NoError(t, err)
	return store, bucket
}

func TestS3StorageSaveOpenDelete(t *testing.T) {
	store, bucket := newTestS3(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "reports/rep-1.csv", []byte("hello"), "text/csv"))
	assert.Equal(t, "hello", string(bucket.objects["reports/rep-1.csv"]))

	rc, err := store.Open(ctx, "reports/rep-1.csv")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	_ = rc.Close()
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Delete(ctx, "reports/rep-1.csv"))
	_, err = store.Open(ctx, "reports/rep-1.csv")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestS3StoragePresign(t *testing.T) {
	store, _ := newTestS3(t)
	url, err := store.PresignGet(context.Background(), "reports/rep-1.csv", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "reports/rep-1.csv")
	assert.Contains(t, url, "X-Amz-Signature")
}

func TestNewS3StorageRequiresBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), S3Config{})
	assert.Error(t, err)
}
