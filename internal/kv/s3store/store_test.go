package s3store

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// fakeS3 answers the GetObject/PutObject/DeleteObject subset over a
// path-style endpoint without touching the network.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// path-style: /<bucket>/<key>
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch req.Method {
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			return respond(http.StatusNotFound, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`, "application/xml"), nil
		}
		return respond(http.StatusOK, string(body), "application/json"), nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if dec, ok := decodeChunked(body); ok {
			body = dec
		}
		f.objects[key] = body
		resp := respond(http.StatusOK, "", "")
		resp.Header.Set("ETag", `"etag"`)
		return resp, nil
	case http.MethodDelete:
		delete(f.objects, key)
		return respond(http.StatusNoContent, "", ""), nil
	}
	return respond(http.StatusNotImplemented, "", ""), nil
}

func respond(status int, body, ct string) *http.Response {
	h := http.Header{}
	if ct != "" {
		h.Set("Content-Type", ct)
	}
	h.Set("Content-Length", strconv.Itoa(len(body)))
	return &http.Response{
		StatusCode:    status,
		Body:          io.NopCloser(strings.NewReader(body)),
		Header:        h,
		ContentLength: int64(len(body)),
	}
}

// decodeChunked unwraps a single-chunk aws-chunked payload: <hex>\r\n<body>\r\n0\r\n...
func decodeChunked(b []byte) ([]byte, bool) {
	head, rest, ok := bytes.Cut(b, []byte("\r\n"))
	if !ok {
		return nil, false
	}
	n, err := strconv.ParseInt(string(head), 16, 64)
	if err != nil || int64(len(rest)) < n+2 {
		return nil, false
	}
	if !bytes.HasPrefix(rest[n:], []byte("\r\n0")) {
		return nil, false
	}
	return rest[:n], true
}

func newTestStore(t *testing.T, prefix string) (*Store, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}}
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: fake}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})
	return NewWithClient(client, "panel-bucket", prefix), fake
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected error without bucket")
	}
}

func TestS3RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, fake := newTestStore(t, "panel/")

	if _, ok, err := s.Get(ctx, "admin_panel_users_deleted"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "admin_panel_users_deleted", []byte(`[2,4]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := fake.objects["panel/admin_panel_users_deleted.json"]; !ok {
		t.Fatalf("object not stored under prefixed key; have %v", fake.objects)
	}

	got, ok, err := s.Get(ctx, "admin_panel_users_deleted")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got) != `[2,4]` {
		t.Errorf("got %s, want [2,4]", got)
	}

	if err := s.Delete(ctx, "admin_panel_users_deleted"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "admin_panel_users_deleted"); ok {
		t.Error("object survived Delete")
	}
}

func TestDecodeChunked(t *testing.T) {
	body := []byte("5\r\nhello\r\n0\r\nx-amz-checksum-crc32:abc=\r\n\r\n")
	got, ok := decodeChunked(body)
	if !ok || string(got) != "hello" {
		t.Errorf("decodeChunked = %q, %v", got, ok)
	}
	if _, ok := decodeChunked([]byte(`{"plain":true}`)); ok {
		t.Error("plain JSON should not decode as chunked")
	}
}
