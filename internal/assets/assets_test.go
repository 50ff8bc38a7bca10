package assets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/debemdeboas/brandi/internal/cache"
	"github.com/debemdeboas/brandi/internal/util"
)

var testFS = fstest.MapFS{
	"app.css":   {Data: []byte("body{margin:0}"), ModTime: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	"router.js": {Data: []byte("(function(){})();")},
}

type fakeS3 struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
		ETag:          aws.String(`"s3-etag"`),
	}, nil
}

func TestFSSourceOpen(t *testing.T) {
	src := NewFSSource(testFS)

	obj, err := src.Open(context.Background(), "/app.css")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer obj.Body.Close()

	body, _ := io.ReadAll(obj.Body)
	if string(body) != "body{margin:0}" {
		t.Errorf("Expected stylesheet body, got %q", body)
	}
	if !strings.HasPrefix(obj.ContentType, "text/css") {
		t.Errorf("Expected text/css, got %q", obj.ContentType)
	}
	if obj.ETag != util.ETag(body) {
		t.Errorf("Expected ETag %s, got %s", util.ETag(body), obj.ETag)
	}
	if obj.Size != int64(len(body)) {
		t.Errorf("Expected size %d, got %d", len(body), obj.Size)
	}
	if obj.ModTime.IsZero() {
		t.Error("Expected modification time")
	}
}

func TestFSSourceMissing(t *testing.T) {
	src := NewFSSource(testFS)

	for _, name := range []string{"missing.css", "../secret", "", "/"} {
		t.Run(name, func(t *testing.T) {
			if _, err := src.Open(context.Background(), name); !errors.Is(err, ErrNotExist) {
				t.Errorf("Expected ErrNotExist for %q, got %v", name, err)
			}
		})
	}
}

func TestS3SourceOpen(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"static/router.js": "js"}}
	src := NewS3SourceWithClient(client, "brandi-assets", "/static/")

	obj, err := src.Open(context.Background(), "/router.js")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer obj.Body.Close()

	if client.keys[0] != "static/router.js" {
		t.Errorf("Expected prefixed key, got %q", client.keys[0])
	}
	if obj.ETag != `"s3-etag"` || obj.Size != 2 {
		t.Errorf("Unexpected object metadata %+v", obj)
	}
	if !strings.Contains(obj.ContentType, "javascript") {
		t.Errorf("Expected content type from the extension, got %q", obj.ContentType)
	}
}

func TestS3SourceErrors(t *testing.T) {
	src := NewS3SourceWithClient(&fakeS3{}, "brandi-assets", "")
	if _, err := src.Open(context.Background(), "app.css"); !errors.Is(err, ErrNotExist) {
		t.Errorf("Expected ErrNotExist for a missing key, got %v", err)
	}

	client := &fakeS3{objects: map[string]string{"private/secret.txt": "secret"}}
	src = NewS3SourceWithClient(client, "brandi-assets", "static/")
	for _, name := range []string{"../secret", "/../private/secret.txt", "static/../../private/secret.txt", "", "/"} {
		t.Run(name, func(t *testing.T) {
			if _, err := src.Open(context.Background(), name); !errors.Is(err, ErrNotExist) {
				t.Errorf("Expected ErrNotExist for %q, got %v", name, err)
			}
		})
	}
	if len(client.keys) != 0 {
		t.Errorf("Expected no keys outside the prefix to be requested, got %v", client.keys)
	}

	boom := errors.New("boom")
	src = NewS3SourceWithClient(&fakeS3{err: boom}, "brandi-assets", "")
	if _, err := src.Open(context.Background(), "app.css"); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped client error, got %v", err)
	}
}

func TestHandler(t *testing.T) {
	h := Handler(NewFSSource(testFS))
	etag := util.ETag(testFS["app.css"].Data)

	tests := []struct {
		name       string
		method     string
		path       string
		ifNone     string
		wantStatus int
		wantBody   string
	}{
		{name: "Serve asset", method: http.MethodGet, path: "/app.css", wantStatus: http.StatusOK, wantBody: "body{margin:0}"},
		{name: "Head", method: http.MethodHead, path: "/app.css", wantStatus: http.StatusOK},
		{name: "Not modified", method: http.MethodGet, path: "/app.css", ifNone: etag, wantStatus: http.StatusNotModified},
		{name: "Strong match", method: http.MethodGet, path: "/app.css", ifNone: strings.TrimPrefix(etag, "W/"), wantStatus: http.StatusNotModified},
		{name: "Stale tag", method: http.MethodGet, path: "/app.css", ifNone: `"stale"`, wantStatus: http.StatusOK, wantBody: "body{margin:0}"},
		{name: "Missing", method: http.MethodGet, path: "/nope.css", wantStatus: http.StatusNotFound},
		{name: "Wrong method", method: http.MethodPost, path: "/app.css", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.ifNone != "" {
				req.Header.Set("If-None-Match", tt.ifNone)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("Expected body %q, got %q", tt.wantBody, rec.Body.String())
			}
			if tt.method == http.MethodHead && rec.Body.Len() != 0 {
				t.Errorf("Expected empty HEAD body, got %q", rec.Body.String())
			}
		})
	}
}

func TestHashStatic(t *testing.T) {
	cache.ClearStaticHashes()
	defer cache.ClearStaticHashes()

	if err := HashStatic(testFS, "/static/"); err != nil {
		t.Fatalf("HashStatic returned error: %v", err)
	}

	hash, ok := cache.GetStaticHash("/static/router.js")
	if !ok {
		t.Fatal("Expected router.js to be hashed")
	}
	if want := util.ETag(testFS["router.js"].Data); hash != want {
		t.Errorf("Expected %s, got %s", want, hash)
	}
}

func TestHandlerWeakensS3ETag(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"static/app.css": "body{}"}}
	h := Handler(NewS3SourceWithClient(client, "brandi-assets", "static"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.css", nil))
	if got := rec.Header().Get("ETag"); got != `W/"s3-etag"` {
		t.Errorf("Expected weak ETag, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/app.css", nil)
	req.Header.Set("If-None-Match", `"s3-etag"`)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("Expected 304, got %d", rec.Code)
	}
}
