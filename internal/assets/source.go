// Package assets serves the static files (stylesheet, hash-mode router
// script) from the embedded filesystem or from an S3 bucket.
package assets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/brandi/internal/cache"
	"github.com/debemdeboas/brandi/internal/util"
)

var assetsLogger = zerolog.Nop()

func SetLogger(l zerolog.Logger) {
	assetsLogger = l
}

var ErrNotExist = errors.New("asset does not exist")

// Object is an opened asset. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	ETag        string
	ModTime     time.Time
	Size        int64
}

type Source interface {
	// Open returns the asset stored under name, a slash separated path
	// relative to the static root. Missing assets return ErrNotExist.
	Open(ctx context.Context, name string) (*Object, error)
}

// FSSource reads assets from a filesystem, typically the embedded static
// directory.
type FSSource struct {
	fsys fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Open(_ context.Context, name string) (*Object, error) {
	name = strings.TrimPrefix(name, "/")
	if !fs.ValidPath(name) || name == "." {
		return nil, ErrNotExist
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, err
	}

	obj := &Object{
		Body:        io.NopCloser(bytes.NewReader(data)),
		ContentType: contentType(name),
		ETag:        util.ETag(data),
		Size:        int64(len(data)),
	}
	if info, err := fs.Stat(s.fsys, name); err == nil {
		obj.ModTime = info.ModTime()
	}
	return obj, nil
}

// HashStatic records an ETag for every file in fsys under urlPrefix+path so
// the cache middleware can tag static responses.
func HashStatic(fsys fs.FS, urlPrefix string) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		cache.SetStaticHash(urlPrefix+p, util.ETag(data))
		assetsLogger.Debug().Str("asset", p).Msg("Hashed static asset")
		return nil
	})
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
