package assets

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/debemdeboas/brandi/internal/config"
	"github.com/debemdeboas/brandi/internal/util"
)

// Handler serves assets from src. The request path must already have the
// static URL prefix stripped.
func Handler(src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, config.HTTPErrMethodNotAllowed, http.StatusMethodNotAllowed)
			return
		}

		obj, err := src.Open(r.Context(), r.URL.Path)
		if errors.Is(err, ErrNotExist) {
			http.Error(w, config.HTTPErrAssetNotFound, http.StatusNotFound)
			return
		}
		if err != nil {
			assetsLogger.Error().Err(err).Str("asset", r.URL.Path).Msg("Error opening asset")
			http.Error(w, config.HTTPErrInternal, http.StatusInternalServerError)
			return
		}
		defer obj.Body.Close()

		if etag := util.WeakETag(obj.ETag); etag != "" {
			w.Header().Set(config.HETag, etag)
			if util.ETagMatches(r.Header.Get(config.HIfNoneMatch), etag) {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
		if !obj.ModTime.IsZero() {
			w.Header().Set("Last-Modified", obj.ModTime.UTC().Format(http.TimeFormat))
		}
		w.Header().Set(config.HCType, obj.ContentType)
		if obj.Size > 0 {
			w.Header().Set(config.HContentLength, strconv.FormatInt(obj.Size, 10))
		}
		w.WriteHeader(http.StatusOK)

		if r.Method == http.MethodHead {
			return
		}
		if _, err := io.Copy(w, obj.Body); err != nil {
			assetsLogger.Warn().Err(err).Str("asset", r.URL.Path).Msg("Error writing asset")
		}
	})
}
