package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"mini-admin/internal/auth"
	"mini-admin/internal/cache"

	"github.com/rs/zerolog"
)

// CacheHeader marks responses served from the view cache.
const CacheHeader = "X-View-Cache"

// CacheViews serves GET requests for rendered pages from views and stores
// successful HTML responses on a miss. Entries are keyed by role as well as
// URI because admins see controls other users do not.
func CacheViews(views cache.ViewCache, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKey(r)
			page, err := views.Get(r.Context(), key)
			if err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("view cache read failed")
			}
			if page != nil {
				w.Header().Set("Content-Type", page.ContentType)
				w.Header().Set(CacheHeader, "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(page.Body)
				return
			}

			epoch, epochErr := views.Epoch(r.Context())
			if epochErr != nil {
				logger.Warn().Err(epochErr).Str("key", key).Msg("view cache epoch read failed")
			}

			rec := &recordingWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			contentType := rec.Header().Get("Content-Type")
			if epochErr != nil || rec.statusCode != http.StatusOK || !strings.HasPrefix(contentType, "text/html") {
				return
			}
			err = views.Set(r.Context(), r.URL.Path, key, epoch, cache.Page{
				ContentType: contentType,
				Body:        rec.body.Bytes(),
			})
			switch {
			case errors.Is(err, cache.ErrStale):
				logger.Debug().Str("key", key).Msg("view revalidated during render, not cached")
			case err != nil:
				logger.Warn().Err(err).Str("key", key).Msg("view cache write failed")
			}
		})
	}
}

func cacheKey(r *http.Request) string {
	role := "anonymous"
	if claims, ok := auth.FromContext(r.Context()); ok {
		role = claims.Role
	}
	return role + ":" + r.URL.RequestURI()
}

// recordingWriter passes the response through while keeping a copy of the
// body.
type recordingWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *recordingWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}
