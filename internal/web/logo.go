package web

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/internal/views"
)

// placeholderLogo is served when the branding image is missing.
var placeholderLogo = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="120" height="60" viewBox="0 0 120 60">` +
	`<rect width="120" height="60" rx="8" fill="#e8f0fe"/>` +
	`<text x="60" y="35" font-family="sans-serif" font-size="13" text-anchor="middle" fill="#1E3A8A">` +
	views.LogoCaption + `</text></svg>`)

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	if s.logo != "" {
		info, err := os.Stat(s.logo)
		switch {
		case err == nil && !info.IsDir():
			http.ServeFile(w, r, s.logo)
			return
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			s.logger.Warn("stat logo", zap.String("path", s.logo), zap.Error(err))
		}
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(placeholderLogo)
}
