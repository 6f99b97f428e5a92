package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/skip2/go-qrcode"
	"github.com/vadimbarashkov/lilurl-web/internal/models"
	"github.com/vadimbarashkov/lilurl-web/pkg/response"
)

const (
	defaultQRSize = 200
	minQRSize     = 64
	maxQRSize     = 1024
)

// handleQRCode handles GET requests for a PNG QR code encoding the short URL
// of the given short code. The optional "size" query parameter sets the
// image side in pixels.
func handleQRCode(shortURLBase string) http.HandlerFunc {
	const op = "api.http.handleQRCode"

	return func(w http.ResponseWriter, r *http.Request) {
		size := defaultQRSize
		if s := r.URL.Query().Get("size"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < minQRSize || n > maxQRSize {
				resp := response.InvalidInputResponse("size", s, "size must be an integer between 64 and 1024")

				render.Status(r, resp.StatusCode)
				render.JSON(w, r, resp)
				return
			}
			size = n
		}

		shortURL := models.ShortURL(shortURLBase, chi.URLParam(r, "shortCode"))

		png, err := qrcode.Encode(shortURL, qrcode.Medium, size)
		if err != nil {
			httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.ServerErrorResponse)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", "inline; filename=qrcode.png")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		w.Write(png)
	}
}
