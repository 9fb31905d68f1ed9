// Package render draws the public HTML pages.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/pauljones0/promo-campaigns/internal/models"
	"github.com/pauljones0/promo-campaigns/internal/util"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pagePromo       = "promo.html"
	pageNotFound    = "not_found.html"
	pagePlaceholder = "placeholder.html"
	pageError       = "error.html"
)

type Renderer struct {
	pages      map[string]*template.Template
	bookingURL string
}

// promoPage is the data behind promo.html.
type promoPage struct {
	models.Campaign
	// VideoEmbedURL is the YouTube iframe URL; empty when VideoURL is not a YouTube link.
	VideoEmbedURL string
	DirectVideo   bool
	BookingURL    string
}

// New parses the embedded templates. Each page is parsed together with the
// shared layout. bookingURL is an optional Calendly scheduling link shown on
// every promo page.
func New(bookingURL string) (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template), bookingURL: bookingURL}
	for _, page := range []string{pagePromo, pageNotFound, pagePlaceholder, pageError} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Promo renders a campaign's promo page.
func (r *Renderer) Promo(w http.ResponseWriter, campaign models.Campaign) {
	page := promoPage{Campaign: campaign, BookingURL: r.bookingURL}
	if util.IsDirectVideo(campaign.VideoURL) {
		page.DirectVideo = true
	} else {
		page.VideoEmbedURL = util.YouTubeEmbedURL(campaign.VideoURL)
	}
	r.render(w, http.StatusOK, pagePromo, page)
}

// NotFound renders the standard not-found page with status 404.
func (r *Renderer) NotFound(w http.ResponseWriter) {
	r.render(w, http.StatusNotFound, pageNotFound, nil)
}

// Placeholder renders the root-route landing page.
func (r *Renderer) Placeholder(w http.ResponseWriter) {
	r.render(w, http.StatusOK, pagePlaceholder, nil)
}

// Error renders a generic error page with status.
func (r *Renderer) Error(w http.ResponseWriter, status int) {
	r.render(w, status, pageError, nil)
}

// render executes the page into a buffer before writing the status line.
func (r *Renderer) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := r.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("Failed to render page", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("Failed to write page", "page", page, "error", err)
	}
}
