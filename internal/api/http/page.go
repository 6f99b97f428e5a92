package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/lilurl-web/internal/models"
	"github.com/vadimbarashkov/lilurl-web/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type notice struct {
	Kind string
	Text string
}

type recentView struct {
	models.DisplayRecord
	Created string
}

type pageData struct {
	Input    string
	Validity service.Validity
	Notice   *notice
	Recent   []recentView
	InFlight bool
}

// noticeCreated is the query value the index page turns into the
// success notice after a form submission redirects back to it.
const noticeCreated = "created"

type page struct {
	shortURLBase string
	sessions     *sessionCookies
	now          func() time.Time
}

func newPage(shortURLBase string, sessions *sessionCookies) *page {
	return &page{
		shortURLBase: shortURLBase,
		sessions:     sessions,
		now:          time.Now,
	}
}

func (p *page) handleIndex(w http.ResponseWriter, r *http.Request) {
	var n *notice
	if r.URL.Query().Get("notice") == noticeCreated {
		n = &notice{Kind: "success", Text: "URL shortened successfully!"}
	}

	p.render(w, r, http.StatusOK, "", n)
}

// handleSubmit is the form fallback for browsers without script. On
// success it redirects back to the index so a reload does not submit the
// form again; on failure the page is rendered with the input kept so it
// can be corrected.
func (p *page) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.http.page.handleSubmit"

	if err := r.ParseForm(); err != nil {
		p.render(w, r, http.StatusBadRequest, "", &notice{Kind: "error", Text: "Request body is malformed."})
		return
	}

	input := r.PostFormValue("url")

	if _, err := p.sessions.shorten(w, r, input); err != nil {
		resp := submitErrorResponse(r, op, input, err)
		p.render(w, r, resp.StatusCode, input, &notice{Kind: "error", Text: resp.Message})
		return
	}

	http.Redirect(w, r, "/?notice="+noticeCreated, http.StatusSeeOther)
}

func (p *page) render(w http.ResponseWriter, r *http.Request, status int, input string, n *notice) {
	const op = "api.http.page.render"

	now := p.now()

	items := recentItems(r.Context())
	recent := make([]recentView, 0, len(items))
	for _, rec := range items {
		recent = append(recent, recentView{
			DisplayRecord: rec,
			Created:       models.RelativeTime(rec.CreatedAt, now),
		})
	}

	var inFlight bool
	if sess := sessionFrom(r.Context()); sess != nil {
		inFlight = sess.Form.InFlight()
	}

	data := pageData{
		Input:    input,
		Validity: service.CheckValidity(input),
		Notice:   n,
		Recent:   recent,
		InFlight: inFlight,
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
