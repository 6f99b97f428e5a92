package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/vadimbarashkov/lilurl-web/internal/client"
	"github.com/vadimbarashkov/lilurl-web/internal/models"
	"github.com/vadimbarashkov/lilurl-web/internal/service"
	"github.com/vadimbarashkov/lilurl-web/pkg/response"
)

// fallbackFailureMsg is shown when a failure carries no message of its own.
const fallbackFailureMsg = "Failed to shorten URL"

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

type shortenRequest struct {
	URL string `json:"url"`
}

type validityResponse struct {
	Validity service.Validity `json:"validity"`
}

// submitErrorResponse maps a failed submission onto the response shown to
// the user. Unexpected errors are logged under op.
func submitErrorResponse(r *http.Request, op, input string, err error) response.Response {
	var apiErr *client.APIError

	switch {
	case errors.Is(err, service.ErrEmptyInput), errors.Is(err, service.ErrInvalidURL):
		return response.InvalidInputResponse("url", input, err.Error())
	case errors.Is(err, service.ErrSubmissionInFlight):
		return response.ConflictResponse
	case errors.As(err, &apiErr):
		httplog.LogEntrySetFields(r.Context(), map[string]any{
			"op":             op,
			"err":            err,
			"backend_status": apiErr.StatusCode,
		})

		msg := apiErr.Message
		if msg == "" {
			msg = fallbackFailureMsg
		}
		return response.BackendErrorResponse(msg, apiErr.Fields)
	default:
		httplog.LogEntrySetFields(r.Context(), map[string]any{"op": op, "err": err})

		return response.ServerErrorResponse
	}
}

// handleShorten handles POST requests that shorten a URL for the visitor's session.
//
// On success the created record is returned and prepended to the session's recent list.
func handleShorten(sessions *sessionCookies) http.HandlerFunc {
	const op = "api.http.handleShorten"
	const successMsg = "URL shortened successfully!"

	return func(w http.ResponseWriter, r *http.Request) {
		var req shortenRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.EmptyRequestBodyResponse)
				return
			}

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.BadRequestResponse)
			return
		}

		rec, err := sessions.shorten(w, r, req.URL)
		if err != nil {
			resp := submitErrorResponse(r, op, req.URL, err)

			render.Status(r, resp.StatusCode)
			render.JSON(w, r, resp)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.SuccessResponse(http.StatusCreated, successMsg, rec))
	}
}

// handleValidate reports the live validity of the "url" query parameter
// without contacting the backend.
func handleValidate(w http.ResponseWriter, r *http.Request) {
	const successMsg = "The URL was checked."

	resp := validityResponse{
		Validity: service.CheckValidity(r.URL.Query().Get("url")),
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.SuccessResponse(http.StatusOK, successMsg, resp))
}

// handleRecent returns the visitor's recently created URLs, newest first.
// Visitors without a session get an empty list.
func handleRecent(w http.ResponseWriter, r *http.Request) {
	const successMsg = "Recent URLs retrieved successfully."

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.SuccessResponse(http.StatusOK, successMsg, recentItems(r.Context())))
}

type lookupFunc func(r *http.Request) (*models.ShortenResult, error)

func handleLookup(op, shortURLBase string, lookup lookupFunc) http.HandlerFunc {
	const successMsg = "The URL details retrieved successfully."

	return func(w http.ResponseWriter, r *http.Request) {
		res, err := lookup(r)
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.NotFoundResponse(apiErr.Message))
				return
			}

			resp := submitErrorResponse(r, op, "", err)

			render.Status(r, resp.StatusCode)
			render.JSON(w, r, resp)
			return
		}

		render.Status(r, http.StatusOK)
		render.JSON(w, r, response.SuccessResponse(http.StatusOK, successMsg, models.NewDisplayRecord(shortURLBase, res)))
	}
}

// handleLookupByShortCode handles GET requests for the details (views, creation time)
// of a short code, as shown in the stats panel.
func handleLookupByShortCode(lookup URLLookup, shortURLBase string) http.HandlerFunc {
	return handleLookup("api.http.handleLookupByShortCode", shortURLBase, func(r *http.Request) (*models.ShortenResult, error) {
		return lookup.GetURLByShortCode(r.Context(), chi.URLParam(r, "shortCode"))
	})
}

// handleLookupByID handles GET requests for the details of a backend id.
func handleLookupByID(lookup URLLookup, shortURLBase string) http.HandlerFunc {
	return handleLookup("api.http.handleLookupByID", shortURLBase, func(r *http.Request) (*models.ShortenResult, error) {
		return lookup.GetURLByID(r.Context(), chi.URLParam(r, "id"))
	})
}
