package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ID is an identifier assigned by the backend. It is accepted as either
// a JSON string or a JSON number and always kept as a string.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	const op = "models.ID.UnmarshalJSON"

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%s: failed to decode string id: %w", op, err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%s: failed to decode numeric id: %w", op, err)
	}
	*id = ID(n.String())

	return nil
}

// ShortenResult is the URL detail object returned by the backend.
type ShortenResult struct {
	// ID is the backend identifier of the shortened URL, if reported.
	ID ID `json:"id,omitempty"`
	// Short is the backend-generated short code.
	Short string `json:"short"`
	// LongURL is the original, full-length URL.
	LongURL string `json:"long_url"`
	// CreatedAt is the creation timestamp exactly as the backend sent it.
	CreatedAt string `json:"created_at,omitempty"`
	// Views is the click count, if reported.
	Views int64 `json:"views,omitempty"`
}

// DisplayRecord is the client-side shape used to render a created short URL.
type DisplayRecord struct {
	ID        ID     `json:"id,omitempty"`
	Short     string `json:"short"`
	ShortURL  string `json:"shortUrl"`
	LongURL   string `json:"longUrl"`
	CreatedAt string `json:"created_at,omitempty"`
	Views     int64  `json:"views"`
}

// NewDisplayRecord builds a DisplayRecord for res, resolving the short code
// against base.
func NewDisplayRecord(base string, res *ShortenResult) *DisplayRecord {
	return &DisplayRecord{
		ID:        res.ID,
		Short:     res.Short,
		ShortURL:  ShortURL(base, res.Short),
		LongURL:   res.LongURL,
		CreatedAt: res.CreatedAt,
		Views:     res.Views,
	}
}

// Key identifies the record within a list: the backend id when known,
// otherwise the short code.
func (r DisplayRecord) Key() string {
	if r.ID != "" {
		return string(r.ID)
	}
	return r.Short
}

// ShortURL joins base and the short code with a single slash.
func ShortURL(base, short string) string {
	return strings.TrimRight(base, "/") + "/" + short
}

// RelativeTime renders createdAt relative to now the way the recent list
// shows it. Values that are not RFC 3339 timestamps are returned as is.
func RelativeTime(createdAt string, now time.Time) string {
	if createdAt == "" {
		return ""
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return createdAt
	}

	mins := int(now.Sub(t) / time.Minute)
	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%d minute%s ago", mins, plural(mins))
	}

	hours := mins / 60
	if hours < 24 {
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	}

	return t.Format("Jan 2, 03:04 PM")
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
