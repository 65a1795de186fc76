package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"Mansoor88-6/time-tracking-api/internal/apperr"
	"Mansoor88-6/time-tracking-api/internal/models"
)

// decodeJSON reads the request body into dst. An empty body is allowed
// when optional is set.
func decodeJSON(r *http.Request, dst interface{}, optional bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}
	if optional && errors.Is(err, io.EOF) {
		return nil
	}
	return apperr.NewValidationError("invalid request body", err)
}

// queryDate parses a YYYY-MM-DD or RFC3339 query parameter. Calendar
// dates are read in loc; with endOfDay they resolve to the day's last
// second so they can bound an inclusive range.
func queryDate(q url.Values, name string, loc *time.Location, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(models.DateLayout, raw, loc)
	if err != nil {
		return nil, apperr.NewInvalidFieldError(name, raw, "must be YYYY-MM-DD or RFC3339")
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	return &t, nil
}

func queryInt(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.NewInvalidFieldError(name, raw, "must be an integer")
	}
	return n, nil
}

func queryString(q url.Values, name string) *string {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil
	}
	return &raw
}
