// Package request holds small helpers for pulling typed values out of
// route parameters and query strings.
package request

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/threadline/pos-service/pkg/timeutil"
)

// ID parses a required int64 route parameter
func ID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// ShopID parses the shop_id query parameter
func ShopID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("shop_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid shop_id")
	}
	return id, nil
}

// DateRange parses from/to query parameters as YYYY-MM-DD dates.
// The returned range spans whole days.
func DateRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	from, err := timeutil.ParseDate("2006-01-02", q.Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date")
	}
	to, err := timeutil.ParseDate("2006-01-02", q.Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date")
	}
	return timeutil.StartOfDay(from), timeutil.EndOfDay(to), nil
}
