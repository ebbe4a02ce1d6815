package response

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/shared/apperror"
)

// maxPage keeps (page-1)*limit far from overflowing
const maxPage = math.MaxInt32

// Pagination is page-number pagination parsed from ?page=&limit=
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Check rejects pages past the end; page 1 is always valid, even when empty
func (p Pagination) Check(total int64) error {
	if p.Page > 1 && (p.Offset() < 0 || int64(p.Offset()) >= total) {
		return apperror.ErrInvalidPage
	}
	return nil
}

// ParsePagination reads page and limit.
// A non-numeric page is an invalid page; a bad limit falls back to the default.
func ParsePagination(c *gin.Context, defaultLimit, maxLimit int) (Pagination, error) {
	p := Pagination{Page: 1, Limit: defaultLimit}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 || page > maxPage {
			return p, apperror.ErrInvalidPage
		}
		p.Page = page
	}

	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			p.Limit = limit
		}
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	return p, nil
}

// Page is the paginated list envelope
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// Paginated writes a Page with absolute next/previous links
func Paginated(c *gin.Context, p Pagination, total int64, results interface{}) {
	page := Page{Count: total, Results: results}

	if int64(p.Page*p.Limit) < total {
		next := pageURL(c.Request, p.Page+1)
		page.Next = &next
	}
	if p.Page > 1 {
		prev := pageURL(c.Request, p.Page-1)
		page.Previous = &prev
	}

	c.JSON(http.StatusOK, page)
}

func pageURL(r *http.Request, page int) string {
	u := url.URL{
		Scheme: "http",
		Host:   r.Host,
		Path:   r.URL.Path,
	}
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}

	q := r.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
