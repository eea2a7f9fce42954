package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"toy_store_backend/internal/repositories"
	"toy_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	pageQueryParam     = "page"
	pageSizeQueryParam = "page_size"
)

// Pagination reads page/page_size and renders the list envelope.
type Pagination struct {
	DefaultSize int
	MaxSize     int
}

// ListResponse is the envelope of every list endpoint.
type ListResponse struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// PageFromRequest parses the page and page_size query parameters. A missing
// page means 1; a page that is not a positive integer is an error. An invalid
// page_size falls back to the default; an oversized one is capped.
func (p Pagination) PageFromRequest(c *gin.Context) (repositories.Page, bool) {
	page := repositories.Page{Number: 1, Size: p.DefaultSize}

	if raw := c.Query(pageQueryParam); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondInvalidPage(c)
			return page, false
		}
		page.Number = n
	}

	if raw := c.Query(pageSizeQueryParam); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page.Size = n
		}
	}
	if p.MaxSize > 0 && page.Size > p.MaxSize {
		page.Size = p.MaxSize
	}
	return page, true
}

func respondInvalidPage(c *gin.Context) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Invalid page.", ""))
}

// Respond writes the list envelope, or 404 if the page is past the last one.
// Page 1 is always valid, even when there are no results.
func (p Pagination) Respond(c *gin.Context, page repositories.Page, count int, results interface{}) {
	lastPage := 1
	if page.Size > 0 && count > 0 {
		lastPage = (count + page.Size - 1) / page.Size
	}
	if page.Number > lastPage {
		respondInvalidPage(c)
		return
	}

	resp := ListResponse{Count: count, Results: results}
	if page.Number < lastPage {
		next := pageURL(c, page.Number+1)
		resp.Next = &next
	}
	if page.Number > 1 {
		prev := pageURL(c, page.Number-1)
		resp.Previous = &prev
	}
	c.JSON(http.StatusOK, resp)
}

// pageURL rebuilds the absolute request URL pointing at another page.
// Links to page 1 drop the page parameter.
func pageURL(c *gin.Context, number int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}

	query := c.Request.URL.Query()
	if number <= 1 {
		query.Del(pageQueryParam)
	} else {
		query.Set(pageQueryParam, strconv.Itoa(number))
	}

	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: query.Encode()}
	return u.String()
}
