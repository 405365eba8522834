package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martijn/lexdesk/internal/api/dto"
	"github.com/martijn/lexdesk/internal/api/util"
	"github.com/martijn/lexdesk/internal/core/repository"
	"github.com/martijn/lexdesk/pkg/civildate"
)

const (
	defaultPerPage = 25
	maxPerPage     = 500
)

// listFields are the allow-lists for query= and order= of one resource.
type listFields struct {
	query []string
	order []string
}

// parseListOptions reads page, per_page, query, order and q. It answers 400
// and returns false on malformed input.
func parseListOptions(c *gin.Context, fields listFields) (repository.ListOptions, bool) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	opts := repository.ListOptions{
		ListFilter: util.ListFilter{
			Page:    page,
			PerPage: perPage,
		},
		Search: strings.TrimSpace(c.Query("q")),
	}

	// Parse query filters
	if queryStr := c.Query("query"); queryStr != "" {
		filters, err := util.ParseQueryString(queryStr)
		if err == nil {
			// Validate field names
			err = util.ValidateFilterFields(filters, fields.query)
		}
		if err != nil {
			writeFilterError(c, err)
			return opts, false
		}

		opts.Filters = filters
	}

	// Parse order
	if orderStr := c.Query("order"); orderStr != "" {
		orders, err := util.ParseOrderString(orderStr)
		if err == nil {
			err = util.ValidateOrderFields(orders, fields.order)
		}
		if err != nil {
			writeFilterError(c, err)
			return opts, false
		}

		opts.Order = orders
	}

	return opts, true
}

// writeFilterError answers 400 with the offending parameter in fields.
func writeFilterError(c *gin.Context, err error) {
	var filterErr *util.FilterError
	if !errors.As(err, &filterErr) {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Bad Request",
		Message: filterErr.Error(),
		Code:    http.StatusBadRequest,
		Fields:  map[string]string{filterErr.Param: filterErr.Error()},
	})
}

func pagination(count int, opts repository.ListOptions) dto.PaginationInfo {
	// Calculate pagination info
	totalPages := 0
	if opts.PerPage > 0 {
		totalPages = (count + opts.PerPage - 1) / opts.PerPage
	}
	return dto.PaginationInfo{
		Total:      count,
		Page:       opts.Page,
		PerPage:    opts.PerPage,
		TotalPages: totalPages,
	}
}

func toList[T any, R any](items []T, count int, opts repository.ListOptions, convert func(T) R) dto.ListResponse[R] {
	response := dto.ListResponse[R]{
		Items:      make([]R, len(items)),
		Pagination: pagination(count, opts),
	}
	for i, item := range items {
		response.Items[i] = convert(item)
	}
	return response
}

// queryDate reads an optional date query parameter: YYYY-MM-DD or an
// RFC 3339 timestamp, decoded in the configured calendar.
func queryDate(c *gin.Context, name string) (*civildate.Date, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	d, err := civildate.ParseInput(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: "Validation failed",
			Code:    http.StatusBadRequest,
			Fields:  map[string]string{name: "must be a date (YYYY-MM-DD)"},
		})
		return nil, false
	}
	return &d, true
}
