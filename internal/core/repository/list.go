package repository

import "github.com/martijn/lexdesk/internal/api/util"

// ListOptions carries the parsed list grammar plus free-text search.
type ListOptions struct {
	util.ListFilter

	// Search is matched case-insensitively against the resource's text columns.
	Search string
}
