package quotes

import (
	"strings"

	"gorm.io/gorm"

	"github.com/jmcalloway/insuquote-backend/pkg/enums"
)

// ListParams captures the list filters accepted by the quotes endpoint.
type ListParams struct {
	Search string
	Status *enums.QuoteStatus
	Cursor string
	Limit  int
}

// applyFilters narrows a quote query by free-text search and status facet.
// Search matches client name, project name, or address, case-insensitively.
func applyFilters(query *gorm.DB, params ListParams) *gorm.DB {
	if term := strings.TrimSpace(params.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"lower(client_name) LIKE ? OR lower(project_name) LIKE ? OR lower(coalesce(address, '')) LIKE ?",
			like, like, like,
		)
	}
	if params.Status != nil && params.Status.IsValid() {
		query = query.Where("status = ?", *params.Status)
	}
	return query
}
