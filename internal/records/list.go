package records

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mateohidalgo/landrecords-backend/pkg/pagination"
)

// ListParams captures the owner-scoped listing filters.
type ListParams struct {
	OwnerID    uuid.UUID
	Search     string
	CategoryID uuid.UUID
	Page       int
}

func (p ListParams) normalized() ListParams {
	p.Search = strings.TrimSpace(p.Search)
	p.Page = pagination.NormalizePage(p.Page)
	return p
}

// ListResult is one page of records plus pager metadata.
type ListResult struct {
	Items []RecordDTO     `json:"items"`
	Page  pagination.Page `json:"pagination"`
}
