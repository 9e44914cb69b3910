// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"context"
	"fmt"
	"numdash-server/commons"
	"numdash-server/docstore"
	"numdash-server/gateway"
	"numdash-server/outbound"

	"github.com/labstack/echo/v4"
)

// UpstreamClient executes sends and purchases on the remote endpoints.
type UpstreamClient interface {
	outbound.Sender
	Purchase(ctx context.Context, token string, req gateway.PurchaseRequest) (*gateway.PurchaseResult, error)
}

var (
	// Documents holds price and catalog documents.
	Documents docstore.Store = docstore.NewMemoryStore()
	Upstream  UpstreamClient
)

// Configure installs the collaborators used by the request handlers.
func Configure(store docstore.Store, upstream UpstreamClient) {
	Documents = store
	Upstream = upstream
}

func outboundService() *outbound.Service {
	var sender outbound.Sender
	if Upstream != nil {
		sender = Upstream
	}
	return outbound.NewService(commons.Numbering, Documents, sender)
}

// pagination reads page and page_size, defaulting to 1 and 10 and capping
// page_size at 100.
func pagination(c echo.Context) (page, pageSize int) {
	page, pageSize = 1, 10
	if p := c.QueryParam("page"); p != "" {
		if _, err := fmt.Sscanf(p, "%d", &page); err != nil || page < 1 {
			page = 1
		}
	}
	if ps := c.QueryParam("page_size"); ps != "" {
		if _, err := fmt.Sscanf(ps, "%d", &pageSize); err != nil || pageSize < 1 {
			pageSize = 10
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func newPaginationDetails(page, pageSize int, total int64) PaginationDetails {
	return PaginationDetails{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}
