package catalog

import (
	"context"

	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/catalog"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/domain/shared"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service exposes read-side catalog browsing. Single-product lookups go
// through the snapshot cache; list queries always hit the repository.
type Service struct {
	products catalog.ProductRepository
	cache    catalog.ProductCache
}

// NewService creates a new catalog Service. Cache may be nil, in which case
// every lookup goes to the repository.
func NewService(products catalog.ProductRepository, cache catalog.ProductCache) *Service {
	return &Service{products: products, cache: cache}
}

// GetByID returns one product, served from cache when the snapshot is fresh
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			// Cache failures must not break reads.
			logger.L(ctx).Warn("Product cache read failed", zap.Error(err))
		} else if cached != nil {
			resp := ToProductResponse(cached)
			return &resp, nil
		}
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			logger.L(ctx).Warn("Product cache write failed", zap.Error(err))
		}
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns a page of products matching the request
func (s *Service) List(ctx context.Context, req ListProductsRequest) (*shared.Paginated[ProductResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	if req.Search != "" {
		filter.Filters["search"] = req.Search
	}

	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}

	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}
