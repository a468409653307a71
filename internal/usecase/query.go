package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Pagination bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Sort orders.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListQuery carries paged-list parameters. Zero values are normalized
// against the entity's SortSpec before hitting cache or repository.
type ListQuery struct {
	Page       int
	PageSize   int
	Search     string
	SortColumn string
	SortOrder  string
	OwnerID    string
}

// Page is one page of DTOs plus the total count of the filtered set, enough
// for the caller to compute total pages.
type Page[D any] struct {
	Items      []D   `json:"items"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}

// SortSpec is the per-entity whitelist of sortable columns. Unknown columns
// fall back to the default instead of erroring.
type SortSpec struct {
	Columns      map[string]bool
	Default      string
	DefaultOrder string
}

// Normalize clamps pagination and resolves sort column and order.
func (s SortSpec) Normalize(q ListQuery) ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}

	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}

	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	if !s.Columns[q.SortColumn] {
		q.SortColumn = s.Default
	}

	switch strings.ToLower(q.SortOrder) {
	case SortAsc:
		q.SortOrder = SortAsc
	case SortDesc:
		q.SortOrder = SortDesc
	default:
		q.SortOrder = s.DefaultOrder
	}

	q.Search = strings.TrimSpace(q.Search)

	return q
}

// GetPipeline is the generic cache-aside point query. Invalidation on
// write is the primary consistency mechanism; the TTL is the backstop.
type GetPipeline[D any] struct {
	Deps

	Entity string
	Fetch  func(ctx context.Context, id string) (*D, error)
}

// Handle returns the DTO for id, populating the cache on miss.
func (p *GetPipeline[D]) Handle(ctx context.Context, id string) (*D, error) {
	key := p.Entity + ":" + id

	if raw, err := p.Cache.Get(ctx, key); err == nil {
		var dto D
		if err := json.Unmarshal(raw, &dto); err == nil {
			p.observeCacheHit(p.Entity)
			return &dto, nil
		}
	}

	p.observeCacheMiss(p.Entity)

	dto, err := p.Fetch(ctx, id)
	if err != nil {
		return nil, classify(err)
	}

	if dto == nil {
		return nil, NewNotFound("%s %s does not exist", p.Entity, id)
	}

	p.prime(ctx, key, dto)

	return dto, nil
}

func (p *GetPipeline[D]) prime(ctx context.Context, key string, dto any) {
	raw, err := json.Marshal(dto)
	if err != nil {
		return
	}

	if err := p.Cache.Set(ctx, key, raw, p.CacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// ListPipeline is the generic cache-aside paged-list query, keyed by the
// full parameter tuple and invalidated wholesale by prefix on any write of
// the entity type.
type ListPipeline[D any] struct {
	Deps

	Entity string
	Sort   SortSpec
	Fetch  func(ctx context.Context, q ListQuery) (*Page[D], error)
}

// Handle returns one page of DTOs, populating the cache on miss.
func (p *ListPipeline[D]) Handle(ctx context.Context, q ListQuery) (*Page[D], error) {
	q = p.Sort.Normalize(q)

	key := fmt.Sprintf("%s:list:%d:%d:%s:%s:%s:%s",
		p.Entity, q.Page, q.PageSize, q.Search, q.SortColumn, q.SortOrder, q.OwnerID)

	if raw, err := p.Cache.Get(ctx, key); err == nil {
		var page Page[D]
		if err := json.Unmarshal(raw, &page); err == nil {
			p.observeCacheHit(p.Entity)
			return &page, nil
		}
	}

	p.observeCacheMiss(p.Entity)

	page, err := p.Fetch(ctx, q)
	if err != nil {
		return nil, classify(err)
	}

	if raw, err := json.Marshal(page); err == nil {
		if err := p.Cache.Set(ctx, key, raw, p.CacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}

	return page, nil
}
