package domain

import "context"

type SiteRepository interface {
	Get(ctx context.Context, name string) (*Site, error)
	Create(ctx context.Context, site *Site) error
}
