package catalog

import (
	"context"
	"fmt"

	"mucevher-backend/internal/domain"
)

// ObjectGetter fetches a whole object from blob storage. pkg/storage.R2Storage
// satisfies it.
type ObjectGetter interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// objectProvider loads the catalog document from an S3 compatible bucket.
type objectProvider struct {
	store ObjectGetter
	key   string
}

func NewObjectProvider(store ObjectGetter, key string) domain.CatalogProvider {
	return &objectProvider{store: store, key: key}
}

func (p *objectProvider) Products(ctx context.Context) ([]domain.Product, error) {
	data, err := p.store.GetObject(ctx, p.key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog object: %w", err)
	}
	return Decode(data)
}
