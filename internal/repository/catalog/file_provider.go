package catalog

import (
	"context"
	"fmt"
	"os"

	"mucevher-backend/internal/domain"
)

// fileProvider reads the catalog document from local disk on every call.
type fileProvider struct {
	path string
}

func NewFileProvider(path string) domain.CatalogProvider {
	return &fileProvider{path: path}
}

func (p *fileProvider) Products(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Decode(data)
}
