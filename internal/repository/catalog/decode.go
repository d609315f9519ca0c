package catalog

import (
	"bytes"
	"fmt"

	"mucevher-backend/internal/domain"

	"github.com/goccy/go-json"
)

type catalogDocument struct {
	Products []domain.Product `json:"products"`
}

// Decode parses a catalog document. Both {"products": [...]} and a bare
// product array are accepted.
func Decode(data []byte) ([]domain.Product, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidCatalog)
	}

	if trimmed[0] == '[' {
		var products []domain.Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
		}
		return products, nil
	}

	var doc catalogDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	if doc.Products == nil {
		return nil, fmt.Errorf("%w: missing products", domain.ErrInvalidCatalog)
	}
	return doc.Products, nil
}
