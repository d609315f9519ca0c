package coupon

import (
	"context"
	"testing"

	"mucevher-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRepository_GetCouponByCode(t *testing.T) {
	repo := NewDefaultRepository()
	ctx := context.Background()

	c, err := repo.GetCouponByCode(ctx, "HOSGELDIN10")
	require.NoError(t, err)
	assert.Equal(t, domain.CouponPercentage, c.Type)
	assert.Equal(t, "50", c.MaxDiscount.String())

	_, err = repo.GetCouponByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrCouponNotFound)
}

func TestStaticRepository_ReturnsCopies(t *testing.T) {
	repo := NewDefaultRepository()
	ctx := context.Background()

	c, err := repo.GetCouponByCode(ctx, "SADAKAT100")
	require.NoError(t, err)
	c.UsedCount = 0

	again, _ := repo.GetCouponByCode(ctx, "SADAKAT100")
	assert.Equal(t, 100, again.UsedCount)
}

func TestStaticRepository_NormalizesCodes(t *testing.T) {
	repo := NewStaticRepository([]domain.Coupon{{Code: "  bahar5 ", Type: domain.CouponFixed, IsActive: true}})

	c, err := repo.GetCouponByCode(context.Background(), "BAHAR5")
	require.NoError(t, err)
	assert.Equal(t, "BAHAR5", c.Code)
}

func TestStaticRepository_ListCoupons(t *testing.T) {
	coupons, err := NewDefaultRepository().ListCoupons(context.Background())
	require.NoError(t, err)

	codes := make([]string, len(coupons))
	for i, c := range coupons {
		codes[i] = c.Code
	}
	assert.Equal(t, []string{"ESKI25", "HOSGELDIN10", "ILKSIPARIS50", "KIS15", "SADAKAT100", "YAZ20"}, codes)
}
