package coupon

import (
	"context"
	"sort"
	"strings"
	"time"

	"mucevher-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// staticRepository serves the built-in, read-only coupon rule table.
type staticRepository struct {
	coupons map[string]domain.Coupon
}

// NewStaticRepository indexes coupons by upper-cased code. Later entries with
// the same code replace earlier ones.
func NewStaticRepository(coupons []domain.Coupon) domain.CouponRepository {
	idx := make(map[string]domain.Coupon, len(coupons))
	for _, c := range coupons {
		c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
		idx[c.Code] = c
	}
	return &staticRepository{coupons: idx}
}

// NewDefaultRepository serves DefaultCoupons.
func NewDefaultRepository() domain.CouponRepository {
	return NewStaticRepository(DefaultCoupons())
}

func (r *staticRepository) GetCouponByCode(_ context.Context, code string) (*domain.Coupon, error) {
	c, ok := r.coupons[code]
	if !ok {
		return nil, domain.ErrCouponNotFound
	}
	return &c, nil
}

func (r *staticRepository) ListCoupons(_ context.Context) ([]domain.Coupon, error) {
	out := make([]domain.Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func limit(n int) *int { return &n }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
	return &t
}

// DefaultCoupons is the storefront's rule table. Usage counts are static.
func DefaultCoupons() []domain.Coupon {
	return []domain.Coupon{
		{
			Code:        "HOSGELDIN10",
			Type:        domain.CouponPercentage,
			Value:       decimal.NewFromInt(10),
			MinPurchase: amount(100),
			MaxDiscount: amount(50),
			IsActive:    true,
			Description: domain.LocalizedText{
				domain.LocaleTR: "Hoş geldin indirimi: %10 (en fazla ₺50)",
				domain.LocaleEN: "Welcome discount: 10% (up to ₺50)",
			},
		},
		{
			Code:        "YAZ20",
			Type:        domain.CouponPercentage,
			Value:       decimal.NewFromInt(20),
			MinPurchase: amount(500),
			MaxDiscount: amount(250),
			IsActive:    true,
			Description: domain.LocalizedText{
				domain.LocaleTR: "Yaz kampanyası: ₺500 üzeri %20 indirim",
				domain.LocaleEN: "Summer sale: 20% off orders over ₺500",
			},
		},
		{
			Code:        "ILKSIPARIS50",
			Type:        domain.CouponFixed,
			Value:       decimal.NewFromInt(50),
			MinPurchase: amount(250),
			IsActive:    true,
			Description: domain.LocalizedText{
				domain.LocaleTR: "İlk siparişe özel ₺50 indirim",
				domain.LocaleEN: "₺50 off your first order",
			},
		},
		{
			Code:       "SADAKAT100",
			Type:       domain.CouponFixed,
			Value:      decimal.NewFromInt(100),
			UsageLimit: limit(100),
			UsedCount:  100,
			IsActive:   true,
			Description: domain.LocalizedText{
				domain.LocaleTR: "Sadık müşterilere ₺100 indirim",
				domain.LocaleEN: "₺100 off for loyal customers",
			},
		},
		{
			Code:      "KIS15",
			Type:      domain.CouponPercentage,
			Value:     decimal.NewFromInt(15),
			ExpiresAt: date(2024, time.February, 29),
			IsActive:  true,
			Description: domain.LocalizedText{
				domain.LocaleTR: "Kış kampanyası: %15 indirim",
				domain.LocaleEN: "Winter sale: 15% off",
			},
		},
		{
			Code:     "ESKI25",
			Type:     domain.CouponPercentage,
			Value:    decimal.NewFromInt(25),
			IsActive: false,
			Description: domain.LocalizedText{
				domain.LocaleTR: "Sona ermiş kampanya: %25 indirim",
				domain.LocaleEN: "Retired campaign: 25% off",
			},
		},
	}
}
