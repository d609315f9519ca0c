package usecase

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"mucevher-backend/config"
	"mucevher-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInquiryUsecase_Compose(t *testing.T) {
	summary, catalog := newTestSummary(t, sampleCatalog())
	inquiry := NewInquiryUsecase(summary, &config.Config{WhatsAppPhone: "+90 (555) 123 45 67"})
	ctx := context.Background()

	_, err := inquiry.Compose(ctx, "s1", domain.LocaleTR)
	assert.ErrorIs(t, err, domain.ErrCartEmpty)

	earring, _ := catalog.ProductByID("2")
	require.NoError(t, summary.cart.AddItem(ctx, "s1", *earring, 3))
	require.True(t, summary.coupons.ApplyCoupon(ctx, "s1", "HOSGELDIN10", dec("240")).IsValid)

	got, err := inquiry.Compose(ctx, "s1", domain.LocaleTR)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Merhaba! Aşağıdaki ürünleri sipariş etmek istiyorum:",
		"",
		"1. İnci Küpe x3 - ₺240.00",
		"",
		"Ara toplam: ₺240.00",
		"İndirim (HOSGELDIN10): -₺24.00",
		"Kargo: Ücretsiz",
		"Toplam: ₺216.00",
	}, "\n"), got.Message)
	assert.True(t, got.Summary.Total.Equal(dec("216")))

	require.True(t, strings.HasPrefix(got.Link, "https://wa.me/905551234567?text="))
	assert.NotContains(t, got.Link, "+")
	parsed, err := url.Parse(got.Link)
	require.NoError(t, err)
	assert.Equal(t, got.Message, parsed.Query().Get("text"))
}

func TestInquiryUsecase_EnglishAndShipping(t *testing.T) {
	summary, catalog := newTestSummary(t, sampleCatalog())
	inquiry := NewInquiryUsecase(summary, &config.Config{})
	ctx := context.Background()

	bracelet, _ := catalog.ProductByID("5")
	require.NoError(t, summary.cart.AddItem(ctx, "s1", *bracelet, 1))

	got, err := inquiry.Compose(ctx, "s1", domain.LocaleEN)
	require.NoError(t, err)
	assert.Contains(t, got.Message, "1. Steel Bracelet x1 - ₺60.00")
	assert.Contains(t, got.Message, "Shipping: ₺29.90")
	assert.Contains(t, got.Message, "Total: ₺89.90")
	assert.NotContains(t, got.Message, "Discount")
	assert.True(t, strings.HasPrefix(got.Link, "https://wa.me/?text="))
}
