package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"mucevher-backend/config"
	"mucevher-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type inquiryLabels struct {
	greeting string
	subtotal string
	discount string
	shipping string
	free     string
	total    string
}

var inquiryText = map[domain.Locale]inquiryLabels{
	domain.LocaleTR: {
		greeting: "Merhaba! Aşağıdaki ürünleri sipariş etmek istiyorum:",
		subtotal: "Ara toplam",
		discount: "İndirim",
		shipping: "Kargo",
		free:     "Ücretsiz",
		total:    "Toplam",
	},
	domain.LocaleEN: {
		greeting: "Hello! I would like to order the following items:",
		subtotal: "Subtotal",
		discount: "Discount",
		shipping: "Shipping",
		free:     "Free",
		total:    "Total",
	},
}

// InquiryUsecase turns a checkout summary into a WhatsApp order message. It
// only formats figures the summary already carries.
type InquiryUsecase struct {
	summary *SummaryUsecase
	cfg     *config.Config
}

func NewInquiryUsecase(summary *SummaryUsecase, cfg *config.Config) *InquiryUsecase {
	return &InquiryUsecase{
		summary: summary,
		cfg:     cfg,
	}
}

func (u *InquiryUsecase) Compose(ctx context.Context, sessionID string, locale domain.Locale) (*domain.OrderInquiry, error) {
	summary := u.summary.CheckoutSummary(ctx, sessionID)
	if len(summary.Items) == 0 {
		return nil, domain.ErrCartEmpty
	}
	if _, ok := inquiryText[locale]; !ok {
		locale = domain.DefaultLocale
	}

	message := FormatInquiry(summary, locale)
	return &domain.OrderInquiry{
		Locale:  locale,
		Message: message,
		Link:    WhatsAppLink(u.cfg.WhatsAppPhone, message),
		Summary: summary,
	}, nil
}

func money(d decimal.Decimal) string {
	return "₺" + d.StringFixed(2)
}

// FormatInquiry renders the summary as plain text in the given locale.
func FormatInquiry(s domain.CartSummary, locale domain.Locale) string {
	labels, ok := inquiryText[locale]
	if !ok {
		labels = inquiryText[domain.DefaultLocale]
	}

	var b strings.Builder
	b.WriteString(labels.greeting)
	b.WriteString("\n\n")
	for i, item := range s.Items {
		fmt.Fprintf(&b, "%d. %s x%d - %s\n", i+1, item.Product.Name.Get(locale), item.Quantity, money(item.LineTotal))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s\n", labels.subtotal, money(s.Subtotal))
	if s.AppliedCoupon != nil && s.Discount.IsPositive() {
		fmt.Fprintf(&b, "%s (%s): -%s\n", labels.discount, s.AppliedCoupon.Code, money(s.Discount))
	}
	if s.Shipping.IsZero() {
		fmt.Fprintf(&b, "%s: %s\n", labels.shipping, labels.free)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", labels.shipping, money(s.Shipping))
	}
	fmt.Fprintf(&b, "%s: %s", labels.total, money(s.Total))
	return b.String()
}

// WhatsAppLink builds a wa.me click-to-chat link. Non-digits in phone are
// dropped; an empty phone lets the user pick the recipient.
func WhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text
}
