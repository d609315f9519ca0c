package facebook

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mucevher-backend/internal/domain"
	"mucevher-backend/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

const defaultGraphURL = "https://graph.facebook.com"

// HashSHA256 returns a hex-encoded SHA256 hash of the normalized input string.
func HashSHA256(input string) string {
	if input == "" {
		return ""
	}
	// Normalize: trim whitespace and lowercase
	normalized := strings.ToLower(strings.TrimSpace(input))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// CAPIClient forwards storefront analytics to the Facebook Conversions API.
type CAPIClient struct {
	pixelID     string
	accessToken string
	apiVersion  string
	baseURL     string
	retryDelay  time.Duration
	httpClient  *http.Client
}

// NewCAPIClient returns nil when the pixel is not configured.
func NewCAPIClient(pixelID, accessToken, apiVersion string) *CAPIClient {
	if pixelID == "" || accessToken == "" {
		logger.Info().Msg("Facebook Pixel ID or Access Token not configured. CAPI disabled.")
		return nil
	}
	return &CAPIClient{
		pixelID:     pixelID,
		accessToken: accessToken,
		apiVersion:  apiVersion,
		baseURL:     defaultGraphURL,
		retryDelay:  time.Second,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// UserData represents the visitor information for event matching. The
// storefront has no accounts, so only the hashed session is sent.
type UserData struct {
	ExternalID string `json:"external_id,omitempty"`
	ClientIP   string `json:"client_ip_address,omitempty"`
	UserAgent  string `json:"client_user_agent,omitempty"`
}

type CustomData struct {
	Currency     string        `json:"currency,omitempty"`
	Value        float64       `json:"value,omitempty"`
	ContentIDs   []string      `json:"content_ids,omitempty"`
	Contents     []ContentItem `json:"contents,omitempty"`
	SearchString string        `json:"search_string,omitempty"`
	CouponCode   string        `json:"coupon_code,omitempty"`
}

type ContentItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"item_price,omitempty"`
}

// Event represents a single CAPI event
type Event struct {
	EventName    string     `json:"event_name"`
	EventTime    int64      `json:"event_time"`
	ActionSource string     `json:"action_source"`
	UserData     UserData   `json:"user_data"`
	CustomData   CustomData `json:"custom_data,omitempty"`
	EventID      string     `json:"event_id,omitempty"` // For deduplication with browser events
}

// EventPayload is the request body for CAPI. The access token travels in the
// body so it never appears in request URLs or the errors that quote them.
type EventPayload struct {
	Data        []Event `json:"data"`
	AccessToken string  `json:"access_token,omitempty"`
}

func (c *CAPIClient) Name() string { return "facebook_capi" }

// Send maps a storefront event to its standard CAPI event. Events without a
// CAPI counterpart are skipped.
func (c *CAPIClient) Send(ctx context.Context, e domain.AnalyticsEvent) error {
	event, ok := toCAPIEvent(e)
	if !ok {
		return nil
	}
	return c.SendEvent(ctx, event)
}

func toCAPIEvent(e domain.AnalyticsEvent) (Event, bool) {
	event := Event{
		EventTime:    e.OccurredAt.Unix(),
		ActionSource: "website",
		UserData:     UserData{ExternalID: HashSHA256(e.SessionID)},
		EventID:      e.ID,
	}

	switch e.Name {
	case domain.EventAddToCart:
		id, _ := e.Properties["productId"].(string)
		qty, _ := e.Properties["quantity"].(int)
		price := floatProp(e.Properties["price"])
		event.EventName = "AddToCart"
		event.CustomData = CustomData{
			Currency:   domain.Currency,
			Value:      price * float64(qty),
			ContentIDs: []string{id},
			Contents:   []ContentItem{{ID: id, Quantity: qty, Price: price}},
		}
	case domain.EventViewProduct:
		id, _ := e.Properties["productId"].(string)
		event.EventName = "ViewContent"
		event.CustomData = CustomData{
			Currency:   domain.Currency,
			Value:      floatProp(e.Properties["price"]),
			ContentIDs: []string{id},
		}
	case domain.EventSearch:
		q, _ := e.Properties["query"].(string)
		event.EventName = "Search"
		event.CustomData = CustomData{SearchString: q}
	case domain.EventApplyCoupon:
		if valid, _ := e.Properties["valid"].(bool); !valid {
			return Event{}, false
		}
		code, _ := e.Properties["code"].(string)
		event.EventName = "ApplyCoupon"
		event.CustomData = CustomData{
			Currency:   domain.Currency,
			Value:      floatProp(e.Properties["discount"]),
			CouponCode: code,
		}
	default:
		return Event{}, false
	}
	return event, true
}

func floatProp(v interface{}) float64 {
	switch x := v.(type) {
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return 0
		}
		f, _ := d.Float64()
		return f
	case float64:
		return x
	case int:
		return float64(x)
	}
	return 0
}

// SendEvent sends a single event to Facebook CAPI with simple retry logic
func (c *CAPIClient) SendEvent(ctx context.Context, event Event) error {
	if c == nil {
		return nil // CAPI disabled
	}

	jsonData, err := json.Marshal(EventPayload{Data: []Event{event}, AccessToken: c.accessToken})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/events", c.baseURL, c.apiVersion, c.pixelID)

	var lastErr error
	for i := 0; i < 3; i++ { // Retry up to 3 times
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i) * c.retryDelay):
			}
		}

		status, body, err := c.post(ctx, url, jsonData)
		if err != nil {
			lastErr = fmt.Errorf("CAPI request failed: %w", err)
			continue
		}
		if status == http.StatusOK {
			logger.Debug().Str("event", event.EventName).Msg("CAPI event sent")
			return nil
		}

		lastErr = fmt.Errorf("CAPI error (status %d): %s", status, body)

		// If it's a 4xx error (other than 429), don't retry as it's likely a permanent error in payload
		if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
			break
		}
	}

	return lastErr
}

func (c *CAPIClient) post(ctx context.Context, url string, payload []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, strconv.Quote(string(body)), nil
}
