package push

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// ErrEndpointGone marks a permanent delivery failure: the push service says
// the endpoint no longer exists (404/410). The subscription should be
// disabled. Every other failure is transient/unknown.
var ErrEndpointGone = errors.New("push endpoint gone")

// Sender is a ready-to-use Web Push transport handle. Construction either
// succeeds with working VAPID credentials or fails fast — there is no
// half-configured state.
type Sender struct {
	subject    string
	publicKey  string
	privateKey string
	httpClient *http.Client
	ttl        int
}

// NewSender validates the VAPID configuration and returns a transport
// handle. The timeout bounds each send so one dead endpoint cannot stall a
// dispatch run.
func NewSender(subject, publicKey, privateKey string, timeout, ttl time.Duration) (*Sender, error) {
	if subject == "" || publicKey == "" || privateKey == "" {
		return nil, fmt.Errorf("web push requires VAPID subject, public key, and private key")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Sender{
		subject:    subject,
		publicKey:  publicKey,
		privateKey: privateKey,
		httpClient: &http.Client{Timeout: timeout},
		ttl:        int(ttl.Seconds()),
	}, nil
}

// Send delivers one payload to one subscription. A 404/410 from the push
// service wraps ErrEndpointGone; any other non-2xx or transport error is
// returned as-is and treated as transient by callers.
func (s *Sender) Send(ctx context.Context, sub Subscription, payload []byte) error {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, &webpush.Options{
		HTTPClient:      s.httpClient,
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             s.ttl,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	return classifyStatus(resp.StatusCode)
}

// classifyStatus maps a push service response status to the failure
// taxonomy: nil for accepted, ErrEndpointGone for a permanently dead
// endpoint, a plain error otherwise.
func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return fmt.Errorf("status %d: %w", status, ErrEndpointGone)
	default:
		return fmt.Errorf("push service returned status %d", status)
	}
}
