package constants

import "time"

const (
	// DefaultPageSize is the store default page size applied when a listing
	// request carries no limit.
	DefaultPageSize int64 = 20

	// DefaultDelivererTimeout bounds a single outbound delivery.
	DefaultDelivererTimeout = 30 * time.Second

	// PendingAttemptTTL is how long an attempt may stay pending before it
	// counts as abandoned. An abandoned attempt no longer blocks retries;
	// the store records a failed outcome on it when a new attempt is
	// appended.
	PendingAttemptTTL = 5 * time.Minute

	// EventIDPrefix prefixes every generated event identifier.
	EventIDPrefix = "evt_"

	// MerchantIDHeader carries the merchant scope resolved by the
	// authentication layer in front of this service.
	MerchantIDHeader = "X-Merchant-Id"
)

var DefaultResponseHeaders = map[string]string{
	"Server": "hooktrail",
}

var DefaultDelivererRequestHeaders = map[string]string{
	"User-Agent":   "Hooktrail",
	"Content-Type": "application/json; charset=utf-8",
}
