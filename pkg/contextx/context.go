package contextx

import (
	"context"
)

type key struct{}

// MContext carries the authenticated merchant scope of a request.
type MContext struct {
	MerchantID string
}

func WithContext(ctx context.Context, mctx *MContext) context.Context {
	return context.WithValue(ctx, key{}, mctx)
}

func FromContext(ctx context.Context) (*MContext, bool) {
	value, ok := ctx.Value(key{}).(*MContext)
	return value, ok
}

func GetMerchantID(ctx context.Context) string {
	if m, ok := FromContext(ctx); ok {
		return m.MerchantID
	}
	return ""
}
