// Package context carries request-scoped observability identifiers.
package context

import "context"

type requestIDKey struct{}
type receiptIDKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithReceiptID records the receipt identifier assigned to the current request.
func WithReceiptID(ctx context.Context, receiptID string) context.Context {
	if receiptID == "" {
		return ctx
	}
	return context.WithValue(ctx, receiptIDKey{}, receiptID)
}

func ReceiptIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(receiptIDKey{}).(string); ok {
		return v
	}
	return ""
}
