package utils

import (
	"context"
)

type contextKey string

const customContextKey contextKey = "CUSTOM_CONTEXT"

type CustomContext struct {
	RunId  string
	Domain string
}

func WithCustomContext(ctx context.Context, customContext *CustomContext) context.Context {
	return context.WithValue(ctx, customContextKey, customContext)
}

func GetContext(ctx context.Context) *CustomContext {
	customContext, ok := ctx.Value(customContextKey).(*CustomContext)
	if !ok {
		return &CustomContext{}
	}
	return customContext
}

func GetRunIdFromContext(ctx context.Context) string {
	return GetContext(ctx).RunId
}

func GetDomainFromContext(ctx context.Context) string {
	return GetContext(ctx).Domain
}
