// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyWorkspace ctxKey = "workspace"

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, workspace string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if workspace != "" {
		ctx = context.WithValue(ctx, keyWorkspace, workspace)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// Workspace returns the workspace id on the context if present
func Workspace(ctx context.Context) string {
	if v, ok := ctx.Value(keyWorkspace).(string); ok {
		return v
	}
	return ""
}
