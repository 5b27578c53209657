package http

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aussiebroadwan/leadcapture/internal/frontend/store"
	"github.com/aussiebroadwan/leadcapture/pkg/slogx"
)

const flashKey = "flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

// flash is a one-shot message carried across a redirect.
type flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (f *flash) IsError() bool { return f != nil && f.Kind == flashError }

func (r *Router) setFlash(ctx context.Context, sessionID, kind, message string) {
	raw, err := json.Marshal(flash{Kind: kind, Message: message})
	if err != nil {
		return
	}
	if err := r.store.Values().PutValue(ctx, sessionID, flashKey, raw); err != nil {
		slogx.FromContext(ctx).Warn("failed to store flash", "error", err)
	}
}

// popFlash returns and deletes the pending flash, or nil when there is none.
func (r *Router) popFlash(ctx context.Context, sessionID string) *flash {
	raw, err := r.store.Values().GetValue(ctx, sessionID, flashKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to load flash", "error", err)
		return nil
	}
	_ = r.store.Values().DeleteValue(ctx, sessionID, flashKey)

	var f flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}
