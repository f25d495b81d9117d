package net_test

import (
	"context"
	"testing"

	pnet "holidays/internal/platform/net"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()
	cases := []struct {
		name        string
		reqID, ent  string
		wantSameCtx bool
	}{
		{"both", "req-123", "US", false},
		{"request only", "r-only", "", false},
		{"entity only", "", "GB", false},
		{"neither", "", "", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := pnet.WithRequest(base, c.reqID, c.ent)
			if got := pnet.RequestID(ctx); got != c.reqID {
				t.Fatalf("RequestID = %q, want %q", got, c.reqID)
			}
			if got := pnet.Entity(ctx); got != c.ent {
				t.Fatalf("Entity = %q, want %q", got, c.ent)
			}
			if c.wantSameCtx && ctx != base {
				t.Fatalf("empty ids should leave ctx untouched")
			}
		})
	}
}
