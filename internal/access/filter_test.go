package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuyerScope(t *testing.T) {
	alice := WithIdentity(context.Background(), Identity{Email: "alice@x.com", Strategy: "local"})
	bob := WithIdentity(context.Background(), Identity{Email: "bob@x.com", Strategy: "provider"})

	tests := []struct {
		name      string
		ctx       context.Context
		requested string
		want      string
		wantErr   error
	}{
		{name: "no_filter_is_unscoped", ctx: alice, requested: "", want: ""},
		{name: "own_email", ctx: alice, requested: "alice@x.com", want: "alice@x.com"},
		{name: "other_email", ctx: bob, requested: "alice@x.com", wantErr: ErrForbidden},
		{name: "case_sensitive", ctx: alice, requested: "Alice@x.com", wantErr: ErrForbidden},
		{name: "unprotected_route", ctx: context.Background(), requested: "alice@x.com", want: "alice@x.com"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BuyerScope(tc.ctx, tc.requested)
			if tc.wantErr != nil {
				require.True(t, errors.Is(err, tc.wantErr))
				require.Empty(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestIdentityFrom(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	require.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{Email: "a@x.com", Strategy: "local"})
	id, ok := IdentityFrom(ctx)
	require.True(t, ok)
	require.Equal(t, "a@x.com", id.Email)
	require.Equal(t, "local", id.Strategy)
}
