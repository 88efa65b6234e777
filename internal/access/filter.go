package access

import (
	"context"
	"errors"
)

// ErrForbidden is returned when a caller asks for another user's records.
var ErrForbidden = errors.New("forbidden access")

// BuyerScope decides which buyer_email a bid listing is restricted to.
//
// An empty requested email leaves the listing unscoped. Otherwise, when the request carries a
// verified identity, the requested email must be the caller's own. Requests on routes without a
// token verifier have no identity and use the requested email as a plain filter.
func BuyerScope(ctx context.Context, requested string) (string, error) {
	if requested == "" {
		return "", nil
	}
	id, ok := IdentityFrom(ctx)
	if !ok {
		return requested, nil
	}
	if id.Email != requested {
		return "", ErrForbidden
	}
	return requested, nil
}
