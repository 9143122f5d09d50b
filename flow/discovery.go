package flow

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// DiscoverEndpoints resolves the authorization and token endpoints from an
// OIDC issuer's discovery document. Providers that don't publish a discovery
// document need their endpoints configured explicitly instead.
func DiscoverEndpoints(ctx context.Context, issuer string) (oauth2.Endpoint, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return oauth2.Endpoint{}, errors.Wrap(err, "[DiscoverEndpoints] failed to query issuer")
	}
	return provider.Endpoint(), nil
}
