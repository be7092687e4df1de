package introspection

import (
	"context"
	"net/http"

	graphql "github.com/hasura/go-graphql-client"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/gqlc/tsgen"
)

// Loader loads a schema by introspecting a GraphQL endpoint.
type Loader struct {
	Endpoint string

	// Header is added to every request, e.g. for authorization.
	Header http.Header

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Load runs the introspection query against the endpoint and builds the
// schema it describes.
func (l Loader) Load(ctx context.Context) (*tsgen.Schema, error) {
	client := graphql.NewClient(l.Endpoint, l.HTTPClient)
	if len(l.Header) > 0 {
		client = client.WithRequestModifier(func(r *http.Request) {
			for key, values := range l.Header {
				for _, v := range values {
					r.Header.Add(key, v)
				}
			}
		})
	}

	data, err := client.ExecRaw(ctx, Query, map[string]interface{}{})
	if err != nil {
		return nil, errors.Wrapf(err, "introspection: querying %s", l.Endpoint)
	}
	zerolog.Ctx(ctx).Debug().Str("endpoint", l.Endpoint).Int("bytes", len(data)).Msg("fetched introspection result")

	return Build(data)
}
