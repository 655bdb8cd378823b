package synthesis

import (
	"strings"

	"noir-api-mapper/internal/types"
)

// endpointIdentity is the dedup key: method uppercased plus path.
type endpointIdentity struct {
	method string
	path   string
}

// Merge folds per-batch collections into one. The first collection donates
// title, version and baseUrl; any later collection with a different baseUrl
// is a desynchronized response and fails the merge rather than being
// reconciled. Endpoints are merged in batch order, then within-batch order,
// and the first occurrence of an identity wins: a later duplicate may be
// richer, but dropping it keeps the result dependent only on input order.
func Merge(collections []types.ApiCollection) (*types.ApiCollection, error) {
	if len(collections) == 0 {
		return nil, newError(ReasonEmptyInput, -1, "no collections to merge")
	}

	base := collections[0]
	seen := make(map[endpointIdentity]bool)
	merged := make([]types.ApiEndpoint, 0)

	for i, collection := range collections {
		if collection.BaseURL != base.BaseURL {
			return nil, newError(ReasonBaseURLMismatch, i,
				"collection baseUrl %q does not match %q", collection.BaseURL, base.BaseURL)
		}
		for _, endpoint := range collection.Endpoints {
			identity := endpointIdentity{
				method: strings.ToUpper(endpoint.Method),
				path:   endpoint.Path,
			}
			if seen[identity] {
				continue
			}
			seen[identity] = true
			merged = append(merged, endpoint)
		}
	}

	return &types.ApiCollection{
		Title:     base.Title,
		Version:   base.Version,
		BaseURL:   base.BaseURL,
		Endpoints: merged,
	}, nil
}
