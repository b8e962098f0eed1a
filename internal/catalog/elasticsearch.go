// internal/catalog/elasticsearch.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"planora-workers/internal/common/errors"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// SearchSource reads vendor profiles from the search index instead of the
// primary database. Documents in the index carry the same JSON shape as
// VendorProfile.
type SearchSource struct {
	client *elasticsearch.Client
	index  string
	size   int
}

func NewSearchSource(client *elasticsearch.Client, index string) *SearchSource {
	return &SearchSource{client: client, index: index, size: 500}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source VendorProfile `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// VendorsByCity runs a term filter on the city keyword field.
func (s *SearchSource) VendorsByCity(ctx context.Context, city string) ([]VendorProfile, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"city.keyword": city},
					},
				},
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal vendor search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &s.size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewSearchTimeoutError(s.index)
		}
		return nil, errors.NewSearchQueryFailedError(s.index, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, errors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(s.index, fmt.Errorf("status %s", res.Status()))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode vendor search response: %w", err)
	}

	vendors := make([]VendorProfile, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		v := hit.Source
		v.Normalize()
		vendors = append(vendors, v)
	}
	return vendors, nil
}
