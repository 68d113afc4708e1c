package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"dealer-assistant/internal/assistant/query"
	"dealer-assistant/internal/models"
)

// SearchInventory queries a vehicle index whose documents use snake_case fields.
type SearchInventory struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchInventory(client *elasticsearch.Client, index string) *SearchInventory {
	return &SearchInventory{client: client, index: index}
}

type vehicleDoc struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Price        float64 `json:"price"`
	Mileage      *int    `json:"mileage"`
	FuelType     string  `json:"fuel_type"`
	Transmission string  `json:"transmission"`
	BodyType     string  `json:"body_type"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string     `json:"_id"`
			Source vehicleDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *SearchInventory) Find(ctx context.Context, q query.Query) ([]models.VehicleSummary, error) {
	body := map[string]interface{}{
		"query": boolFilter(q),
		"sort":  []interface{}{map[string]interface{}{"price": map[string]string{"order": "asc"}}},
	}
	if q.Limit > 0 {
		body["size"] = q.Limit
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, lookupFailed("elasticsearch", err)
	}

	req := esapi.SearchRequest{Index: []string{s.index}, Body: bytes.NewReader(payload)}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, lookupFailed("elasticsearch", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, lookupFailed("elasticsearch", fmt.Errorf("search failed: %s", res.Status()))
	}

	var decoded searchResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, lookupFailed("elasticsearch", err)
	}

	vehicles := make([]models.VehicleSummary, 0, len(decoded.Hits.Hits))
	for _, hit := range decoded.Hits.Hits {
		doc := hit.Source
		vehicles = append(vehicles, models.VehicleSummary{
			ID:           hit.ID,
			Make:         doc.Make,
			Model:        doc.Model,
			Year:         doc.Year,
			Price:        doc.Price,
			Mileage:      doc.Mileage,
			FuelType:     doc.FuelType,
			Transmission: doc.Transmission,
			BodyType:     doc.BodyType,
		})
	}
	return vehicles, nil
}

func (s *SearchInventory) Count(ctx context.Context, q query.Query) (int, error) {
	payload, err := json.Marshal(map[string]interface{}{"query": boolFilter(q)})
	if err != nil {
		return 0, lookupFailed("elasticsearch", err)
	}

	req := esapi.CountRequest{Index: []string{s.index}, Body: bytes.NewReader(payload)}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return 0, lookupFailed("elasticsearch", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, lookupFailed("elasticsearch", fmt.Errorf("count failed: %s", res.Status()))
	}

	var decoded struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return 0, lookupFailed("elasticsearch", err)
	}
	return decoded.Count, nil
}

func boolFilter(q query.Query) map[string]interface{} {
	filters := []interface{}{term("status", q.Status)}
	if q.Make != "" {
		filters = append(filters, term("make", q.Make))
	}
	if q.BodyType != "" {
		filters = append(filters, term("body_type", q.BodyType))
	}
	if q.PriceMax != nil {
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{"price": map[string]interface{}{"lte": *q.PriceMax}},
		})
	}
	return map[string]interface{}{"bool": map[string]interface{}{"filter": filters}}
}

func term(field, value string) map[string]interface{} {
	return map[string]interface{}{"term": map[string]interface{}{field: value}}
}
