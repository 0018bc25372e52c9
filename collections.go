package fintrack

import (
	"context"
	"encoding/json"

	"github.com/fintrackapp/fintrack-go/internal/api"
)

// Collection returns an untyped handle for raw CRUD against a named
// collection. The typed operations in records.go cover the four
// finance collections; this handle exists for tooling and tests that
// need to reach arbitrary collections. It performs no identity
// stamping and no cache invalidation.
func (c *Client) Collection(name string) *Collection {
	return &Collection{client: c, name: name}
}

// Collection is a thin handle scoping CRUD calls to one collection.
type Collection struct {
	client *Client
	name   string
}

// List fetches every record in the collection in the given sort order
// (e.g. "-created") and returns the raw items array.
func (col *Collection) List(ctx context.Context, sort string) (json.RawMessage, error) {
	return api.ListRecords(ctx, col.client.http, col.client.baseURL, col.name, sort)
}

// Create inserts a record built from fields and returns the stored
// representation.
func (col *Collection) Create(ctx context.Context, fields any) (json.RawMessage, error) {
	return api.CreateRecord(ctx, col.client.http, col.client.baseURL, col.name, fields)
}

// Update patches the record with the given id.
func (col *Collection) Update(ctx context.Context, id string, fields any) (json.RawMessage, error) {
	return api.UpdateRecord(ctx, col.client.http, col.client.baseURL, col.name, id, fields)
}

// Delete removes the record with the given id.
func (col *Collection) Delete(ctx context.Context, id string) error {
	return api.DeleteRecord(ctx, col.client.http, col.client.baseURL, col.name, id)
}
