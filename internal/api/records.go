package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fintrackapp/fintrack-go/internal/types"
)

// listPerPage requests the whole collection in one page; the screens
// this layer serves render full lists and do not paginate.
const listPerPage = 500

// ListRecords fetches every record of a collection in the given sort
// order and returns the raw items array for the caller to decode.
func ListRecords(ctx context.Context, httpClient HTTPClient, baseURL, collection, sort string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateCollection(collection); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/api/collections/%s/records?perPage=%d", baseURL, collection, listPerPage)
	if sort != "" {
		u += "&sort=" + url.QueryEscape(sort)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	raw, err := doJSON(httpClient, httpReq, "list "+collection, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var lr types.ListResponse
	if err := json.Unmarshal(raw, &lr); err != nil {
		return nil, err
	}
	return lr.Items, nil
}

// CreateRecord inserts a record and returns the stored representation,
// including the identifier the store assigned.
func CreateRecord(ctx context.Context, httpClient HTTPClient, baseURL, collection string, fields any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateCollection(collection); err != nil {
		return nil, err
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/collections/%s/records", baseURL, collection)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return doJSON(httpClient, httpReq, "create "+collection, http.StatusOK, http.StatusCreated)
}

// UpdateRecord patches an existing record in place by identifier.
func UpdateRecord(ctx context.Context, httpClient HTTPClient, baseURL, collection, id string, fields any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateCollection(collection); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(id, "record id"); err != nil {
		return nil, err
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/collections/%s/records/%s", baseURL, collection, id)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return doJSON(httpClient, httpReq, "update "+collection, http.StatusOK)
}

// DeleteRecord removes a record by identifier. The store answers 204.
func DeleteRecord(ctx context.Context, httpClient HTTPClient, baseURL, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateCollection(collection); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(id, "record id"); err != nil {
		return err
	}

	u := fmt.Sprintf("%s/api/collections/%s/records/%s", baseURL, collection, id)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	_, err = doJSON(httpClient, httpReq, "delete "+collection, http.StatusNoContent, http.StatusOK)
	return err
}
