package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"cookingapp/internal/models"
	"cookingapp/internal/providers"
	"cookingapp/internal/structures"

	json "github.com/goccy/go-json"
)

const unknownErrorMessage = "An unknown error occurred"

// FetchError is the only error FetchCatalog returns. StatusCode is zero for
// transport and decoding failures.
type FetchError struct {
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return e.Message
}

func statusError(code int) *FetchError {
	return &FetchError{StatusCode: code, Message: fmt.Sprintf("Error: %d", code)}
}

func failure(err error) *FetchError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = unknownErrorMessage
	}
	return &FetchError{Message: msg}
}

type ClientInterface interface {
	FetchCatalog(ctx context.Context) ([]*models.Dish, error)
}

type Client struct {
	endpoint string
	http     *http.Client
	logger   providers.Logger
}

func NewClient(conf *structures.Config, logger providers.Logger) (ClientInterface, error) {
	endpoint, err := url.JoinPath(conf.Catalog.BaseURL, conf.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog endpoint: %w", err)
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: conf.Catalog.Timeout},
		logger:   logger,
	}, nil
}

// FetchCatalog issues a single GET. Every failure path resolves to *FetchError.
func (c *Client) FetchCatalog(ctx context.Context) ([]*models.Dish, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, failure(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnf(providers.TypeApp, "Catalog request failed: %s", err)
		return nil, failure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warnf(providers.TypeApp, "Catalog responded with status %d", resp.StatusCode)
		return nil, statusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, failure(err)
	}

	return decodeCatalog(resp.StatusCode, body)
}

func decodeCatalog(status int, body []byte) ([]*models.Dish, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, statusError(status)
	}

	var dishes []*models.Dish
	if err := json.Unmarshal(trimmed, &dishes); err != nil {
		return nil, failure(err)
	}
	// a null element would leave a hole in the catalog
	for i, d := range dishes {
		if d == nil {
			dishes[i] = &models.Dish{}
		}
	}
	return dishes, nil
}
