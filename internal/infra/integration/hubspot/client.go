package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/deal-sync/internal/entity"
)

const (
	DefaultBaseURL = "https://api.hubapi.com"
	dealsPath      = "/crm/v3/objects/deals"
)

// ErrNotFound is returned by GetDeal when the id does not exist.
var ErrNotFound = errors.New("hubspot: object not found")

// APIError carries a non-2xx response from the CRM.
type APIError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hubspot %s: status %d - %s", e.Operation, e.StatusCode, e.Body)
}

type Client struct {
	apiToken string
	baseURL  string
	http     *http.Client
}

func NewClient(apiToken, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiToken: apiToken,
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
	}
}

// SearchDeals roda uma busca com um único grupo de filtros e devolve uma página.
func (c *Client) SearchDeals(ctx context.Context, input SearchRequest) ([]*entity.Object, error) {
	payload := searchRequest{
		FilterGroups: []filterGroup{{Filters: input.Filters}},
		Sorts:        input.Sorts,
		Properties:   input.Properties,
		Limit:        input.Limit,
	}

	var page pageResponse
	if err := c.do(ctx, "search", http.MethodPost, dealsPath+"/search", payload, &page); err != nil {
		return nil, err
	}
	return page.objects(), nil
}

func (c *Client) CreateDeal(ctx context.Context, properties map[string]string) (*entity.Object, error) {
	var out objectResponse
	if err := c.do(ctx, "create", http.MethodPost, dealsPath, objectInput{Properties: properties}, &out); err != nil {
		return nil, err
	}
	return out.toObject(), nil
}

func (c *Client) GetDeal(ctx context.Context, id string, properties []string) (*entity.Object, error) {
	q := url.Values{}
	if len(properties) > 0 {
		q.Set("properties", strings.Join(properties, ","))
	}
	path := dealsPath + "/" + url.PathEscape(id)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out objectResponse
	err := c.do(ctx, "get", http.MethodGet, path, nil, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out.toObject(), nil
}

func (c *Client) UpdateDeal(ctx context.Context, id string, properties map[string]string) (*entity.Object, error) {
	var out objectResponse
	path := dealsPath + "/" + url.PathEscape(id)
	if err := c.do(ctx, "update", http.MethodPatch, path, objectInput{Properties: properties}, &out); err != nil {
		return nil, err
	}
	return out.toObject(), nil
}

// ListDeals busca uma única página; não segue o cursor de paginação.
func (c *Client) ListDeals(ctx context.Context, limit int, archived bool) ([]*entity.Object, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("archived", strconv.FormatBool(archived))

	var page pageResponse
	if err := c.do(ctx, "list", http.MethodGet, dealsPath+"?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return page.objects(), nil
}

// Ping checks token and connectivity with the cheapest read available.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListDeals(ctx, 1, false)
	return err
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, out interface{}) error {
	start := time.Now()
	status := "error"
	defer func() {
		crmRequestsTotal.WithLabelValues(operation, status).Inc()
		crmRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	if c.apiToken == "" {
		return fmt.Errorf("hubspot não configurado: access token vazio")
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("erro ao gerar json (%s): %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	c.addAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request hubspot (%s): %w", operation, err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta hubspot (%s): %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Operation: operation, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("erro decode hubspot (%s): %w", operation, err)
	}
	return nil
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiToken))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
