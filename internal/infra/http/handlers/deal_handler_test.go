package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/deal-sync/internal/entity"
	"github.com/xavierca1/deal-sync/internal/infra/http/handlers"
	"github.com/xavierca1/deal-sync/internal/infra/integration/hubspot"
	"github.com/xavierca1/deal-sync/internal/usecase"
)

// MockCRMClient
type MockCRMClient struct {
	mock.Mock
}

func (m *MockCRMClient) SearchDeals(ctx context.Context, input hubspot.SearchRequest) ([]*entity.Object, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Object), args.Error(1)
}

func (m *MockCRMClient) CreateDeal(ctx context.Context, properties map[string]string) (*entity.Object, error) {
	args := m.Called(ctx, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Object), args.Error(1)
}

func (m *MockCRMClient) GetDeal(ctx context.Context, id string, properties []string) (*entity.Object, error) {
	args := m.Called(ctx, id, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Object), args.Error(1)
}

func (m *MockCRMClient) UpdateDeal(ctx context.Context, id string, properties map[string]string) (*entity.Object, error) {
	args := m.Called(ctx, id, properties)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Object), args.Error(1)
}

func (m *MockCRMClient) ListDeals(ctx context.Context, limit int, archived bool) ([]*entity.Object, error) {
	args := m.Called(ctx, limit, archived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Object), args.Error(1)
}

func newRouter(crm *MockCRMClient, checkDuplicates bool) http.Handler {
	handler := handlers.NewDealHandler(
		usecase.NewFindDealUseCase(crm, nil),
		usecase.NewCreateDealUseCase(crm, nil, nil, checkDuplicates),
		usecase.NewUpdateDealUseCase(crm, nil, nil),
		usecase.NewListDealsUseCase(crm, nil),
		nil,
	)
	return handlers.NewRouter(handler, nil, []string{"*"})
}

func deal(id, name, lastModified string) *entity.Object {
	return &entity.Object{ID: id, Properties: map[string]string{
		"dealname": name, "amount": "1000", "hs_lastmodifieddate": lastModified,
	}}
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetDealFound(t *testing.T) {
	crm := new(MockCRMClient)
	crm.On("SearchDeals", mock.Anything, mock.Anything).
		Return([]*entity.Object{deal("42", "Test-Deal", "2024-07-31T10:00:00Z")}, nil)

	w := doRequest(t, newRouter(crm, true), "GET", "/deals/Test-Deal", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "42", body["id"])
	assert.Equal(t, "Test-Deal", body["dealname"])
}

// TestGetDealNotFound - nome inexistente vira 404, não 500
func TestGetDealNotFound(t *testing.T) {
	crm := new(MockCRMClient)
	crm.On("SearchDeals", mock.Anything, mock.MatchedBy(func(r hubspot.SearchRequest) bool {
		return r.Filters[0].Value == "Nope Deal"
	})).Return([]*entity.Object{}, nil)

	w := doRequest(t, newRouter(crm, true), "GET", "/deals/Nope%20Deal", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var errResponse map[string]string
	json.NewDecoder(w.Body).Decode(&errResponse)
	assert.Equal(t, "DEAL_NOT_FOUND", errResponse["error"])
}

func TestGetDealUpstreamError(t *testing.T) {
	crm := new(MockCRMClient)
	crm.On("SearchDeals", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: i/o timeout"))

	w := doRequest(t, newRouter(crm, true), "GET", "/deals/Test-Deal", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var errResponse map[string]string
	json.NewDecoder(w.Body).Decode(&errResponse)
	assert.Equal(t, "UPSTREAM_ERROR", errResponse["error"])
	assert.Contains(t, errResponse["message"], "i/o timeout")
}

func TestCreateDealBothRoutes(t *testing.T) {
	for _, path := range []string{"/deals", "/create-deal"} {
		crm := new(MockCRMClient)
		crm.On("SearchDeals", mock.Anything, mock.Anything).Return([]*entity.Object{}, nil)
		crm.On("CreateDeal", mock.Anything, mock.MatchedBy(func(p map[string]string) bool {
			_, leaked := p["last_updated"]
			return !leaked && p["dealname"] == "New Deal" && p["amount"] == "3000"
		})).Return(deal("9", "New Deal", "2024-08-02T10:00:00Z"), nil)

		w := doRequest(t, newRouter(crm, true), "POST", path, `{
			"amount": 3000, "closedate": "2024-09-30", "dealname": "New Deal",
			"dealstage": "contractsent", "last_updated": "2024-08-01"
		}`)

		assert.Equal(t, http.StatusOK, w.Code, path)
		crm.AssertExpectations(t)
	}
}

// TestCreateDealDuplicate - nome já existe: 400 e nenhum create
func TestCreateDealDuplicate(t *testing.T) {
	crm := new(MockCRMClient)
	crm.On("SearchDeals", mock.Anything, mock.Anything).
		Return([]*entity.Object{deal("1", "New Deal", "2024-07-01T00:00:00Z")}, nil)

	w := doRequest(t, newRouter(crm, true), "POST", "/deals", `{
		"amount": 3000, "closedate": "2024-09-30", "dealname": "New Deal",
		"dealstage": "contractsent", "last_updated": "2024-08-01"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse map[string]string
	json.NewDecoder(w.Body).Decode(&errResponse)
	assert.Equal(t, "DUPLICATE_DEAL", errResponse["error"])
	crm.AssertNotCalled(t, "CreateDeal", mock.Anything, mock.Anything)
}

func TestCreateDealInvalidJSON(t *testing.T) {
	w := doRequest(t, newRouter(new(MockCRMClient), true), "POST", "/deals", "invalid json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse map[string]string
	json.NewDecoder(w.Body).Decode(&errResponse)
	assert.Equal(t, "INVALID_JSON", errResponse["error"])
}

func TestCreateDealValidationError(t *testing.T) {
	w := doRequest(t, newRouter(new(MockCRMClient), true), "POST", "/deals", `{"dealname": "x", "last_updated": "yesterday"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse map[string]string
	json.NewDecoder(w.Body).Decode(&errResponse)
	assert.Equal(t, "VALIDATION_ERROR", errResponse["error"])
}

func TestUpdateDealNewerWritesAmount(t *testing.T) {
	crm := new(MockCRMClient)
	crm.On("SearchDeals", mock.Anything, mock.Anything).
		Return([]*entity.Object{deal("42", "Test-Deal", "2024-07-31T10:00:00Z")}, nil)
	crm.On("UpdateDeal", mock.Anything, "42", map[string]string{"amount": "7777"}).
		Return(deal("42", "Test-Deal", "2024-08-02T10:00:00Z"), nil).Once()

	w := doRequest(t, newRouter(crm, true), "PUT", "/update-deal",
		`{"dealname": "Test-Deal", "amount": 7777, "last_updated": "2024-08-01"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	crm.AssertNumberOfCalls(t, "UpdateDeal", 1)
}

func TestUpdateDealAlreadyCurrent(t *testing.T) {
	crm := new(MockCRMClient)
	crm.On("GetDeal", mock.Anything, "42", mock.Anything).
		Return(deal("42", "Test-Deal", "2024-08-01T10:00:00Z"), nil)

	w := doRequest(t, newRouter(crm, true), "PUT", "/deals",
		`{"id": "42", "amount": 7777, "last_updated": "2024-08-01"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, usecase.MsgAlreadyCurrent, body["message"])
	crm.AssertNotCalled(t, "UpdateDeal", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateDealNotFound(t *testing.T) {
	crm := new(MockCRMClient)
	crm.On("GetDeal", mock.Anything, "404", mock.Anything).Return(nil, hubspot.ErrNotFound)

	w := doRequest(t, newRouter(crm, true), "PUT", "/deals",
		`{"id": "404", "amount": 1, "last_updated": "2024-08-01"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateDealMalformedCRMTimestampIs500(t *testing.T) {
	crm := new(MockCRMClient)
	crm.On("GetDeal", mock.Anything, "42", mock.Anything).Return(deal("42", "Test-Deal", "garbage"), nil)

	w := doRequest(t, newRouter(crm, true), "PUT", "/deals",
		`{"id": "42", "amount": 1, "last_updated": "2024-08-01"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var errResponse map[string]string
	json.NewDecoder(w.Body).Decode(&errResponse)
	assert.Equal(t, "INVALID_TIMESTAMP", errResponse["error"])
}

func TestListDeals(t *testing.T) {
	crm := new(MockCRMClient)
	crm.On("ListDeals", mock.Anything, 5, false).
		Return([]*entity.Object{deal("1", "A", "2024-07-31T10:00:00Z")}, nil)

	w := doRequest(t, newRouter(crm, true), "GET", "/deals?limit=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var body usecase.ListDealsOutput
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 1, body.Total)
}

func TestListDealsRejectsBadLimit(t *testing.T) {
	w := doRequest(t, newRouter(new(MockCRMClient), true), "GET", "/deals?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
