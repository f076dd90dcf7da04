package planner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/go-trip-planner/internal/types"
)

type MockService struct{ mock.Mock }

func (m *MockService) Plan(ctx context.Context, req types.PlanRequest) (*types.Itinerary, error) {
	args := m.Called(ctx, req)
	it, _ := args.Get(0).(*types.Itinerary)
	return it, args.Error(1)
}

func TestHandler_Plan(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Plan", mock.Anything, mock.MatchedBy(func(req types.PlanRequest) bool {
			return req.Destination == "Algiers"
		})).Return(&types.Itinerary{
			ID:          uuid.New(),
			Destination: "Algiers",
			Mode:        types.ModeFoot,
			Days:        []types.Day{},
		}, nil)
		h := NewHandler(svc, discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(`{"destination":"Algiers"}`))
		rr := httptest.NewRecorder()
		h.Plan(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Algiers", body["destination"])
		assert.NotNil(t, body["itinerary"])
		svc.AssertExpectations(t)
	})

	t.Run("missing destination is a 400", func(t *testing.T) {
		h := NewHandler(new(MockService), discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(`{"mode":"foot"}`))
		rr := httptest.NewRecorder()
		h.Plan(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		h := NewHandler(new(MockService), discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(`{"destination":`))
		rr := httptest.NewRecorder()
		h.Plan(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service failure is a 500", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Plan", mock.Anything, mock.Anything).Return((*types.Itinerary)(nil), errors.New("overpass: 504"))
		h := NewHandler(svc, discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/plan", strings.NewReader(`{"destination":"Algiers"}`))
		rr := httptest.NewRecorder()
		h.Plan(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
