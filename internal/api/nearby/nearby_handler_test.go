package nearby

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/go-trip-planner/internal/types"
)

type MockService struct{ mock.Mock }

func (m *MockService) Nearby(ctx context.Context, req types.NearbyRequest) ([]types.NearbyPlace, error) {
	args := m.Called(ctx, req)
	places, _ := args.Get(0).([]types.NearbyPlace)
	return places, args.Error(1)
}

func TestHandler_Nearby(t *testing.T) {
	body := `{"query":"cafe","origin_lat":36.7529,"origin_lng":3.0420}`

	t.Run("success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Nearby", mock.Anything, mock.MatchedBy(func(req types.NearbyRequest) bool {
			return req.Query == "cafe" && req.OriginLat == 36.7529
		})).Return([]types.NearbyPlace{
			{Name: "Cafe Tantonville", DistanceM: 180, DurationS: 150, Source: "routing:foot"},
		}, nil)
		h := NewHandler(svc, discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/nearby", strings.NewReader(body))
		rr := httptest.NewRecorder()
		h.Nearby(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var places []types.NearbyPlace
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &places))
		require.Len(t, places, 1)
		assert.Equal(t, "Cafe Tantonville", places[0].Name)
		svc.AssertExpectations(t)
	})

	t.Run("missing query is a 400", func(t *testing.T) {
		h := NewHandler(new(MockService), discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/nearby", strings.NewReader(`{"origin_lat":1,"origin_lng":2}`))
		rr := httptest.NewRecorder()
		h.Nearby(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing origin is a 400", func(t *testing.T) {
		h := NewHandler(new(MockService), discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/nearby", strings.NewReader(`{"query":"cafe"}`))
		rr := httptest.NewRecorder()
		h.Nearby(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service failure is a 500", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Nearby", mock.Anything, mock.Anything).Return(nil, errors.New("nominatim: 503"))
		h := NewHandler(svc, discardLogger())

		req := httptest.NewRequest(http.MethodPost, "/nearby", strings.NewReader(body))
		rr := httptest.NewRecorder()
		h.Nearby(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
