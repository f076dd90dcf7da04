package osm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	t.Run("key value clause expands to node way rel", func(t *testing.T) {
		q := BuildQuery([]TagFilter{{Key: "amenity", Value: "cafe"}}, 36.7529, 3.042, 6000)
		assert.Contains(t, q, `node["amenity"="cafe"](around:6000,36.7529,3.042);`)
		assert.Contains(t, q, `way["amenity"="cafe"](around:6000,36.7529,3.042);`)
		assert.Contains(t, q, `rel["amenity"="cafe"](around:6000,36.7529,3.042);`)
		assert.Contains(t, q, "[out:json][timeout:25];(")
		assert.Contains(t, q, ");out center 120;")
	})

	t.Run("wildcard value matches key presence", func(t *testing.T) {
		q := BuildQuery([]TagFilter{{Key: "historic", Value: AnyValue}}, 36.7529, 3.042, 12000)
		assert.Contains(t, q, `node["historic"](around:12000,36.7529,3.042);`)
		assert.NotContains(t, q, `"historic"=`)
	})
}

func TestOverpassClient_Search(t *testing.T) {
	t.Run("nodes and centered ways become candidates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			require.NoError(t, r.ParseForm())
			assert.Contains(t, r.PostForm.Get("data"), `node["tourism"="museum"]`)
			w.Write([]byte(`{"elements":[
				{"type":"node","lat":36.77,"lon":3.05,"tags":{"name":"Bardo Museum","tourism":"museum"}},
				{"type":"way","center":{"lat":36.76,"lon":3.04},"tags":{"name:en":"Kasbah of Algiers","historic":"citadel"}},
				{"type":"way","tags":{"name":"No center, skipped"}},
				{"type":"node","lat":36.75,"lon":3.03}
			]}`))
		}))
		defer srv.Close()

		c := NewOverpassClient(srv.URL, 5*time.Second, testOpts(), testLogger())
		got, err := c.Search(context.Background(), []TagFilter{{Key: "tourism", Value: "museum"}}, 36.7529, 3.042, 6)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, "Bardo Museum", got[0].Name)
		assert.Equal(t, "museum", got[0].Tags["tourism"])

		// name:en is the fallback name, ways use the computed center
		assert.Equal(t, "Kasbah of Algiers", got[1].Name)
		assert.Equal(t, 36.76, got[1].Lat)

		// tagless node keeps the placeholder name
		assert.Equal(t, "Unnamed place", got[2].Name)
		assert.NotNil(t, got[2].Tags)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGatewayTimeout)
		}))
		defer srv.Close()

		c := NewOverpassClient(srv.URL, 5*time.Second, testOpts(), testLogger())
		_, err := c.Search(context.Background(), []TagFilter{{Key: "leisure", Value: "park"}}, 36.7529, 3.042, 6)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status")
	})
}
