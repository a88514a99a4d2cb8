package supplychain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"graphview-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, 5, zap.NewNop())
}

func TestListBranchOffices(t *testing.T) {
	t.Run("normalizes nested collections and dates", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/branchoffice", r.URL.Path)
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"page": 2, "limit": 5, "totalPages": 3,
				"branchOffices": [{
					"id": "b-1", "ID": 1, "Name": "Central", "Location": "Zone 1",
					"Income": "1500.75", "Voided": "false",
					"invoices": [{
						"id": "i-1", "Name": "INV-001", "NIT": "123", "Total": "45.50",
						"Date": {"year":{"low":2024},"month":{"low":3},"day":{"low":5}},
						"relationshipType": "EMITS"
					}],
					"buyOrders": [{
						"id": "o-1", "Total": 300, "Status": "Pending",
						"Date": {"year":{"low":2024},"month":{"low":4},"day":{"low":1}}
					}]
				}]
			}`))
		}))

		page, err := client.ListBranchOffices(context.Background(), 2)
		require.NoError(t, err)

		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 3, page.TotalPages)
		require.Len(t, page.Items, 1)

		branch := page.Items[0]
		assert.Equal(t, "b-1", branch.ID)
		assert.Equal(t, 1500.75, branch.Income)
		require.Len(t, branch.Invoices, 1)
		assert.Equal(t, 45.5, branch.Invoices[0].Total)
		assert.Equal(t, "2024-03-05", branch.Invoices[0].Date)
		assert.Equal(t, "EMITS", branch.Invoices[0].RelationshipType)
		require.Len(t, branch.BuyOrders, 1)
		assert.Equal(t, "o-1", branch.BuyOrders[0].ID)
	})

	t.Run("missing collections come back empty", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"branchOffices": [{"id": "b-2", "Name": "Annex"}]}`))
		}))

		page, err := client.ListBranchOffices(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Empty(t, page.Items[0].Invoices)
		assert.Empty(t, page.Items[0].BuyOrders)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("backend failure is a FetchError", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message": "database unreachable"}`))
		}))

		_, err := client.ListBranchOffices(context.Background(), 1)
		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "database unreachable", fetchErr.Message)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("coerces string numerics and tag variants", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{
				"page": 1, "totalPages": 1,
				"products": [{
					"id": "p-1", "Name": "Coffee", "Category": "Beverage",
					"Price": "12.99", "TagsArray": ["hot"],
					"Expiration_date": {"year":{"low":2025},"month":{"low":1},"day":{"low":15}},
					"Voided": "False",
					"provider": {"id": "prov-1", "Name": "Acme", "relationshipType": "BELONGS_TO"}
				}]
			}`))
		}))

		page, err := client.ListProducts(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)

		p := page.Items[0]
		assert.Equal(t, 12.99, p.Price)
		assert.Equal(t, []string{"hot"}, p.Tags)
		assert.Equal(t, "2025-01-15", p.ExpirationDate)
		assert.False(t, p.Voided)
		require.NotNil(t, p.Provider)
		assert.Equal(t, "BELONGS_TO", p.Provider.RelationshipType)
	})

	t.Run("garbage price coerces to zero", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"products": [{"id": "p-2", "Name": "Tea", "Price": "abc"}]}`))
		}))

		page, err := client.ListProducts(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, 0.0, page.Items[0].Price)
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("returns backend identity", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/product", r.URL.Path)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Coffee", body["name"])
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": "p-99", "Name": "Coffee", "Price": 12.99, "Tags": ["hot"]}`))
		}))

		created, err := client.CreateProduct(context.Background(), CreateProductRequest{Name: "Coffee", Price: 12.99})
		require.NoError(t, err)
		assert.Equal(t, "p-99", created.ID)
		assert.Equal(t, []string{"hot"}, created.Tags)
	})

	t.Run("failure carries the backend message", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message": "name already taken"}`))
		}))

		_, err := client.CreateProduct(context.Background(), CreateProductRequest{Name: "Coffee"})
		var createErr *CreateError
		require.ErrorAs(t, err, &createErr)
		assert.Equal(t, "name already taken", createErr.Message)
	})

	t.Run("failure without message uses the fallback", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		_, err := client.CreateProduct(context.Background(), CreateProductRequest{Name: "Coffee"})
		var createErr *CreateError
		require.ErrorAs(t, err, &createErr)
		assert.Equal(t, "could not create product", createErr.Message)
	})
}

func TestSearchProviders(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/providers/search/Acme%20Corp", r.URL.EscapedPath())
		w.Write([]byte(`{"providers": [{"id": "prov-1", "Name": "Acme Corp"}]}`))
	}))

	page, err := client.SearchProviders(context.Background(), "Acme Corp")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Acme Corp", page.Items[0].Name)
}

func TestCreateRelationship(t *testing.T) {
	paths := []struct {
		name   string
		source model.EntityType
		target model.EntityType
		want   string
	}{
		{"product to product", model.EntityProduct, model.EntityProduct, "/product/relationshipProducts"},
		{"product to provider", model.EntityProduct, model.EntityProvider, "/product/relationship"},
		{"provider to branch", model.EntityProvider, model.EntityBranchOffice, "/providers/relationshipProvider"},
		{"branch to invoice", model.EntityBranchOffice, model.EntityInvoice, "/branchOffice/relationship"},
		{"invoice to product", model.EntityInvoice, model.EntityProduct, "/invoices/relationship"},
	}
	for _, tt := range paths {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Write([]byte(`{"message": "ok", "relationshipType": "X"}`))
			}))

			_, err := client.CreateRelationship(context.Background(), RelationshipRequest{
				SourceID:   "s",
				TargetID:   "t",
				SourceType: tt.source,
				TargetType: tt.target,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, gotPath)
		})
	}

	t.Run("properties flatten into the payload", func(t *testing.T) {
		var body map[string]any
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Write([]byte(`{"relationshipType": "EXISTS_ON"}`))
		}))

		result, err := client.CreateRelationship(context.Background(), RelationshipRequest{
			SourceID:   "p-1",
			TargetID:   "b-1",
			SourceType: model.EntityProduct,
			TargetType: model.EntityBranchOffice,
			Properties: &model.ExistsOnProps{ActualStock: 10, BuyDate: "2024-03-05", MinimumStock: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, "EXISTS_ON", result.RelationshipType)
		assert.Equal(t, "p-1", body["sourceId"])
		assert.Equal(t, float64(10), body["actual_stock"])
		assert.Equal(t, "2024-03-05", body["buy_date"])
	})

	t.Run("unsupported source type fails before any call", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		}))

		_, err := client.CreateRelationship(context.Background(), RelationshipRequest{
			SourceType: model.EntityRoute,
			TargetType: model.EntityProduct,
		})
		var createErr *CreateError
		require.ErrorAs(t, err, &createErr)
	})
}

func TestStatsReports(t *testing.T) {
	t.Run("needs distribution rows", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/branchoffice/needs-distribution", r.URL.Path)
			w.Write([]byte(`[{"branchOffice": {"id": "b-1", "Name": "Central"}, "provider": {"id": "prov-1"}, "route": {"id": "r-1"}}]`))
		}))

		rows, err := client.NeedsDistribution(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Central", rows[0].BranchOffice.Name)
	})

	t.Run("longest time route is a single object", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/route/longest-time", r.URL.Path)
			w.Write([]byte(`{"id": "r-9", "Name": "North loop", "Distance_KM": "230.5"}`))
		}))

		route, err := client.LongestTimeRoute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "r-9", route.ID)
		assert.Equal(t, 230.5, route.DistanceKM)
	})
}
