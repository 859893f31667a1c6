package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsRequestsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/api/mailManagement/details/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/mailManagement/details/:id", "404"))

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/mailManagement/details/"+id, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/mailManagement/details/:id", "404"))
	assert.Equal(t, float64(2), after-before)
	assert.Equal(t, float64(0), testutil.ToFloat64(httpInFlight))
}

func TestRecordInventoryTransaction(t *testing.T) {
	beforeCount := testutil.ToFloat64(inventoryTransactions.WithLabelValues("usage"))
	beforeUnits := testutil.ToFloat64(inventoryUnits.WithLabelValues("usage"))

	RecordInventoryTransaction("usage", 20)

	assert.Equal(t, float64(1), testutil.ToFloat64(inventoryTransactions.WithLabelValues("usage"))-beforeCount)
	assert.Equal(t, float64(20), testutil.ToFloat64(inventoryUnits.WithLabelValues("usage"))-beforeUnits)
}

func TestHandlerServesRegistry(t *testing.T) {
	RecordInventoryTransaction("purchase", 1)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "postal_clerk_inventory_transactions_total")
}
