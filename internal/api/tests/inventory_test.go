package api_test

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"testing"

	"github.com/postalclerk/clerk-server/internal/api/testutils"
	"github.com/postalclerk/clerk-server/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemRequest(name string, quantity, reorderLevel int) models.InventoryItemRequest {
	price := decimal.RequireFromString("0.75")
	return models.InventoryItemRequest{
		ItemName:     name,
		ItemType:     "packaging",
		Quantity:     &quantity,
		UnitPrice:    &price,
		ReorderLevel: &reorderLevel,
	}
}

func addItem(t *testing.T, testCtx *testutils.TestContext, req models.InventoryItemRequest) int64 {
	t.Helper()

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/inventory",
		req,
		testutils.AuthHeaders(testCtx.TestClerkJWT),
	)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.InventoryItemCreatedResponse
	testutils.DecodeJSON(t, w, &resp)
	require.True(t, resp.Success)
	require.NotZero(t, resp.ItemID)
	return resp.ItemID
}

func listTransactions(t *testing.T, testCtx *testutils.TestContext, itemID int64) []models.InventoryTransaction {
	t.Helper()

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/inventory/%d/transactions", itemID),
		nil,
		testutils.AuthHeaders(testCtx.TestClerkJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.TransactionsResponse
	testutils.DecodeJSON(t, w, &resp)
	return resp.Transactions
}

func TestInventoryAddAndAdjust(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.TestClerkJWT)

	itemID := addItem(t, testCtx, itemRequest("Boxes", 100, 10))

	// Opening stock is one purchase
	transactions := listTransactions(t, testCtx, itemID)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.TransactionPurchase, transactions[0].TransactionType)
	assert.Equal(t, 100, transactions[0].Quantity)
	assert.Equal(t, "Initial inventory entry", transactions[0].Notes)

	path := fmt.Sprintf("/api/inventory/%d", itemID)

	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, path, itemRequest("Boxes", 80, 10), headers)
	assert.Equal(t, http.StatusOK, w.Code)

	transactions = listTransactions(t, testCtx, itemID)
	require.Len(t, transactions, 2)
	assert.Equal(t, models.TransactionUsage, transactions[0].TransactionType)
	assert.Equal(t, 20, transactions[0].Quantity)
	assert.Equal(t, "Manual inventory adjustment", transactions[0].Notes)
	require.NotNil(t, transactions[0].ClerkName)
	assert.Equal(t, testutils.TestClerkName, *transactions[0].ClerkName)
	assert.Equal(t, models.TransactionPurchase, transactions[1].TransactionType)
	assert.Equal(t, 100, transactions[1].Quantity)

	// Restocking records a purchase of the difference
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, path, itemRequest("Boxes", 95, 10), headers)
	assert.Equal(t, http.StatusOK, w.Code)

	transactions = listTransactions(t, testCtx, itemID)
	require.Len(t, transactions, 3)
	assert.Equal(t, models.TransactionPurchase, transactions[0].TransactionType)
	assert.Equal(t, 15, transactions[0].Quantity)

	// Renaming without a quantity change appends nothing
	w = testutils.PerformRequest(testCtx.Router, http.MethodPut, path, itemRequest("Large Boxes", 95, 10), headers)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listTransactions(t, testCtx, itemID), 3)

	w = testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/inventory", nil, headers)
	assert.Equal(t, http.StatusOK, w.Code)

	var itemsResp models.InventoryItemsResponse
	testutils.DecodeJSON(t, w, &itemsResp)
	require.Len(t, itemsResp.Items, 1)
	assert.Equal(t, "Large Boxes", itemsResp.Items[0].ItemName)
	assert.Equal(t, 95, itemsResp.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("0.75").Equal(itemsResp.Items[0].UnitPrice))
}

func TestInventoryValidation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.TestClerkJWT)

	missingName := itemRequest("", 5, 1)
	missingQuantity := itemRequest("Tape", 5, 1)
	missingQuantity.Quantity = nil
	negativeQuantity := itemRequest("Tape", -1, 1)
	negativePrice := itemRequest("Tape", 5, 1)
	price := decimal.NewFromInt(-2)
	negativePrice.UnitPrice = &price
	hugeQuantity := itemRequest("Tape", math.MaxInt32+1, 1)

	tests := []struct {
		name    string
		req     models.InventoryItemRequest
		message string
	}{
		{"missing name", missingName, "Missing required fields"},
		{"missing quantity", missingQuantity, "Missing required fields"},
		{"negative quantity", negativeQuantity, "Quantity cannot be negative"},
		{"negative price", negativePrice, "Unit price cannot be negative"},
		{"quantity beyond integer column", hugeQuantity, "Quantity is too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutils.PerformRequest(testCtx.Router, http.MethodPost, "/api/inventory", tt.req, headers)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp models.Response
			testutils.DecodeJSON(t, w, &resp)
			assert.Equal(t, tt.message, resp.Message)
		})
	}

	assert.Empty(t, testCtx.Repository.Transactions())

	w := testutils.PerformRequest(testCtx.Router, http.MethodPut, "/api/inventory/4242", itemRequest("Tape", 5, 1), headers)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp models.Response
	testutils.DecodeJSON(t, w, &resp)
	assert.Equal(t, "Inventory item not found", resp.Message)
}

func TestLowStockItems(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	addItem(t, testCtx, itemRequest("Stamps", 500, 50))
	addItem(t, testCtx, itemRequest("Envelopes", 20, 20))
	addItem(t, testCtx, itemRequest("Labels", 3, 10))

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/inventory/low-stock",
		nil,
		testutils.AuthHeaders(testCtx.TestClerkJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.InventoryItemsResponse
	testutils.DecodeJSON(t, w, &resp)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Labels", resp.Items[0].ItemName)
	assert.Equal(t, "Envelopes", resp.Items[1].ItemName)
}

func TestDeleteItemKeepsTransactions(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.TestClerkJWT)

	itemID := addItem(t, testCtx, itemRequest("Twine", 12, 2))
	path := fmt.Sprintf("/api/inventory/%d", itemID)

	w := testutils.PerformRequest(testCtx.Router, http.MethodDelete, path, nil, headers)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(testCtx.Router, http.MethodDelete, path, nil, headers)
	assert.Equal(t, http.StatusNotFound, w.Code)

	transactions := listTransactions(t, testCtx, itemID)
	require.Len(t, transactions, 1)
	assert.Equal(t, 12, transactions[0].Quantity)
}

func TestConcurrentInventoryUpdates(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	headers := testutils.AuthHeaders(testCtx.TestClerkJWT)

	const opening = 50
	const numGoroutines = 10

	itemID := addItem(t, testCtx, itemRequest("Bubble Wrap", opening, 5))
	path := fmt.Sprintf("/api/inventory/%d", itemID)

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			w := testutils.PerformRequest(testCtx.Router, http.MethodPut, path, itemRequest("Bubble Wrap", 10*i, 5), headers)
			assert.Equal(t, http.StatusOK, w.Code)
		}(i)
	}
	wg.Wait()

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/inventory", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)

	var itemsResp models.InventoryItemsResponse
	testutils.DecodeJSON(t, w, &itemsResp)
	require.Len(t, itemsResp.Items, 1)
	final := itemsResp.Items[0].Quantity

	// Replaying the log must land on the stored quantity
	balance := 0
	for _, txn := range listTransactions(t, testCtx, itemID) {
		assert.Positive(t, txn.Quantity)
		switch txn.TransactionType {
		case models.TransactionPurchase:
			balance += txn.Quantity
		case models.TransactionUsage:
			balance -= txn.Quantity
		default:
			t.Fatalf("unexpected transaction type %q", txn.TransactionType)
		}
	}
	assert.Equal(t, final, balance)
}
