package orders

import (
	"net/http"
	"testing"
	"time"

	"delivery-admin/internal/models"
	"delivery-admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeCustomers(t *testing.T) {
	now := time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{UserID: "a", Total: 10, Base: models.Base{CreatedAt: now.AddDate(0, 0, -90)}},
		{UserID: "a", Total: 15, Base: models.Base{CreatedAt: now.AddDate(0, 0, -2)}},
		{UserID: "b", Total: 20, Base: models.Base{CreatedAt: now.AddDate(0, 0, -45)}},
	}

	got := summarizeCustomers(orders, now)
	assert.Equal(t, CustomerStats{Total: 2, Active: 1}, got.Stats)
	require.Len(t, got.Customers, 2)

	first := got.Customers[0]
	assert.Equal(t, "a", first.UserID)
	assert.Equal(t, 2, first.OrderCount)
	assert.InDelta(t, 25, first.TotalSpent, 0.001)
	assert.Equal(t, now.AddDate(0, 0, -90), first.FirstOrderAt)
	assert.Equal(t, now.AddDate(0, 0, -2), first.LastOrderAt)
}

func TestListCustomersAttachesEmails(t *testing.T) {
	db := testutil.SetupDB(t)
	seedOrder(t, db)
	app, _ := orderApp(t)

	require.NoError(t, db.Create(&models.UserProfile{ID: customerID, Email: "giulia@example.com"}).Error)

	status, body := testutil.Do(t, app, http.MethodGet, "/api/customers", nil)
	require.Equal(t, http.StatusOK, status)

	got := testutil.Decode[CustomersResponse](t, body)
	assert.Equal(t, CustomerStats{Total: 1, Active: 1}, got.Stats)
	require.Len(t, got.Customers, 1)
	require.NotNil(t, got.Customers[0].Email)
	assert.Equal(t, "giulia@example.com", *got.Customers[0].Email)
}

func TestListCustomersEmpty(t *testing.T) {
	testutil.SetupDB(t)
	app, _ := orderApp(t)

	status, body := testutil.Do(t, app, http.MethodGet, "/api/customers", nil)
	require.Equal(t, http.StatusOK, status)
	got := testutil.Decode[CustomersResponse](t, body)
	assert.Empty(t, got.Customers)
	assert.Zero(t, got.Stats.Total)
}
