package riders

import (
	"errors"
	"net/http"
	"testing"

	"delivery-admin/internal/models"
	"delivery-admin/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func riderApp() *fiber.App {
	app := testutil.NewApp()
	app.Get("/api/riders", ListRidersHandler())
	app.Get("/api/riders/linked-users", LinkedUsersHandler())
	app.Get("/api/riders/:id", GetRiderHandler())
	app.Post("/api/riders", CreateRiderHandler())
	app.Put("/api/riders/:id", UpdateRiderHandler())
	app.Delete("/api/riders/:id", DeleteRiderHandler())
	return app
}

func TestCreateRiderDefaults(t *testing.T) {
	db := testutil.SetupDB(t)
	app := riderApp()

	status, body := testutil.Do(t, app, http.MethodPost, "/api/riders", map[string]any{
		"name": " Marco ", "vehicle_type": "Scooter", "user_id": "",
	})
	require.Equal(t, http.StatusCreated, status, string(body))

	r := testutil.Decode[models.Rider](t, body)
	assert.Equal(t, "Marco", r.Name)
	assert.Equal(t, "scooter", r.VehicleType)
	assert.Nil(t, r.UserID)
	assert.True(t, r.IsActive)
	assert.True(t, r.IsAvailable)

	var logs int64
	db.Model(&models.AuditLog{}).Where("entity_type = ?", "rider").Count(&logs)
	assert.EqualValues(t, 1, logs)
}

func TestCreateRiderValidation(t *testing.T) {
	testutil.SetupDB(t)
	app := riderApp()

	status, body := testutil.Do(t, app, http.MethodPost, "/api/riders", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Name is required", testutil.ErrorMessage(t, body))

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/riders", map[string]any{"name": "Marco", "vehicle_type": "truck"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUpdateRiderKeepsIdentity(t *testing.T) {
	db := testutil.SetupDB(t)
	app := riderApp()

	r := models.Rider{Name: "Sara", VehicleType: "bike", IsActive: true, IsAvailable: true}
	require.NoError(t, db.Create(&r).Error)

	status, body := testutil.Do(t, app, http.MethodPut, "/api/riders/"+r.ID, map[string]any{
		"name": "Sara B.", "vehicle_type": "car", "is_available": false, "current_latitude": "45.46",
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var got models.Rider
	require.NoError(t, db.First(&got, "id = ?", r.ID).Error)
	assert.Equal(t, "Sara B.", got.Name)
	assert.Equal(t, "car", got.VehicleType)
	assert.False(t, got.IsAvailable)
	require.NotNil(t, got.CurrentLatitude)
	assert.InDelta(t, 45.46, *got.CurrentLatitude, 0.0001)
	assert.Equal(t, r.CreatedAt.Unix(), got.CreatedAt.Unix())

	status, _ = testutil.Do(t, app, http.MethodPut, "/api/riders/missing", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteRiderUnassignsOrders(t *testing.T) {
	db := testutil.SetupDB(t)
	app := riderApp()

	rest := models.Restaurant{Name: "Osteria", Slug: "osteria", IsActive: true}
	require.NoError(t, db.Create(&rest).Error)
	r := models.Rider{Name: "Paolo", IsActive: true}
	require.NoError(t, db.Create(&r).Error)
	o := models.Order{
		UserID: testutil.UserID, RestaurantID: rest.ID, OrderNumber: "ORD-1",
		Status: models.OrderOutForDelivery, RiderID: &r.ID,
	}
	require.NoError(t, db.Create(&o).Error)

	status, _ := testutil.Do(t, app, http.MethodDelete, "/api/riders/"+r.ID, nil)
	require.Equal(t, http.StatusNoContent, status)

	var got models.Order
	require.NoError(t, db.First(&got, "id = ?", o.ID).Error)
	assert.Nil(t, got.RiderID)
}

func TestDeleteRiderFailureKeepsAssignments(t *testing.T) {
	db := testutil.SetupDB(t)
	app := riderApp()

	rest := models.Restaurant{Name: "Osteria", Slug: "osteria", IsActive: true}
	require.NoError(t, db.Create(&rest).Error)
	r := models.Rider{Name: "Paolo", IsActive: true}
	require.NoError(t, db.Create(&r).Error)
	o := models.Order{
		UserID: testutil.UserID, RestaurantID: rest.ID, OrderNumber: "ORD-2",
		Status: models.OrderOutForDelivery, RiderID: &r.ID,
	}
	require.NoError(t, db.Create(&o).Error)

	err := db.Callback().Delete().Before("gorm:delete").Register("test:fail_rider_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "riders" {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	require.NoError(t, err)

	status, _ := testutil.Do(t, app, http.MethodDelete, "/api/riders/"+r.ID, nil)
	require.Equal(t, http.StatusInternalServerError, status)

	var count int64
	db.Model(&models.Rider{}).Where("id = ?", r.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	var got models.Order
	require.NoError(t, db.First(&got, "id = ?", o.ID).Error)
	require.NotNil(t, got.RiderID)
	assert.Equal(t, r.ID, *got.RiderID)
}

func TestLinkedUsers(t *testing.T) {
	db := testutil.SetupDB(t)
	app := riderApp()

	uid := testutil.UserID
	require.NoError(t, db.Create(&models.Rider{Name: "Linked", UserID: &uid}).Error)
	require.NoError(t, db.Create(&models.Rider{Name: "Unlinked"}).Error)

	status, body := testutil.Do(t, app, http.MethodGet, "/api/riders/linked-users", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []LinkedUser{{ID: uid, Email: "Linked"}}, testutil.Decode[[]LinkedUser](t, body))
}
