package audit

import (
	"net/http"
	"testing"

	"delivery-admin/internal/models"
	"delivery-admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRestaurant(t *testing.T, db *gorm.DB) models.Restaurant {
	t.Helper()
	r := models.Restaurant{Name: "Trattoria Roma", Slug: "trattoria-roma", DeliveryTimeMin: 30, IsActive: true}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func lastLog(t *testing.T, db *gorm.DB) models.AuditLog {
	t.Helper()
	var l models.AuditLog
	require.NoError(t, db.Order("id DESC").First(&l).Error)
	return l
}

func TestUndoUpdateRestoresBeforeImage(t *testing.T) {
	db := testutil.SetupDB(t)
	before := seedRestaurant(t, db)

	after := before
	after.Name = "Trattoria Milano"
	require.NoError(t, db.Save(&after).Error)
	require.NoError(t, WriteLog(db, LogOptions{
		UserID: testutil.UserID, EntityType: EntityRestaurant, EntityID: before.ID,
		Action: models.AuditActionUpdate, Before: before, After: after,
	}))
	entry := lastLog(t, db)

	require.NoError(t, UndoLog(entry.ID, testutil.UserID, testutil.UserName))

	var got models.Restaurant
	require.NoError(t, db.First(&got, "id = ?", before.ID).Error)
	assert.Equal(t, "Trattoria Roma", got.Name)

	require.NoError(t, db.First(&entry, entry.ID).Error)
	assert.True(t, entry.IsUndone)
	require.NotNil(t, entry.UndoneBy)
	assert.Equal(t, testutil.UserID, *entry.UndoneBy)

	undo := lastLog(t, db)
	assert.Equal(t, models.AuditActionUndo, undo.Action)
	assert.True(t, undo.Undone)

	assert.ErrorIs(t, UndoLog(entry.ID, testutil.UserID, testutil.UserName), ErrAlreadyUndone)
}

func TestUndoCreateAndDelete(t *testing.T) {
	db := testutil.SetupDB(t)
	r := seedRestaurant(t, db)

	require.NoError(t, WriteLog(db, LogOptions{
		EntityType: EntityRestaurant, EntityID: r.ID, Action: models.AuditActionCreate, After: r,
	}))
	require.NoError(t, UndoLog(lastLog(t, db).ID, testutil.UserID, testutil.UserName))

	var count int64
	db.Model(&models.Restaurant{}).Where("id = ?", r.ID).Count(&count)
	assert.Zero(t, count)

	require.NoError(t, WriteLog(db, LogOptions{
		EntityType: EntityRestaurant, EntityID: r.ID, Action: models.AuditActionDelete, Before: r,
	}))
	require.NoError(t, UndoLog(lastLog(t, db).ID, testutil.UserID, testutil.UserName))

	var restored models.Restaurant
	require.NoError(t, db.First(&restored, "id = ?", r.ID).Error)
	assert.Equal(t, r.Slug, restored.Slug)
}

func TestUndoUnknownEntity(t *testing.T) {
	db := testutil.SetupDB(t)
	require.NoError(t, WriteLog(db, LogOptions{
		EntityType: "invoice", EntityID: "x", Action: models.AuditActionCreate,
	}))
	assert.ErrorIs(t, UndoLog(lastLog(t, db).ID, testutil.UserID, testutil.UserName), ErrUnknownEntity)
}

func TestAuditHandlers(t *testing.T) {
	db := testutil.SetupDB(t)
	r := seedRestaurant(t, db)
	require.NoError(t, WriteLog(db, LogOptions{
		EntityType: EntityRestaurant, EntityID: r.ID, Action: models.AuditActionCreate, After: r,
	}))
	require.NoError(t, WriteLog(db, LogOptions{
		EntityType: EntityRider, EntityID: "other", Action: models.AuditActionCreate,
	}))

	app := testutil.NewApp()
	app.Get("/api/audit-logs", ListAuditLogsHandler())
	app.Post("/api/audit-logs/:id/undo", UndoAuditLogHandler())

	status, body := testutil.Do(t, app, http.MethodGet, "/api/audit-logs?entity_type=restaurant", nil)
	require.Equal(t, http.StatusOK, status)
	logs := testutil.Decode[[]AuditLogResponse](t, body)
	require.Len(t, logs, 1)
	assert.Equal(t, r.ID, logs[0].EntityID)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/audit-logs/999/undo", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = testutil.Do(t, app, http.MethodPost, "/api/audit-logs/abc/undo", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
