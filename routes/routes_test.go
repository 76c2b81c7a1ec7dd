package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	tokens map[models.Role]string
}

func newTestApp(db *gorm.DB) *App {
	locks := services.NewRoomLocks()
	users := services.NewUserService(db)
	tasks := services.NewTaskService(db)
	inventory := services.NewInventoryService(db)
	finance := services.NewFinanceService(db)
	bookings := services.NewBookingService(db, locks)
	rooms := services.NewRoomService(db, locks)
	return &App{
		Auth:      services.NewAuthService(users, services.NewDBTokenStore(db), "routes-test-secret", 0, 0),
		Users:     users,
		Inventory: inventory,
		Tasks:     tasks,
		Rooms:     rooms,
		Bookings:  bookings,
		Finance:   finance,
		Calendar:  services.NewCalendarService(db),
		Dashboard: services.NewDashboardService(tasks, inventory, finance, bookings, rooms),
	}
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	app := newTestApp(db)
	s := &testServer{
		router: SetupRouter(app, []string{"http://localhost:3000"}),
		db:     db,
		tokens: map[models.Role]string{},
	}

	for _, role := range []models.Role{models.RoleAdmin, models.RoleStaff, models.RoleAccountant} {
		username, password, r := string(role)+"-user", "password1", role
		_, err := app.Users.Create(context.Background(), services.UserFields{Username: &username, Password: &password, Role: &r})
		require.NoError(t, err)

		w := s.request(t, http.MethodPost, "/api/token/", "", gin.H{"username": username, "password": password})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var pair services.TokenPair
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
		s.tokens[role] = pair.Access
	}
	return s
}

func (s *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) as(t *testing.T, role models.Role, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return s.request(t, method, path, s.tokens[role], body)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := setupServer(t)
	w := s.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTokenEndpoints(t *testing.T) {
	s := setupServer(t)

	w := s.request(t, http.MethodPost, "/api/token/", "", gin.H{"username": "staff-user", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.request(t, http.MethodPost, "/api/token/", "", gin.H{"username": "staff-user"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.request(t, http.MethodPost, "/api/token", "", gin.H{"username": "staff-user", "password": "password1"})
	require.Equal(t, http.StatusOK, w.Code)
	refresh := decode(t, w)["refresh"].(string)

	w = s.request(t, http.MethodPost, "/api/token/refresh/", "", gin.H{"refresh": refresh})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["access"])

	w = s.request(t, http.MethodPost, "/api/token/refresh/", "", gin.H{"refresh": refresh})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.as(t, models.RoleStaff, http.MethodGet, "/api/users/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode(t, w)
	assert.Equal(t, "staff-user", me["username"])
	assert.NotContains(t, me, "password")
}

func TestRoleAccess(t *testing.T) {
	s := setupServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.request(t, http.MethodGet, "/api/rooms", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.as(t, models.RoleAccountant, http.MethodGet, "/api/rooms", nil).Code)
	assert.Equal(t, http.StatusOK, s.as(t, models.RoleStaff, http.MethodGet, "/api/rooms", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.as(t, models.RoleStaff, http.MethodGet, "/api/transactions", nil).Code)
	assert.Equal(t, http.StatusOK, s.as(t, models.RoleAccountant, http.MethodGet, "/api/transactions", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.as(t, models.RoleStaff, http.MethodGet, "/api/users", nil).Code)
	assert.Equal(t, http.StatusOK, s.as(t, models.RoleAdmin, http.MethodGet, "/api/users", nil).Code)
	assert.Equal(t, http.StatusOK, s.as(t, models.RoleAccountant, http.MethodGet, "/api/tasks", nil).Code)
	assert.Equal(t, http.StatusOK, s.as(t, models.RoleAccountant, http.MethodGet, "/api/dashboard/", nil).Code)
}

func TestBookingFlow(t *testing.T) {
	s := setupServer(t)

	w := s.as(t, models.RoleStaff, http.MethodPost, "/api/rooms", gin.H{
		"room_number": "101", "room_type": "double", "capacity": 2, "rate_per_night": "1500",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	roomID := decode(t, w)["id"]

	w = s.as(t, models.RoleStaff, http.MethodPost, "/api/rooms", gin.H{"room_number": "101", "room_type": "double"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.as(t, models.RoleStaff, http.MethodPost, "/api/bookings", gin.H{
		"room": roomID, "guest_name": "Maria Santos", "check_in_date": "2024-06-01", "check_out_date": "2024-06-05", "status": "confirmed",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode(t, w)
	assert.Equal(t, "confirmed", booking["status"])
	assert.Equal(t, "101", booking["room_number"])
	assert.Equal(t, "6000", booking["total_amount"])
	assert.Equal(t, "staff-user", booking["created_by_name"])
	bookingID := int(booking["id"].(float64))

	w = s.as(t, models.RoleStaff, http.MethodPost, "/api/bookings", gin.H{
		"room": roomID, "guest_name": "Late Guest", "check_in_date": "2024-06-04", "check_out_date": "2024-06-06",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "already booked")

	w = s.as(t, models.RoleStaff, http.MethodPost, "/api/bookings", gin.H{
		"room": roomID, "guest_name": "Next Guest", "check_in_date": "2024-06-05", "check_out_date": "2024-06-08",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.as(t, models.RoleStaff, http.MethodGet, "/api/rooms/availability?check_in=2024-06-02&check_out=2024-06-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.as(t, models.RoleStaff, http.MethodGet, "/api/rooms/availability?check_in=2024-06-02", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	path := "/api/bookings/" + strconv.Itoa(bookingID)
	w = s.as(t, models.RoleStaff, http.MethodPost, path+"/check_in", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "checked_in", decode(t, w)["status"])

	w = s.as(t, models.RoleStaff, http.MethodPost, path+"/check_in", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.as(t, models.RoleStaff, http.MethodGet, "/api/rooms?status=occupied", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var occupied []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &occupied))
	assert.Len(t, occupied, 1)

	w = s.as(t, models.RoleStaff, http.MethodPost, path+"/check_out", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "checked_out", decode(t, w)["status"])

	w = s.as(t, models.RoleStaff, http.MethodPost, path+"/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.as(t, models.RoleStaff, http.MethodGet, "/api/bookings/calendar_view?start=2024-06-01&end=2024-06-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Len(t, view, 1)

	assert.Equal(t, http.StatusNotFound, s.as(t, models.RoleStaff, http.MethodGet, "/api/bookings/999", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.as(t, models.RoleStaff, http.MethodGet, "/api/bookings/abc", nil).Code)

	w = s.as(t, models.RoleStaff, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Booking deleted", decode(t, w)["message"])
}

func TestInventoryRestockEndpoint(t *testing.T) {
	s := setupServer(t)

	w := s.as(t, models.RoleStaff, http.MethodPost, "/api/inventory-categories", gin.H{"name": "Toiletries"})
	require.Equal(t, http.StatusCreated, w.Code)
	catID := decode(t, w)["id"]

	w = s.as(t, models.RoleStaff, http.MethodPost, "/api/inventory-items", gin.H{
		"category": catID, "name": "Shampoo", "quantity": 5, "unit": "bottles", "restock_threshold": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode(t, w)
	assert.Equal(t, true, item["needs_restock"])
	path := "/api/inventory-items/" + strconv.Itoa(int(item["id"].(float64)))

	w = s.as(t, models.RoleStaff, http.MethodGet, "/api/inventory-items/low_stock", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var low []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &low))
	assert.Len(t, low, 1)

	w = s.as(t, models.RoleStaff, http.MethodPost, path+"/restock", gin.H{"quantity": -3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.as(t, models.RoleStaff, http.MethodPost, path+"/restock", gin.H{"quantity": 20})
	require.Equal(t, http.StatusOK, w.Code)
	item = decode(t, w)
	assert.Equal(t, float64(25), item["quantity"])
	assert.Equal(t, false, item["needs_restock"])
	assert.NotNil(t, item["last_restocked"])
}

func TestFinanceEndpoints(t *testing.T) {
	s := setupServer(t)

	w := s.as(t, models.RoleAccountant, http.MethodGet, "/api/transactions/summary?year=2024&month=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode(t, w)
	assert.Equal(t, "0", summary["income"])
	assert.Equal(t, "0", summary["profit"])

	w = s.as(t, models.RoleAccountant, http.MethodPost, "/api/financial-categories", gin.H{"name": "Room Booking", "type": "income"})
	require.Equal(t, http.StatusCreated, w.Code)
	catID := decode(t, w)["id"]

	w = s.as(t, models.RoleAccountant, http.MethodPost, "/api/transactions", gin.H{
		"category": catID, "amount": "2500", "date": "2024-02-14", "description": "Valentine package",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	txn := decode(t, w)
	assert.Equal(t, "income", txn["transaction_type"])
	assert.Contains(t, txn["reference_number"], "TXN-")
	assert.Equal(t, "accountant-user", txn["recorded_by_name"])

	w = s.as(t, models.RoleAccountant, http.MethodPost, "/api/transactions", gin.H{
		"category": catID, "amount": "0", "description": "nothing",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.as(t, models.RoleAccountant, http.MethodGet, "/api/transactions/summary?year=2024&month=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2500", decode(t, w)["income"])

	w = s.as(t, models.RoleAccountant, http.MethodGet, "/api/transactions/summary?year=2024&month=13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.as(t, models.RoleAccountant, http.MethodGet, "/api/transactions/monthly_breakdown?year=2024", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var months []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &months))
	require.Len(t, months, 12)
	assert.Equal(t, "2500", months[1]["income"])
}

func TestTasksAndCalendar(t *testing.T) {
	s := setupServer(t)

	w := s.as(t, models.RoleStaff, http.MethodPost, "/api/tasks", gin.H{"title": "Clean pool", "priority": "high", "due_date": "2024-06-10"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	taskID := int(decode(t, w)["id"].(float64))

	w = s.as(t, models.RoleStaff, http.MethodPost, "/api/tasks/"+strconv.Itoa(taskID)+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	task := decode(t, w)
	assert.Equal(t, "completed", task["status"])
	assert.NotNil(t, task["completed_at"])

	w = s.as(t, models.RoleStaff, http.MethodPost, "/api/calendar-events", gin.H{
		"title": "Aircon service", "event_type": "maintenance", "start_datetime": "2024-06-03T09:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.as(t, models.RoleStaff, http.MethodGet, "/api/calendar-events?start=2024-06-01T00:00:00Z&end=2024-06-30T00:00:00Z", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	assert.Len(t, events, 1)
}

func TestUserAdministration(t *testing.T) {
	s := setupServer(t)

	w := s.as(t, models.RoleAdmin, http.MethodPost, "/api/users", gin.H{"username": "newhire", "password": "welcome1", "role": "staff"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := int(decode(t, w)["id"].(float64))

	w = s.as(t, models.RoleAdmin, http.MethodPost, "/api/users", gin.H{"username": "newhire", "password": "welcome1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.as(t, models.RoleAdmin, http.MethodDelete, "/api/users/"+strconv.Itoa(id), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.as(t, models.RoleAdmin, http.MethodGet, "/api/users/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	adminID := int(decode(t, w)["id"].(float64))
	w = s.as(t, models.RoleAdmin, http.MethodDelete, "/api/users/"+strconv.Itoa(adminID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPagesRequireLogin(t *testing.T) {
	s := setupServer(t)

	w := s.request(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = s.request(t, http.MethodGet, "/login", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<form")
}
