package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Eurie-R/IMS-CristinaVilla/models"
	"github.com/Eurie-R/IMS-CristinaVilla/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubParser accepts the tokens in its map.
type stubParser map[string]*services.Claims

func (p stubParser) ParseAccess(token string) (*services.Claims, error) {
	if claims, ok := p[token]; ok {
		return claims, nil
	}
	return nil, errors.New("bad token")
}

var parser = stubParser{
	"admin":      {UserID: 1, Role: models.RoleAdmin},
	"staff":      {UserID: 2, Role: models.RoleStaff},
	"accountant": {UserID: 3, Role: models.RoleAccountant},
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ok := func(c *gin.Context) {
		id := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user": *id})
	}

	api := r.Group("/api", RequireAuth(parser))
	api.GET("/tasks", ok)
	api.GET("/transactions", RequirePermission(ManageFinance), ok)
	api.GET("/bookings", RequirePermission(ManageBookings), ok)
	api.GET("/users", RequirePermission(ManageUsers), ok)

	r.GET("/", RequirePageAuth(parser), ok)
	r.GET("/unguarded", RequirePermission(ManageFinance), ok)
	return r
}

func do(r http.Handler, path, token string, cookie bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		if cookie {
			req.AddCookie(&http.Cookie{Name: AccessCookie, Value: token})
		} else {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := newRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/tasks", "", false).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/api/tasks", "forged", false).Code)

	w := do(r, "/api/tasks", "staff", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":2}`, w.Body.String())

	assert.Equal(t, http.StatusOK, do(r, "/api/tasks", "accountant", true).Code)
}

func TestRequirePermission(t *testing.T) {
	r := newRouter()

	cases := []struct {
		path, token string
		want        int
	}{
		{"/api/transactions", "accountant", http.StatusOK},
		{"/api/transactions", "admin", http.StatusOK},
		{"/api/transactions", "staff", http.StatusForbidden},
		{"/api/bookings", "staff", http.StatusOK},
		{"/api/bookings", "accountant", http.StatusForbidden},
		{"/api/users", "admin", http.StatusOK},
		{"/api/users", "staff", http.StatusForbidden},
		{"/api/users", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		w := do(r, tc.path, tc.token, false)
		assert.Equal(t, tc.want, w.Code, "%s as %q", tc.path, tc.token)
		if tc.want == http.StatusForbidden {
			assert.Contains(t, w.Body.String(), `"error":"forbidden"`)
		}
	}

	assert.Equal(t, http.StatusUnauthorized, do(r, "/unguarded", "admin", false).Code)
}

func TestRequirePageAuthRedirects(t *testing.T) {
	r := newRouter()

	w := do(r, "/", "", false)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	assert.Equal(t, http.StatusOK, do(r, "/", "staff", true).Code)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(models.RoleAdmin, ManageUsers))
	assert.True(t, HasPermission(models.RoleStaff, ManageRooms))
	assert.False(t, HasPermission(models.RoleStaff, ManageFinance))
	assert.False(t, HasPermission(models.RoleAccountant, ManageInventory))
	assert.False(t, HasPermission(models.Role("guest"), ManageInventory))
}
