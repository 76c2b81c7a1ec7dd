package middleware

import (
	"net/http"

	"github.com/Eurie-R/IMS-CristinaVilla/models"

	"github.com/gin-gonic/gin"
)

type Permission string

const (
	ManageInventory Permission = "inventory.manage"
	ManageRooms     Permission = "rooms.manage"
	ManageBookings  Permission = "bookings.manage"
	ManageFinance   Permission = "finance.manage"
	ManageUsers     Permission = "users.manage"
)

var rolePermissions = map[models.Role][]Permission{
	models.RoleAdmin:      {ManageInventory, ManageRooms, ManageBookings, ManageFinance, ManageUsers},
	models.RoleStaff:      {ManageInventory, ManageRooms, ManageBookings},
	models.RoleAccountant: {ManageFinance},
}

// HasPermission reports whether role grants p.
func HasPermission(role models.Role, p Permission) bool {
	for _, granted := range rolePermissions[role] {
		if granted == p {
			return true
		}
	}
	return false
}

// RequirePermission must run after RequireAuth or RequirePageAuth.
func RequirePermission(p Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !HasPermission(claims.Role, p) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "you do not have permission to perform this action",
			})
			return
		}
		c.Next()
	}
}
