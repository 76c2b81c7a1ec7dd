package utils

import "github.com/gin-gonic/gin"

func JSONMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

func JSONErrorDetails(c *gin.Context, code int, message, details string) {
	c.JSON(code, gin.H{"error": message, "details": details})
}
