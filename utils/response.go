package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONList writes a collection with its count and, when given, pagination.
func JSONList(c *gin.Context, code int, count int, pagination interface{}, data interface{}) {
	body := gin.H{"success": true, "count": count, "data": data}
	if pagination != nil {
		body["pagination"] = pagination
	}
	c.JSON(code, body)
}

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// AbortJSONError stops the handler chain with an error envelope.
func AbortJSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "error": message})
}
