package response

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseID reads a positive int64 path parameter. On failure it writes a
// 400 response and returns false.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(c, "Invalid "+name+": "+c.Param(name))
		return 0, false
	}
	return id, true
}

// BindJSON decodes the request body. Malformed JSON writes a 400 response.
func BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		BadRequest(c, "Malformed request body: "+err.Error())
		return false
	}
	return true
}

// maxOffset bounds page*size so the row offset stays positive.
const maxOffset = math.MaxInt32

// Pagination reads page (zero-based) and size query parameters.
// size defaults to 20 and is capped at 100; page is clamped so the
// resulting offset never exceeds maxOffset.
func Pagination(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	if page < 0 {
		page = 0
	}
	size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	if page > maxOffset/size {
		page = maxOffset / size
	}
	return page, size
}
