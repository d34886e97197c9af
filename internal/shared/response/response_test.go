package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/shared/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, path string, h gin.HandlerFunc) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	r := gin.New()
	r.GET(path, h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body ErrorResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestError_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		label  string
	}{
		{"not found", apperror.NotFound("User", "id", 9), http.StatusNotFound, "Not Found"},
		{"conflict", apperror.AlreadyExists("User", "email", "a@b.io"), http.StatusConflict, "Conflict"},
		{"validation", apperror.FieldError("email", "cannot be blank"), http.StatusBadRequest, "Validation Failed"},
		{"bad request", apperror.BadRequest("cart is empty"), http.StatusBadRequest, "Bad Request"},
		{"unauthorized", apperror.Unauthorized("bad credentials"), http.StatusUnauthorized, "Unauthorized"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := perform(t, "/api/users/9", func(c *gin.Context) { Error(c, tt.err) })

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.label, body.Error)
			assert.Equal(t, "/api/users/9", body.Path)
			assert.False(t, body.Timestamp.IsZero())
		})
	}
}

func TestError_ValidationFieldsOnlyForValidation(t *testing.T) {
	_, body := perform(t, "/x", func(c *gin.Context) { Error(c, apperror.FieldError("title", "too long")) })
	assert.Equal(t, map[string]string{"title": "too long"}, body.ValidationErrors)

	w, _ := perform(t, "/y", func(c *gin.Context) { Error(c, apperror.NotFound("Prompt", "id", 1)) })
	assert.NotContains(t, w.Body.String(), "validationErrors")
}

func TestError_UnknownDoesNotLeakMessage(t *testing.T) {
	_, body := perform(t, "/z", func(c *gin.Context) { Error(c, errors.New("pq: password authentication failed")) })
	assert.NotContains(t, body.Message, "password")
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 1, 2, 5)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(5), p.TotalElements)

	empty := NewPage[int](nil, 0, 20, 0)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestParseID(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", func(c *gin.Context) {
		id, ok := ParseID(c, "id")
		if ok {
			c.JSON(http.StatusOK, gin.H{"id": id})
		}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/12", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":12}`, w.Body.String())
}

func TestPagination(t *testing.T) {
	tests := []struct {
		query      string
		page, size int
	}{
		{"", 0, 20},
		{"?page=2&size=50", 2, 50},
		{"?page=-3&size=0", 0, 20},
		{"?size=1000", 0, 100},
		{"?page=922337203685477580&size=20", maxOffset / 20, 20},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/users"+tt.query, nil)

			page, size := Pagination(c)

			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.size, size)
			assert.GreaterOrEqual(t, page*size, 0)
		})
	}
}
