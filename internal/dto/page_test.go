package dto

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paginationFor(t *testing.T, query string) (int, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Pagination(c)
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantPage int
		wantSize int
	}{
		{"defaults", "", 0, 20},
		{"explicit", "page=3&size=50", 3, 50},
		{"negative page clamps to zero", "page=-1", 0, 20},
		{"zero size falls back to default", "size=0", 0, 20},
		{"oversized clamps to max", "size=1000", 0, 100},
		{"garbage falls back", "page=abc&size=xyz", 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, size := paginationFor(t, tt.query)
			if page != tt.wantPage || size != tt.wantSize {
				t.Errorf("Pagination(%q) = (%d, %d), want (%d, %d)",
					tt.query, page, size, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestJoinRequestValidate(t *testing.T) {
	valid := JoinRequest{Username: "alice", Password: "password123"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	invalid := JoinRequest{Username: "al ice", Password: "password123"}
	if err := invalid.Validate(); err == nil {
		t.Error("Validate() = nil, want error for whitespace in username")
	}
}
