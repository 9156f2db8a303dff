package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-bot/internal/models"
)

func TestPageParams(t *testing.T) {
	cases := []struct {
		query               string
		page, limit, offset int
	}{
		{"", 1, 50, 0},
		{"?page=3&limit=20", 3, 20, 40},
		{"?page=-1&limit=1000", 1, 50, 0},
		{"?page=abc&limit=0", 1, 50, 0},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)

		page, limit, offset := pageParams(c)
		if page != tc.page || limit != tc.limit || offset != tc.offset {
			t.Errorf("%q: got %d/%d/%d", tc.query, page, limit, offset)
		}
	}
}

func TestIDReflection(t *testing.T) {
	salon := models.Salon{ID: 4}
	if id := idOf(&salon); id == nil || *id != 4 {
		t.Fatalf("unexpected id %v", id)
	}

	setID(&salon, 9)
	if salon.ID != 9 {
		t.Fatalf("setID did not update, got %d", salon.ID)
	}

	var noID struct{ Name string }
	if idOf(&noID) != nil {
		t.Fatal("expected nil for a struct without ID")
	}
}
