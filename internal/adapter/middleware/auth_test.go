package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	userDomain "gmfn-backend/internal/domain/user"
	"gmfn-backend/internal/testutil/usermock"
)

func runRequireUser(t *testing.T, users *usermock.Repo, userID string) (*httptest.ResponseRecorder, *userDomain.User) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *userDomain.User
	h := RequireUser(users)(func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.NoContent(http.StatusNoContent)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, seen
}

func TestRequireUser(t *testing.T) {
	known := &usermock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*userDomain.User, error) {
			return &userDomain.User{ID: id, Email: "a@b.c"}, nil
		},
	}

	t.Run("missing header", func(t *testing.T) {
		rec, _ := runRequireUser(t, known, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec, _ := runRequireUser(t, known, "abc")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("zero id", func(t *testing.T) {
		rec, _ := runRequireUser(t, known, "0")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		users := &usermock.Repo{
			GetByIDFn: func(ctx context.Context, id uint64) (*userDomain.User, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		rec, _ := runRequireUser(t, users, "7")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("lookup failure", func(t *testing.T) {
		users := &usermock.Repo{
			GetByIDFn: func(ctx context.Context, id uint64) (*userDomain.User, error) {
				return nil, errors.New("connection refused")
			},
		}
		rec, _ := runRequireUser(t, users, "7")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rec.Code)
		}
	})

	t.Run("resolves caller", func(t *testing.T) {
		rec, seen := runRequireUser(t, known, "7")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if seen == nil || seen.ID != 7 {
			t.Fatalf("caller not set: %+v", seen)
		}
	})
}
