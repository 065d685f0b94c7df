package access

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestDefaultTableGatesDeletesToAdmin(t *testing.T) {
	table := MustDefault()
	for _, entity := range []string{"services", "projects", "clients", "team-members", "teams", "blog", "testimonials", "contact"} {
		roles, ok := table.Roles(entity, "delete")
		if !ok {
			t.Fatalf("expected delete entry for %s", entity)
		}
		if len(roles) != 1 || roles[0] != RoleAdmin {
			t.Fatalf("expected only Admin to delete %s, got %v", entity, roles)
		}
	}
}

func TestAllowed(t *testing.T) {
	table := MustDefault()
	if !table.Allowed("projects", "create", []string{RoleManager}) {
		t.Fatal("expected Manager to create projects")
	}
	if table.Allowed("services", "create", []string{RoleManager}) {
		t.Fatal("expected Manager not to create services")
	}
	if table.Allowed("contact", "assign", []string{RoleEditor}) {
		t.Fatal("expected Editor not to assign contact submissions")
	}
	if table.Allowed("unknown", "create", []string{RoleAdmin}) {
		t.Fatal("expected undeclared entity to be denied")
	}
}

func TestParseRejectsUnknownRole(t *testing.T) {
	if _, err := Parse([]byte("blog:\n  create: [Owner]\n")); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestRequire(t *testing.T) {
	gin.SetMode(gin.TestMode)
	table := MustDefault()

	cases := []struct {
		name  string
		roles []string
		auth  bool
		want  int
	}{
		{"anonymous", nil, false, http.StatusUnauthorized},
		{"viewer", []string{RoleViewer}, true, http.StatusForbidden},
		{"editor", []string{RoleEditor}, true, http.StatusOK},
	}

	for _, tc := range cases {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if tc.auth {
				c.Set(httpkit.ContextUserIDKey, uuid.New())
				c.Set(httpkit.ContextRolesKey, tc.roles)
			}
		})
		r.POST("/blog", table.Require("blog", "create"), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/blog", nil))
		if w.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, w.Code)
		}
	}
}

func TestRequirePanicsOnUndeclaredPair(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustDefault().Require("blog", "launch")
}
