package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	api "github.com/gudang-mitra/gudang-api/internal/http"
	handler "github.com/gudang-mitra/gudang-api/internal/http/handlers"
	"github.com/gudang-mitra/gudang-api/internal/models"
)

func TestLoginHandler_Valid(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/login", handler.LoginPayload{
		Email:    "admin@gudang.test",
		Password: "secret",
	}, "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success true")
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Role != models.RoleAdmin {
		t.Errorf("expected admin role, got %q", resp.User.Role)
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/login", handler.LoginPayload{
		Email:    "admin@gudang.test",
		Password: "not-the-password",
	}, "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}

	var resp handler.FailureResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Success {
		t.Error("expected success false")
	}
	if resp.Message == "" {
		t.Error("expected a failure message")
	}
}

func TestLoginHandler_UnknownEmail(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/login", handler.LoginPayload{
		Email:    "nobody@gudang.test",
		Password: "secret",
	}, "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestLoginHandler_MissingFields(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/login", handler.LoginPayload{Email: "admin@gudang.test"}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestLoginHandler_MigratesLegacyPlaintext(t *testing.T) {
	r := api.NewRouter()

	legacy, err := userRepo.CreateUser(models.User{
		Name:         "Legacy",
		Email:        "legacy@gudang.test",
		PasswordHash: "old-plain-password",
		Role:         models.RoleUser,
	})
	if err != nil {
		t.Fatalf("fixture failed: %v", err)
	}

	w := doJSON(r, http.MethodPost, "/api/auth/login", handler.LoginPayload{
		Email:    "legacy@gudang.test",
		Password: "old-plain-password",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected legacy credentials to log in, got %d", w.Code)
	}

	stored, err := userRepo.GetByID(legacy.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Errorf("expected credential migrated to bcrypt, got %q", stored.PasswordHash)
	}

	// the migrated hash keeps working, the old value is gone for good
	w = doJSON(r, http.MethodPost, "/api/auth/login", handler.LoginPayload{
		Email:    "legacy@gudang.test",
		Password: "old-plain-password",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected migrated credentials to log in, got %d", w.Code)
	}
}

func TestRegisterHandler(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/register", handler.RegisterPayload{
		Name:     "New Person",
		Email:    "new.person@gudang.test",
		Password: "longenough",
	}, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	var resp handler.UserResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Role != models.RoleUser {
		t.Errorf("self-registration must always yield the user role, got %q", resp.Role)
	}

	// duplicate email conflicts
	w = doJSON(r, http.MethodPost, "/api/auth/register", handler.RegisterPayload{
		Name:     "New Person",
		Email:    "new.person@gudang.test",
		Password: "longenough",
	}, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 Conflict, got %d", w.Code)
	}
}

func TestRegisterHandler_ShortPassword(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/register", handler.RegisterPayload{
		Name:     "Shorty",
		Email:    "shorty@gudang.test",
		Password: "abc",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestCreateUserAsAdminHandler(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/admin/users", handler.CreateUserAsAdminPayload{
		Name:     "Floor Manager",
		Email:    "manager@gudang.test",
		Password: "longenough",
		Role:     models.RoleManager,
	}, adminToken)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.UserResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Role != models.RoleManager {
		t.Errorf("expected manager role, got %q", resp.Role)
	}
}

func TestCreateUserAsAdminHandler_InvalidRole(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/admin/users", handler.CreateUserAsAdminPayload{
		Name:     "Mystery",
		Email:    "mystery@gudang.test",
		Password: "longenough",
		Role:     "superuser",
	}, adminToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
}

func TestCreateUserAsAdminHandler_Forbidden(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/admin/users", handler.CreateUserAsAdminPayload{
		Name:     "Sneaky",
		Email:    "sneaky@gudang.test",
		Password: "longenough",
		Role:     models.RoleAdmin,
	}, userToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 Forbidden, got %d", w.Code)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/api/requests", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestProtectedRouteWithGarbageToken(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/api/requests", nil, "not.a.jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestLogoutHandler(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/logout", handler.RefreshPayload{}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request without a token, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/api/auth/logout", handler.RefreshPayload{RefreshToken: "any-token"}, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}
}
