package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/gudang-mitra/gudang-api/internal/auth"
	api "github.com/gudang-mitra/gudang-api/internal/http"
	handler "github.com/gudang-mitra/gudang-api/internal/http/handlers"
	rl "github.com/gudang-mitra/gudang-api/internal/http/rate_limiter"
	"github.com/gudang-mitra/gudang-api/internal/models"
	"github.com/gudang-mitra/gudang-api/internal/repo"
)

var (
	adminToken string
	userToken  string

	itemRepo         *repo.InMemoryItemRepository
	movementRepo     *repo.InMemoryMovementRepository
	requestRepo      *repo.InMemoryRequestRepository
	loanRepo         *repo.InMemoryLoanRepository
	notificationRepo *repo.InMemoryNotificationRepository
	userRepo         *repo.InMemoryUserRepository

	regularUserID int
)

func init() {
	auth.Configure([]byte("test-secret"), 0)
	rl.Configure(10000, 10000)
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	adminToken, err = generateToken(r, "admin@gudang.test", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating admin token: %v", err))
	}
	userToken, err = generateToken(r, "staff@gudang.test", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating user token: %v", err))
	}
}

func setupTestRepos(password string) {
	itemRepo = repo.NewInMemoryItemRepository()
	handler.SetItemRepo(itemRepo)

	movementRepo = repo.NewInMemoryMovementRepository()
	handler.SetMovementRepo(movementRepo)

	requestRepo = repo.NewInMemoryRequestRepository(itemRepo, movementRepo)
	handler.SetRequestRepo(requestRepo)

	loanRepo = repo.NewInMemoryLoanRepository(itemRepo, movementRepo)
	handler.SetLoanRepo(loanRepo)

	categoryRepo := repo.NewInMemoryCategoryRepository()
	handler.SetCategoryRepo(categoryRepo)

	notificationRepo = repo.NewInMemoryNotificationRepository()
	handler.SetNotificationRepo(notificationRepo)

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := auth.HashPassword(password)
	userRepo.CreateUser(models.User{
		Name:         "Admin",
		Email:        "admin@gudang.test",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	})
	staff, _ := userRepo.CreateUser(models.User{
		Name:         "Staff",
		Email:        "staff@gudang.test",
		PasswordHash: hash,
		Role:         models.RoleUser,
	})
	regularUserID = staff.ID

	statsRepo := repo.NewInMemoryStatsRepository()
	handler.SetStatsRepo(statsRepo)
	statsRepo.SetRepositories(itemRepo, userRepo, requestRepo, loanRepo)
}

func clearAllItems() {
	itemRepo.Clear()
	movementRepo.Clear()
	// low stock alerts hang off items
	notificationRepo.Clear()
}

func clearAllRequests() {
	requestRepo.Clear()
	notificationRepo.Clear()
}

func clearAllLoans() {
	loanRepo.Clear()
}

func generateToken(r http.Handler, email, password string) (string, error) {
	payload := handler.LoginPayload{Email: email, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login returned no token (status %d)", w.Code)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any, token string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createItem(r http.Handler, i handler.ItemRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/api/items", i, adminToken)
}

func mustCreateItem(r http.Handler, i handler.ItemRequest) handler.ItemResponse {
	w := createItem(r, i)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("item fixture failed with status %d: %s", w.Code, w.Body.String()))
	}
	var resp handler.ItemResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("error decoding item fixture: %v", err))
	}
	return resp
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
