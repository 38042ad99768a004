package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogapi/internal/auth"
	intconfig "blogapi/internal/config"
	"blogapi/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	mock.MatchExpectationsInOrder(false)

	env := intconfig.Env{JWTSecret: testSecret, JWTTTL: time.Hour}
	return NewRouter(env, db), mock, db
}

func issueToken(t *testing.T, uuid string, role string) string {
	t.Helper()
	codec := auth.NewCodec(auth.Config{Secret: []byte(testSecret), TTL: time.Hour})
	token, err := codec.Issue(auth.Claims{Email: uuid + "@example.com", Role: role, IsActive: true, UUID: uuid})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	return token
}

func expectUserByUUID(mock sqlmock.Sqlmock, uuid, role string, active bool) {
	mock.ExpectQuery("FROM users WHERE uuid").WithArgs(uuid).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "uuid", "name", "email", "role", "is_active", "created_at"}).
			AddRow(1, uuid, "Test User", uuid+"@example.com", role, active, "2025-01-01 00:00:00"))
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, w.Body.String())
	}
	return body
}

func TestAnonymousPostListSeesOnlyPublished(t *testing.T) {
	r, mock, db := newTestRouter(t)
	defer db.Close()

	mock.ExpectQuery("FROM posts p").WithArgs("PUBLISHED").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "title", "content", "status", "author_id", "name", "created_at", "updated_at"}).
			AddRow(1, "Hello", "Body", "PUBLISHED", 1, "Alice", "2025-01-01 00:00:00", "2025-01-01 00:00:00").
			AddRow(2, "World", "Body", "PUBLISHED", 1, "Alice", "2025-01-02 00:00:00", "2025-01-02 00:00:00"))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}

	body := decode(t, w)
	data := body["data"].([]any)
	if int(body["results"].(float64)) != len(data) || len(data) != 2 {
		t.Fatalf("results must equal data length: %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostListInvalidPagination(t *testing.T) {
	r, _, db := newTestRouter(t)
	defer db.Close()

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/posts?page=a&limit=a", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}

	body := decode(t, w)
	if body["status"] != "ValidationError" || body["message"] != "Invalid input." {
		t.Fatalf("unexpected body: %v", body)
	}
	if errs := body["errors"].([]any); len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %v", errs)
	}
}

func TestCommentListStatusFilter(t *testing.T) {
	r, mock, db := newTestRouter(t)
	defer db.Close()

	mock.ExpectQuery("FROM posts p").WithArgs(1).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "title", "content", "status", "author_id", "name", "created_at", "updated_at"}).
			AddRow(1, "Hello", "Body", "PUBLISHED", 1, "Alice", "", ""))
	mock.ExpectQuery("JOIN post_categories").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}))
	mock.ExpectQuery("FROM comments c").WithArgs(1, "ACTIVE", "INACTIVE").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "post_id", "author_id", "name", "content", "status", "created_at"}).
			AddRow(10, 1, 2, "Bob", "Nice", "ACTIVE", "").
			AddRow(11, 1, 3, "Eve", "Meh", "INACTIVE", ""))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/posts/1/comments?status=ACTIVE&status=INACTIVE", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}

	body := decode(t, w)
	data := body["data"].([]any)
	if int(body["results"].(float64)) != len(data) || len(data) != 2 {
		t.Fatalf("results must equal data length: %v", body)
	}
	for _, item := range data {
		status := item.(map[string]any)["status"].(string)
		if status != "ACTIVE" && status != "INACTIVE" {
			t.Fatalf("comment with status %q leaked through the filter", status)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPaginatedUserListEnvelope(t *testing.T) {
	r, mock, db := newTestRouter(t)
	defer db.Close()

	expectUserByUUID(mock, "u-admin", "ADMIN", true)
	mock.ExpectQuery("FROM users ORDER BY").WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "uuid", "name", "email", "role", "is_active", "created_at"}).
			AddRow(5, "u-5", "Eve", "eve@example.com", "USER", true, ""))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

	req := httptest.NewRequest(http.MethodGet, "/api/users?paginated=true&page=2&limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "u-admin", "ADMIN"))

	w := serve(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}

	body := decode(t, w)
	if int(body["totalItems"].(float64)) != 21 || int(body["totalPages"].(float64)) != 3 {
		t.Fatalf("totals wrong: %v", body)
	}
	if int(body["currentPage"].(float64)) != 2 || int(body["limit"].(float64)) != 10 {
		t.Fatalf("request values not echoed: %v", body)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, mock, db := newTestRouter(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	payload, _ := json.Marshal(map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := serve(r, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["status"] != "EntityAlreadyExists" || body["message"] != domain.MsgDuplicateEntry {
		t.Fatalf("unexpected body: %v", body)
	}
}

// Round-trip law at the HTTP boundary: a token from login works on a
// protected route, with the claims the login issued.
func TestLoginIssuesWorkingToken(t *testing.T) {
	r, mock, db := newTestRouter(t)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	mock.ExpectQuery("FROM users WHERE email").WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "uuid", "name", "email", "password_hash", "role", "is_active"}).
			AddRow(1, "u-admin", "Admin", "admin@example.com", string(hash), "ADMIN", true))

	payload, _ := json.Marshal(map[string]string{"email": "admin@example.com", "password": "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := serve(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d (%s)", w.Code, w.Body.String())
	}
	token, _ := decode(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("login did not return a token")
	}

	codec := auth.NewCodec(auth.Config{Secret: []byte(testSecret), TTL: time.Hour})
	claims, err := codec.Parse(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UUID != "u-admin" || claims.Role != "ADMIN" || !claims.IsActive {
		t.Fatalf("claims wrong: %+v", claims)
	}

	expectUserByUUID(mock, "u-admin", "ADMIN", true)
	mock.ExpectQuery("FROM users ORDER BY").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "uuid", "name", "email", "role", "is_active", "created_at"}).
			AddRow(1, "u-admin", "Admin", "admin@example.com", "ADMIN", true, ""))

	listReq := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	listReq.Header.Set("Authorization", "Bearer "+token)
	if w := serve(r, listReq); w.Code != http.StatusOK {
		t.Fatalf("list status = %d (%s)", w.Code, w.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r, mock, db := newTestRouter(t)
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	mock.ExpectQuery("FROM users WHERE email").WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "uuid", "name", "email", "password_hash", "role", "is_active"}).
			AddRow(1, "u-admin", "Admin", "admin@example.com", string(hash), "ADMIN", true))

	payload, _ := json.Marshal(map[string]string{"email": "admin@example.com", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := serve(r, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestDeactivateMeRevokesToken(t *testing.T) {
	r, mock, db := newTestRouter(t)
	defer db.Close()

	token := issueToken(t, "u-1", "USER")

	// DELETE /api/users/me: liveness check, then the flag flip
	expectUserByUUID(mock, "u-1", "USER", true)
	mock.ExpectExec("UPDATE users SET is_active = 0").WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodDelete, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if w := serve(r, req); w.Code != http.StatusOK {
		t.Fatalf("deactivate status = %d (%s)", w.Code, w.Body.String())
	}

	// the very same token is now rejected by the liveness re-check
	expectUserByUUID(mock, "u-1", "USER", false)
	req = httptest.NewRequest(http.MethodDelete, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := serve(r, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body := decode(t, w); body["message"] != domain.MsgBadToken {
		t.Fatalf("message = %v", body["message"])
	}
}
