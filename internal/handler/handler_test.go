package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/parlour-hub/parlour/backend/internal/auth"
	"github.com/parlour-hub/parlour/backend/internal/config"
	"github.com/parlour-hub/parlour/backend/internal/repository"
)

const testSecret = "test-secret"

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.JWT.Secret = testSecret
	cfg.JWT.AdminExpiration = 86400
	cfg.JWT.EmployeeExpiration = 86400
	cfg.JWT.CustomerExpiration = 604800
	cfg.Redis.OperationExpiration = 5
	cfg.OTP.Expiration = 900
	cfg.RabbitMQ.PublishTimeout = 5

	repo := repository.NewRepository(cfg, db)
	h, err := NewHandler(cfg, repo, nil, rdb)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	h.RegisterRoutes()

	return h, mock, mr
}

func issueTestToken(t *testing.T, kind auth.Kind, id int64, email, name, role string) string {
	t.Helper()

	token, err := auth.NewIssuer(testSecret).Issue(auth.Claims{
		Kind:  kind,
		Email: email,
		Role:  role,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(id, 10),
		},
	}, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func doRequest(t *testing.T, h *Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	resp := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是合法的 JSON: %v, body: %s", err, rec.Body.String())
	}
	return resp
}

func mustHash(t *testing.T, password string) string {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return hash
}

func TestAdminLoginSuccess(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	now := time.Now()
	hash := mustHash(t, "secret-pass")
	mock.ExpectQuery("SELECT id, name, role, password_hash, created_at, updated_at").
		WithArgs("admin@parlour.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role", "password_hash", "created_at", "updated_at"}).
			AddRow(int64(1), "Super Admin", "super_admin", hash, now, now))

	rec := doRequest(t, h, http.MethodPost, "/auth/login", "", `{"email":"admin@parlour.com","password":"secret-pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	token, ok := resp["token"].(string)
	if !ok || token == "" {
		t.Fatalf("响应中没有令牌: %v", resp)
	}

	claims, err := auth.NewIssuer(testSecret).Verify(token, auth.KindAdmin)
	if err != nil {
		t.Fatalf("签发的令牌无法通过校验: %v", err)
	}
	if claims.Role != "super_admin" || claims.Email != "admin@parlour.com" {
		t.Fatalf("令牌声明不符: %+v", claims)
	}

	// 密码哈希绝不能出现在响应里
	if strings.Contains(rec.Body.String(), hash) {
		t.Fatal("响应泄露了密码哈希")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("数据库期望未满足: %v", err)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	now := time.Now()
	mock.ExpectQuery("SELECT id, name, role, password_hash, created_at, updated_at").
		WithArgs("admin@parlour.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role", "password_hash", "created_at", "updated_at"}).
			AddRow(int64(1), "Super Admin", "super_admin", mustHash(t, "right-pass"), now, now))

	rec := doRequest(t, h, http.MethodPost, "/auth/login", "", `{"email":"admin@parlour.com","password":"wrong-pass"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["error"] != "Invalid credentials" {
		t.Fatalf("错误消息不符: %v", resp)
	}
}

func TestAdminLoginUnknownEmail(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	mock.ExpectQuery("SELECT id, name, role, password_hash, created_at, updated_at").
		WithArgs("nobody@parlour.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role", "password_hash", "created_at", "updated_at"}))

	rec := doRequest(t, h, http.MethodPost, "/auth/login", "", `{"email":"nobody@parlour.com","password":"whatever"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}

	// 邮箱不存在和密码错误必须返回同一个消息
	if resp := decodeBody(t, rec); resp["error"] != "Invalid credentials" {
		t.Fatalf("错误消息不符: %v", resp)
	}
}

func TestAdminLoginMissingFields(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/auth/login", "", `{"email":"admin@parlour.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	// 校验失败不应触碰数据库
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("数据库期望未满足: %v", err)
	}
}

func TestEmployeeLoginMarksAttendance(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	now := time.Now()
	hash := mustHash(t, "secret-pass")
	mock.ExpectQuery("SELECT id, name, position, phone, password_hash, is_active, created_at, updated_at").
		WithArgs("lisa.wong@parlour.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "position", "phone", "password_hash", "is_active", "created_at", "updated_at"}).
			AddRow(int64(7), "Lisa Wong", "Massage Therapist", "555-123-4567", hash, true, now, now))
	mock.ExpectQuery("INSERT INTO attendance_records").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), now))

	rec := doRequest(t, h, http.MethodPost, "/employees/auth/login", "", `{"email":"lisa.wong@parlour.com","password":"secret-pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	if resp["message"] != "Login successful - attendance marked" {
		t.Fatalf("消息不符: %v", resp)
	}

	// 打卡记录确实被写入（INSERT 的期望已满足）
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("数据库期望未满足: %v", err)
	}
}

func TestEmployeeLoginAttendanceFailureStillSucceeds(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	now := time.Now()
	hash := mustHash(t, "secret-pass")
	mock.ExpectQuery("SELECT id, name, position, phone, password_hash, is_active, created_at, updated_at").
		WithArgs("lisa.wong@parlour.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "position", "phone", "password_hash", "is_active", "created_at", "updated_at"}).
			AddRow(int64(7), "Lisa Wong", "Massage Therapist", "555-123-4567", hash, true, now, now))
	mock.ExpectQuery("INSERT INTO attendance_records").
		WillReturnError(fmt.Errorf("connection reset"))

	rec := doRequest(t, h, http.MethodPost, "/employees/auth/login", "", `{"email":"lisa.wong@parlour.com","password":"secret-pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("打卡失败不应阻断登录: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	if token, ok := resp["token"].(string); !ok || token == "" {
		t.Fatalf("响应中没有令牌: %v", resp)
	}
}

func TestEmployeeLoginNoPasswordSet(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	now := time.Now()
	// 管理端录入的员工没有密码哈希
	mock.ExpectQuery("SELECT id, name, position, phone, password_hash, is_active, created_at, updated_at").
		WithArgs("sarah.johnson@parlour.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "position", "phone", "password_hash", "is_active", "created_at", "updated_at"}).
			AddRow(int64(2), "Sarah Johnson", "Hair Stylist", "555-123-4567", nil, true, now, now))

	rec := doRequest(t, h, http.MethodPost, "/employees/auth/login", "", `{"email":"sarah.johnson@parlour.com","password":"anything"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("没有密码的账号不应能登录: status = %d", rec.Code)
	}
}

func TestEmployeeSignupSuccess(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO employees").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(9), now, now))

	rec := doRequest(t, h, http.MethodPost, "/employees/auth/signup", "",
		`{"name":"New Hire","email":"new.hire@parlour.com","password":"secret-pass","position":"Receptionist"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	token, ok := resp["token"].(string)
	if !ok || token == "" {
		t.Fatalf("响应中没有令牌: %v", resp)
	}
	if _, err := auth.NewIssuer(testSecret).Verify(token, auth.KindEmployee); err != nil {
		t.Fatalf("注册签发的令牌无法通过校验: %v", err)
	}
}

func TestEmployeeSignupDuplicateEmail(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	mock.ExpectQuery("INSERT INTO employees").
		WillReturnError(uniqueViolation("employees_email_key"))

	rec := doRequest(t, h, http.MethodPost, "/employees/auth/signup", "",
		`{"name":"Sarah Johnson","email":"sarah.johnson@parlour.com","password":"secret-pass","position":"Hair Stylist"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["error"] != "Employee with this email already exists" {
		t.Fatalf("错误消息不符: %v", resp)
	}
}

func TestCustomerSignupIssuesCustomerToken(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO customers").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	rec := doRequest(t, h, http.MethodPost, "/customers/auth/signup", "",
		`{"name":"Alice Brown","email":"alice@example.com","password":"secret-pass","phone":"555-000-1111"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody(t, rec)
	token, ok := resp["token"].(string)
	if !ok || token == "" {
		t.Fatalf("响应中没有令牌: %v", resp)
	}
	claims, err := auth.NewIssuer(testSecret).Verify(token, auth.KindCustomer)
	if err != nil {
		t.Fatalf("注册签发的令牌无法通过校验: %v", err)
	}
	if claims.Subject != "11" {
		t.Fatalf("subject = %s", claims.Subject)
	}

	// 顾客令牌不能用于员工或后台接口
	if _, err := auth.NewIssuer(testSecret).Verify(token, auth.KindAdmin); err == nil {
		t.Fatal("顾客令牌不应通过后台校验")
	}
}

func TestCustomerSignupDuplicateEmail(t *testing.T) {
	h, mock, _ := newTestHandler(t)

	mock.ExpectQuery("INSERT INTO customers").
		WillReturnError(uniqueViolation("customers_email_key"))

	rec := doRequest(t, h, http.MethodPost, "/customers/auth/signup", "",
		`{"name":"Alice Brown","email":"alice@example.com","password":"secret-pass","phone":"555-000-1111"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["error"] != "Customer with this email already exists" {
		t.Fatalf("错误消息不符: %v", resp)
	}
}
