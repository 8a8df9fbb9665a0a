package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/superlibrary/library-api/internal/core/domain"
	"github.com/superlibrary/library-api/internal/core/ports"
)

type stubUserService struct {
	createFn     func(ctx context.Context, in domain.CreateUser) (*domain.User, error)
	getFn        func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	listFn       func(ctx context.Context, q ports.ListQuery) ([]*domain.User, error)
	updateFn     func(ctx context.Context, id string, in domain.UpdateUser) (*domain.User, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (s *stubUserService) Create(ctx context.Context, in domain.CreateUser) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *stubUserService) List(ctx context.Context, q ports.ListQuery) ([]*domain.User, error) {
	return s.listFn(ctx, q)
}

func (s *stubUserService) Update(ctx context.Context, id string, in domain.UpdateUser) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:             "65f000000000000000000002",
		FirstName:      "Alice",
		LastName:       "Nguyen",
		Email:          "alice@example.com",
		Role:           domain.RoleUser,
		RegisteredDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	stub := &stubUserService{
		createFn: func(_ context.Context, in domain.CreateUser) (*domain.User, error) {
			if in.Password != "s3cret-pw" {
				t.Fatalf("plaintext must be forwarded for the service to hash, got %q", in.Password)
			}
			return sampleUser(), nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/v1/users",
		`{"first_name":"Alice","last_name":"Nguyen","email":"alice@example.com","role":"user","password":"s3cret-pw"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["full_name"] != "Alice Nguyen" {
		t.Errorf("full_name = %v", resp["full_name"])
	}
	if _, ok := resp["password"]; ok {
		t.Error("password must never appear in a response")
	}
}

func TestUserHandler_Create_InvalidRoleRejected(t *testing.T) {
	called := false
	stub := &stubUserService{
		createFn: func(_ context.Context, _ domain.CreateUser) (*domain.User, error) {
			called = true
			return nil, nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/v1/users",
		`{"first_name":"Alice","last_name":"Nguyen","email":"alice@example.com","role":"superadmin","password":"s3cret-pw"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	if called {
		t.Error("service must not be called on a validation failure")
	}
}

func TestUserHandler_Create_ShortPasswordRejected(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(http.MethodPost, "/v1/users",
		`{"first_name":"Alice","last_name":"Nguyen","email":"alice@example.com","role":"user","password":"abc"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestUserHandler_Create_BadEmailRejected(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(http.MethodPost, "/v1/users",
		`{"first_name":"Alice","last_name":"Nguyen","email":"not-an-email","role":"user","password":"s3cret-pw"}`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestUserHandler_GetByEmail_ForwardsRawParam(t *testing.T) {
	stub := &stubUserService{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			// Normalization is the service's job; the handler forwards as-is.
			if email != "Alice@Example.com" {
				t.Fatalf("unexpected email: %q", email)
			}
			return sampleUser(), nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/users/by-email/Alice@Example.com", "")
	c.SetParamNames("email")
	c.SetParamValues("Alice@Example.com")

	if err := h.GetByEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_ConflictPropagates(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(_ context.Context, _ string, _ domain.UpdateUser) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(http.MethodPatch, "/v1/users/65f000000000000000000002", `{"email":"taken@example.com"}`)
	c.SetParamNames("id")
	c.SetParamValues("65f000000000000000000002")

	if err := h.Update(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserHandler_List_CountMatches(t *testing.T) {
	stub := &stubUserService{
		listFn: func(_ context.Context, _ ports.ListQuery) ([]*domain.User, error) {
			return []*domain.User{sampleUser()}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/v1/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp userListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || len(resp.Users) != 1 {
		t.Errorf("unexpected list payload: %+v", resp)
	}
}

func TestUserHandler_Delete_NoContent(t *testing.T) {
	stub := &stubUserService{
		deleteFn: func(_ context.Context, _ string) error { return nil },
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/v1/users/65f000000000000000000002", "")
	c.SetParamNames("id")
	c.SetParamValues("65f000000000000000000002")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
