package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"

	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	created   *domain.User
	createErr error
	byEmail   *domain.User
	byID      *domain.User
	getErr    error
}

func (s *stubUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	out := u
	out.ID = "u1"
	return &out, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	return s.byID, s.getErr
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return s.byEmail, s.getErr
}

type memTokenRepo struct {
	tokens map[string]tokenrepo.RefreshToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]tokenrepo.RefreshToken)}
}

func (m *memTokenRepo) Create(_ context.Context, t tokenrepo.RefreshToken) error {
	if _, ok := m.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	m.tokens[t.Token] = t
	return nil
}

func (m *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.RefreshToken, error) {
	if t, ok := m.tokens[token]; ok {
		return &t, nil
	}
	return nil, domain.ErrNotFound
}

func (m *memTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := m.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tokens, token)
	return nil
}

func newService(users *stubUserRepo, tokens tokenrepo.Repository) *Service {
	return New(users, tokens, "test-secret", 15*time.Minute, time.Hour)
}

func TestRegisterValidation(t *testing.T) {
	svc := newService(&stubUserRepo{}, newMemTokenRepo())

	cases := []RegisterInput{
		{Name: "Ada", Email: "", Password: "Abcdefg1"},
		{Name: "", Email: "a@example.com", Password: "Abcdefg1"},
		{Name: "Ada", Email: "a@example.com", Password: "short"},
		{Name: "Ada", Email: "a@example.com", Password: "alllowercase1"},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); err == nil {
			t.Fatalf("expected validation error for %+v", in)
		}
	}
}

func TestRegisterHashesPasswordAndNormalizesEmail(t *testing.T) {
	users := &stubUserRepo{}
	svc := newService(users, newMemTokenRepo())

	got, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ada", Email: "  Ada@Example.COM ", Password: "Abcdefg1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "ada@example.com" {
		t.Fatalf("email not normalized: %s", got.Email)
	}
	if bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("Abcdefg1")) != nil {
		t.Fatal("stored hash does not match password")
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	users := &stubUserRepo{createErr: domain.ErrAlreadyExists}
	svc := newService(users, newMemTokenRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "a@example.com", Password: "Abcdefg1"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Abcdefg1"), bcrypt.MinCost)
	users := &stubUserRepo{byEmail: &domain.User{ID: "u1", Name: "Ada", PasswordHash: string(hash)}}
	svc := newService(users, newMemTokenRepo())

	if _, _, _, err := svc.Login(context.Background(), "a@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	users.byEmail = nil
	users.getErr = domain.ErrNotFound
	if _, _, _, err := svc.Login(context.Background(), "nobody@example.com", "Abcdefg1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLoginIssuesVerifiableTokens(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Abcdefg1"), bcrypt.MinCost)
	users := &stubUserRepo{byEmail: &domain.User{ID: "u1", Name: "Ada", PasswordHash: string(hash)}}
	tokens := newMemTokenRepo()
	svc := newService(users, tokens)

	_, access, refresh, err := svc.Login(context.Background(), "a@example.com", "Abcdefg1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, name, err := svc.Verify(access)
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if userID != "u1" || name != "Ada" {
		t.Fatalf("unexpected claims userID=%s name=%s", userID, name)
	}
	if _, ok := tokens.tokens[refresh]; !ok {
		t.Fatal("refresh token not persisted")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newService(&stubUserRepo{}, newMemTokenRepo())
	if _, _, err := svc.Verify("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	users := &stubUserRepo{byID: &domain.User{ID: "u1", Name: "Ada"}}
	tokens := newMemTokenRepo()
	svc := newService(users, tokens)

	first, err := svc.issueRefresh(context.Background(), "u1")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	access, next, err := svc.Refresh(context.Background(), first)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access == "" || next == "" || next == first {
		t.Fatalf("expected rotated tokens, access=%q next=%q", access, next)
	}
	if _, ok := tokens.tokens[first]; ok {
		t.Fatal("old refresh token must be deleted")
	}

	if _, _, err := svc.Refresh(context.Background(), first); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("replayed refresh token must fail, got %v", err)
	}
}

func TestRefreshExpiredToken(t *testing.T) {
	users := &stubUserRepo{byID: &domain.User{ID: "u1", Name: "Ada"}}
	tokens := newMemTokenRepo()
	svc := newService(users, tokens)
	tokens.tokens["stale"] = tokenrepo.RefreshToken{
		Token: "stale", UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute),
	}

	if _, _, err := svc.Refresh(context.Background(), "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, ok := tokens.tokens["stale"]; ok {
		t.Fatal("expired token must be removed")
	}
}
