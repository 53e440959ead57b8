package account

import (
	"context"
	"errors"
	"testing"

	"github.com/vidyatarun06/FreshFarmerBackend/internal/servererrors"
	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	accounts map[string]*Account // keyed by username
	profiles map[string]struct{} // usernames holding an empty profile row
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts: make(map[string]*Account),
		profiles: make(map[string]struct{}),
	}
}

func (f *fakeStore) createOne(ctx context.Context, account *Account, withEmptyProfile bool) error {
	if _, exists := f.accounts[account.Username]; exists {
		return servererrors.ErrUsernameTaken
	}

	f.accounts[account.Username] = account

	if withEmptyProfile {
		f.profiles[account.Username] = struct{}{}
	}

	return nil
}

func (f *fakeStore) findByUsernameAndRole(ctx context.Context, username, role string) (*Account, error) {
	account, exists := f.accounts[username]
	if !exists || account.Role != role {
		return nil, servererrors.ErrUserNotFound
	}

	return account, nil
}

func (f *fakeStore) updatePasswordHash(ctx context.Context, username, role, passwordHash string) error {
	account, exists := f.accounts[username]
	if !exists || account.Role != role {
		return servererrors.ErrUserNotFound
	}

	account.PasswordHash = passwordHash
	return nil
}

type fakeTokenIssuer struct{}

func (f *fakeTokenIssuer) GenerateAccessToken(username, role string) (string, error) {
	return "token-" + username + "-" + role, nil
}

func Test_registerAccount(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeTokenIssuer{})
	ctx := context.Background()

	err := svc.registerAccount(ctx, &RegisterRequest{
		Username: "vidya",
		Password: "pass123",
		Role:     RoleFarmer,
	})
	if err != nil {
		t.Fatal(err)
	}

	stored := store.accounts["vidya"]
	if stored == nil {
		t.Fatal("expected account to be stored")
	}

	if stored.PasswordHash == "pass123" {
		t.Error("expected the secret to be hashed, not stored as plaintext")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Error("expected stored hash to match the original password")
	}
}

// Registering a farmer creates the empty profile row alongside the account,
// so a fresh farmer is immediately retrievable through the profile routes;
// clients get no profile row.
func Test_registerAccount_farmerGetsEmptyProfile(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeTokenIssuer{})
	ctx := context.Background()

	err := svc.registerAccount(ctx, &RegisterRequest{
		Username: "vidya",
		Password: "pass123",
		Role:     RoleFarmer,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := store.profiles["vidya"]; !ok {
		t.Error("expected registering a farmer to create an empty profile row")
	}

	err = svc.registerAccount(ctx, &RegisterRequest{
		Username: "client1",
		Password: "pass123",
		Role:     RoleClient,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := store.profiles["client1"]; ok {
		t.Error("did not expect a profile row for a client")
	}

	if len(store.profiles) != 1 {
		t.Errorf("expected exactly 1 profile row, got %d", len(store.profiles))
	}
}

func Test_registerAccount_whitespaceUsername(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeTokenIssuer{})

	err := svc.registerAccount(context.Background(), &RegisterRequest{
		Username: "   ",
		Password: "pass123",
		Role:     RoleFarmer,
	})
	if !errors.Is(err, servererrors.ErrAllFieldsRequired) {
		t.Errorf("expected ErrAllFieldsRequired, got %v", err)
	}

	if len(store.accounts) != 0 {
		t.Error("expected no account to be stored for a whitespace-only username")
	}
}

func Test_registerAccount_duplicateUsername(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeTokenIssuer{})
	ctx := context.Background()

	req := &RegisterRequest{
		Username: "vidya",
		Password: "pass123",
		Role:     RoleFarmer,
	}

	if err := svc.registerAccount(ctx, req); err != nil {
		t.Fatal(err)
	}

	err := svc.registerAccount(ctx, req)
	if !errors.Is(err, servererrors.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}

	if len(store.accounts) != 1 {
		t.Errorf("expected exactly 1 stored account, got %d", len(store.accounts))
	}
}

func Test_registerAccount_invalidRole(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeTokenIssuer{})

	err := svc.registerAccount(context.Background(), &RegisterRequest{
		Username: "vidya",
		Password: "pass123",
		Role:     "admin",
	})
	if !errors.Is(err, servererrors.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func Test_login(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeTokenIssuer{})
	ctx := context.Background()

	err := svc.registerAccount(ctx, &RegisterRequest{
		Username: "client1",
		Password: "pass123",
		Role:     RoleClient,
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := svc.login(ctx, &LoginRequest{
		Username: "client1",
		Password: "pass123",
		Role:     RoleClient,
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Username != "client1" || res.Role != RoleClient {
		t.Errorf("unexpected login response: %+v", res)
	}

	if res.Token == "" {
		t.Error("expected a token on successful login")
	}
}

func Test_login_badCredentials(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeTokenIssuer{})
	ctx := context.Background()

	err := svc.registerAccount(ctx, &RegisterRequest{
		Username: "client1",
		Password: "pass123",
		Role:     RoleClient,
	})
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		req  *LoginRequest
	}{
		{"wrong password", &LoginRequest{Username: "client1", Password: "nope", Role: RoleClient}},
		{"wrong role", &LoginRequest{Username: "client1", Password: "pass123", Role: RoleFarmer}},
		{"unknown user", &LoginRequest{Username: "ghost", Password: "pass123", Role: RoleClient}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.login(ctx, tc.req)
			if !errors.Is(err, servererrors.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func Test_resetPassword(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeTokenIssuer{})
	ctx := context.Background()

	err := svc.registerAccount(ctx, &RegisterRequest{
		Username: "vidya",
		Password: "oldpass",
		Role:     RoleFarmer,
	})
	if err != nil {
		t.Fatal(err)
	}

	err = svc.resetPassword(ctx, &ResetPasswordRequest{
		Username:    "vidya",
		NewPassword: "newpass",
		Role:        RoleFarmer,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.login(ctx, &LoginRequest{Username: "vidya", Password: "newpass", Role: RoleFarmer}); err != nil {
		t.Errorf("expected login with the new password to succeed, got %v", err)
	}

	if _, err := svc.login(ctx, &LoginRequest{Username: "vidya", Password: "oldpass", Role: RoleFarmer}); err == nil {
		t.Error("expected login with the old password to fail")
	}
}

func Test_resetPassword_unknownAccount(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeTokenIssuer{})
	ctx := context.Background()

	err := svc.registerAccount(ctx, &RegisterRequest{
		Username: "vidya",
		Password: "pass123",
		Role:     RoleFarmer,
	})
	if err != nil {
		t.Fatal(err)
	}

	hashBefore := store.accounts["vidya"].PasswordHash

	// right username, wrong role
	err = svc.resetPassword(ctx, &ResetPasswordRequest{
		Username:    "vidya",
		NewPassword: "newpass",
		Role:        RoleClient,
	})
	if !errors.Is(err, servererrors.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	if store.accounts["vidya"].PasswordHash != hashBefore {
		t.Error("expected a failed reset to mutate nothing")
	}
}
