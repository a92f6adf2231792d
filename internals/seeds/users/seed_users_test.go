package users

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestSeedUserRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		in   UserSeed
	}{
		{"no email", UserSeed{Password: "senha1234", Role: "ADMIN"}},
		{"no password", UserSeed{Email: "a@cra.br", Role: "ADMIN"}},
		{"weak password", UserSeed{Email: "a@cra.br", Password: "curta", Role: "ADMIN"}},
		{"unknown role", UserSeed{Email: "a@cra.br", Password: "senha1234", Role: "DIRETOR"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// nil db: validation must fail before any query
			if err := SeedUser(nil, tc.in); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSeedSuperAdminFromEnvNoopWhenUnset(t *testing.T) {
	t.Setenv("SEED_SUPER_ADMIN_EMAIL", "")
	t.Setenv("SEED_SUPER_ADMIN_PASSWORD", "")
	if err := SeedSuperAdminFromEnv(nil); err != nil {
		t.Fatal(err)
	}
}

func TestSeedUsersFromJSONBadFile(t *testing.T) {
	if err := SeedUsersFromJSON(nil, filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}

	p := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(p, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := SeedUsersFromJSON(nil, p); err == nil {
		t.Fatal("expected decode error")
	}
}
