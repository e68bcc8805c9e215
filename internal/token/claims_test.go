package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
)

// makeToken собирает неподписанный JWT из произвольного payload.
func makeToken(t *testing.T, payload map[string]any) string {
	t.Helper()

	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(body) + "."
}

func TestParseClaims_Malformed(t *testing.T) {
	cases := []string{"", "not-a-token", "only.two"}
	for _, raw := range cases {
		if _, err := ParseClaims(raw); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("ParseClaims(%q): expected ErrMalformedToken, got %v", raw, err)
		}
	}
}

func TestClaimsRoles_FallbackChain(t *testing.T) {
	cases := []struct {
		name    string
		payload map[string]any
		want    []string
	}{
		{
			name:    "roles array",
			payload: map[string]any{"roles": []any{"ADMIN", "USER"}},
			want:    []string{"ADMIN", "USER"},
		},
		{
			name:    "authorities array",
			payload: map[string]any{"authorities": []any{"ROLE_ADMIN"}},
			want:    []string{"ROLE_ADMIN"},
		},
		{
			name:    "single role string",
			payload: map[string]any{"role": "USER"},
			want:    []string{"USER"},
		},
		{
			name:    "comma separated roles",
			payload: map[string]any{"roles": "admin, user"},
			want:    []string{"admin", "user"},
		},
		{
			name:    "space separated scope",
			payload: map[string]any{"scope": "read write"},
			want:    []string{"read", "write"},
		},
		{
			name:    "no role claims",
			payload: map[string]any{"sub": "ana@example.com"},
			want:    nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			claims, err := ParseClaims(makeToken(t, tc.payload))
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			got := claims.Roles()
			if len(got) != len(tc.want) {
				t.Fatalf("expected roles %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected roles %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestClaimsHasRole_Variants(t *testing.T) {
	claims, err := ParseClaims(makeToken(t, map[string]any{"roles": []any{"ROLE_ADMIN"}}))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if !claims.HasRole("ADMIN") {
		t.Error("expected ROLE_ADMIN to satisfy HasRole(ADMIN)")
	}
	if !claims.IsAdmin() {
		t.Error("expected IsAdmin to be true")
	}
	if claims.HasRole("MANAGER") {
		t.Error("unexpected MANAGER role")
	}
}

func TestClaimsSubject(t *testing.T) {
	claims, err := ParseClaims(makeToken(t, map[string]any{"sub": "ana@example.com"}))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Subject() != "ana@example.com" {
		t.Fatalf("expected subject ana@example.com, got %q", claims.Subject())
	}
}
