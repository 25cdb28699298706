package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/website/42", "/website/:id"},
		{"/website/9999999", "/website/:id"},
		{"/website/abc", "/website/:id"},
		{"/website/", "/website/"},
		{"/website", "/website"},
		{"/register", "/register"},
		{"/register/student", "/register/student"},
		{"/login", "/login"},
		{"/health/ready", "/health/ready"},
	}

	for _, tc := range cases {
		if got := normalizePath(tc.path); got != tc.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
