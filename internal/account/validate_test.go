package account

import "testing"

func TestValidPIN(t *testing.T) {
	cases := []struct {
		pin  string
		want bool
	}{
		{"1234", true},
		{"0000", true},
		{"9999", true},
		{"123", false},
		{"12345", false},
		{"12a4", false},
		{"12.4", false},
		{"", false},
		{" 123", false},
		{"١٢٣٤", false}, // non-ASCII digits
	}

	for _, tc := range cases {
		if got := ValidPIN(tc.pin); got != tc.want {
			t.Errorf("ValidPIN(%q) = %v, want %v", tc.pin, got, tc.want)
		}
	}
}

func TestValidUsername(t *testing.T) {
	cases := []struct {
		username string
		want     bool
	}{
		{"alice", true},
		{"  alice  ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tc := range cases {
		if got := ValidUsername(tc.username); got != tc.want {
			t.Errorf("ValidUsername(%q) = %v, want %v", tc.username, got, tc.want)
		}
	}
}
