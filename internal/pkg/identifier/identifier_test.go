package identifier

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  User@Example.COM ": "user@example.com",
		"+15551234567":        "+15551234567",
		"\tMiXeD@CaSe.io\n":   "mixed@case.io",
		"":                    "",
	}

	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  User@Example.COM ", "+15551234567", "Weird Input "}

	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"user@example.com", KindEmail},
		{"a@b.co", KindEmail},
		{"first.last@sub.domain.org", KindEmail},
		{"+15551234567", KindPhone},
		{"+447911123456", KindPhone},
		{"+19", KindPhone},
		{"+123456789012345", KindPhone},
		{"", KindUnknown},
		{"not-an-identifier", KindUnknown},
		{"user@nodot", KindUnknown},
		{"@example.com", KindUnknown},
		{"user @example.com", KindUnknown},
		{"15551234567", KindUnknown},          // missing +
		{"+05551234567", KindUnknown},         // leading zero
		{"+1 555 123 4567", KindUnknown},      // internal formatting
		{"+1234567890123456", KindUnknown},    // 16 digits
		{"+1-555-123-4567", KindUnknown},      // dashes
	}

	for _, tc := range cases {
		if got := Classify(tc.in); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindEmail.String() != "email" || KindPhone.String() != "phone" || KindUnknown.String() != "unknown" {
		t.Errorf("unexpected Kind string values: %v %v %v", KindEmail, KindPhone, KindUnknown)
	}
}
