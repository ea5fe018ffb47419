package label

import (
	"strings"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"example.com/path", "https://example.com/path"},
		{"https://example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"sub.example.com", "https://sub.example.com"},
	}
	for _, c := range cases {
		got, err := NormalizeURL(c.in)
		if err != nil {
			t.Fatalf("NormalizeURL(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("NormalizeURL(%q): got %q want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeURLRejectsGarbage(t *testing.T) {
	for _, in := range []string{"not a url", "nodot", ""} {
		if _, err := NormalizeURL(in); err == nil {
			t.Fatalf("NormalizeURL(%q): expected error", in)
		} else if !strings.Contains(err.Error(), "invalid url") {
			t.Fatalf("NormalizeURL(%q): wrong error kind: %v", in, err)
		}
	}
}

func TestParseData(t *testing.T) {
	tmpl := testTemplate()
	recs, err := ParseData([]string{"example.com~Hello World", "https://box.example.com~Box 7"}, tmpl, false, testNow)
	if err != nil {
		t.Fatalf("ParseData error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].URL != "https://example.com" {
		t.Fatalf("first record url: %q", recs[0].URL)
	}
	if recs[0].Lines[0].Text != "Hello World" {
		t.Fatalf("first record line: %q", recs[0].Lines[0].Text)
	}
}

// TestParseDataRejectsBadTokens 验证字段数不为 2 的记号一律拒绝。
func TestParseDataRejectsBadTokens(t *testing.T) {
	tmpl := testTemplate()
	bad := []string{
		"no-delimiter-here.com",
		"a~b~c",
		"",
	}
	for _, token := range bad {
		if _, err := ParseData([]string{token}, tmpl, false, testNow); err == nil {
			t.Fatalf("token %q: expected error", token)
		} else if !strings.Contains(err.Error(), "invalid data") {
			t.Fatalf("token %q: wrong error kind: %v", token, err)
		}
	}
}

func TestParseDataEmpty(t *testing.T) {
	if _, err := ParseData(nil, testTemplate(), false, testNow); err == nil {
		t.Fatalf("expected error for empty token list")
	}
}

func TestParseDataInvalidURL(t *testing.T) {
	if _, err := ParseData([]string{"nodot~caption"}, testTemplate(), false, testNow); err == nil {
		t.Fatalf("expected invalid url error")
	}
}
