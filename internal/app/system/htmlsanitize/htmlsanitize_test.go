package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/lexhub/lexhub/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Hearing moved to Tuesday."); got != "Hearing moved to Tuesday." {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Motion granted</strong> with <em>conditions</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Update</p><script>alert('xss')</script>"
	if got := htmlsanitize.Sanitize(input); got != "<p>Update</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	input := `<a href="javascript:alert('xss')">Click</a>`
	if got := htmlsanitize.Sanitize(input); got == input {
		t.Error("expected javascript: href to be removed")
	}
}

func TestStripTags(t *testing.T) {
	if got := htmlsanitize.StripTags("<b>Smith</b> v. <i>Jones</i>"); strings.ContainsAny(got, "<>") {
		t.Errorf("expected all tags removed, got %q", got)
	}
}
