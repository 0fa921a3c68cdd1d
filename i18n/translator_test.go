package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("type_mismatch", nil); msg == "type_mismatch" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}
	if msg := T("constraint_violation", map[string]string{"detail": "z"}); msg != "value not allowed: z" {
		t.Fatalf("expected detail suffix, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("type_mismatch", nil); msg == "type mismatch" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X-" + code }

func TestTranslator_Custom(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if msg := T("unknown_unit", nil); msg != "X-unknown_unit" {
		t.Fatalf("expected custom translator output, got %q", msg)
	}
	if msg := T("no_such_code", nil); msg != "X-no_such_code" {
		t.Fatalf("expected custom translator output, got %q", msg)
	}
}
