package helper

import "testing"

func TestNormalizeUpper(t *testing.T) {
	cases := map[string]string{
		"  maria   da silva ":      "MARIA DA SILVA",
		"jose\u0301":               "JOSÉ", // decomposed accent
		"trancamento de matrícula": "TRANCAMENTO DE MATRÍCULA",
		"   ":                      "",
	}
	for in, want := range cases {
		if got := NormalizeUpper(in); got != want {
			t.Errorf("NormalizeUpper(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanOptional(t *testing.T) {
	if CleanOptional(nil) != nil {
		t.Fatal("nil should stay nil")
	}
	blank := "   "
	if CleanOptional(&blank) != nil {
		t.Fatal("blank should become nil")
	}
	v := " guichê 3 "
	if got := CleanOptionalUpper(&v); got == nil || *got != "GUICHÊ 3" {
		t.Fatalf("CleanOptionalUpper = %v", got)
	}
	if StrPtr("") != nil {
		t.Fatal("StrPtr(\"\") should be nil")
	}
}
