package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"var":        Var,
		"function":   Function,
		"typeof":     TypeOf,
		"instanceof": InstanceOf,
		"this":       This,
	}
	for text, want := range cases {
		got, ok := LookupKeyword(text)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v; want %v,true", text, got, ok, want)
		}
	}
	for _, text := range []string{"Var", "FUNCTION", "foo", "let"} {
		if _, ok := LookupKeyword(text); ok {
			t.Fatalf("LookupKeyword(%q) unexpectedly matched", text)
		}
	}
}

func TestIsReserved(t *testing.T) {
	for _, name := range []string{"do", "in", "if", "let", "class", "yield"} {
		if !IsReserved(name) {
			t.Errorf("%q should be reserved", name)
		}
	}
	for _, name := range []string{"a", "n", "undefined", "NaN", "eval"} {
		if IsReserved(name) {
			t.Errorf("%q must not be reserved", name)
		}
	}
}
