// Copyright COAZ Digital, 2026. All rights reserved.

package textutil

import (
	"reflect"
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text untouched", "COAZ is a professional body.", "COAZ is a professional body."},
		{"strips tags", "<p>Membership <b>requirements</b></p>", "Membership requirements"},
		{"decodes entities", "Anesthesia &amp; critical care", "Anesthesia & critical care"},
		{"collapses whitespace", "one\t two\n\n  three", "one two three"},
		{"removes noise phrase", "Read More about training programs", "about training programs"},
		{"noise is case-insensitive", "CLICK HERE to join", "to join"},
		{"unclosed tag", "text with <unclosed", "text with <unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanNeverGrows(t *testing.T) {
	inputs := []string{
		"<div><span>nested</span> markup</div>",
		strings.Repeat("click here ", 50),
		"   \n\t  ",
	}
	for _, in := range inputs {
		if got := Clean(in); len(got) > len(in) {
			t.Errorf("Clean(%q) grew the input: %d > %d", in, len(got), len(in))
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("How do I join COAZ?")
	want := []string{"how", "do", "i", "join", "coaz"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens() = %v, want %v", got, want)
	}
}

func TestSignificantTokens(t *testing.T) {
	got := SignificantTokens("How do I join the COAZ council?")
	want := []string{"how", "join", "the", "coaz", "council"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SignificantTokens() = %v, want %v", got, want)
	}
}

func TestTokenSetDeduplicates(t *testing.T) {
	set := TokenSet("member member MEMBER membership")
	if len(set) != 2 {
		t.Errorf("len(TokenSet()) = %d, want 2", len(set))
	}
	if _, ok := set["member"]; !ok {
		t.Error("TokenSet() missing \"member\"")
	}
}
