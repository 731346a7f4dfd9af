package codec

import (
	"slices"
	"testing"
)

func TestTableIsInjective(t *testing.T) {
	if err := validate(toMorse); err != nil {
		t.Fatalf("validate(toMorse) = %v", err)
	}
	if len(fromMorse) != len(toMorse) {
		t.Errorf("len(fromMorse) = %d, want %d", len(fromMorse), len(toMorse))
	}
}

func TestValidateRejectsDuplicates(t *testing.T) {
	table := map[rune]string{'A': ".-", 'B': "-...", 'X': ".-"}
	if err := validate(table); err == nil {
		t.Error("validate should reject two characters sharing a code")
	}
}

func TestValidateRejectsMalformedCodes(t *testing.T) {
	tests := []map[rune]string{
		{'A': ""},
		{'A': ".-x"},
		{'A': ". -"},
	}
	for _, table := range tests {
		if err := validate(table); err == nil {
			t.Errorf("validate(%v) should return error", table)
		}
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	upperCode, ok := Lookup('Q')
	if !ok {
		t.Fatal("Lookup('Q') not found")
	}
	lowerCode, ok := Lookup('q')
	if !ok {
		t.Fatal("Lookup('q') not found")
	}
	if !slices.Equal(upperCode, lowerCode) {
		t.Errorf("Lookup('q') = %v, want %v", lowerCode, upperCode)
	}
	if want := (Code{Dash, Dash, Dot, Dash}); !slices.Equal(upperCode, want) {
		t.Errorf("Lookup('Q') = %v, want %v", upperCode, want)
	}
	if _, ok := Lookup(' '); ok {
		t.Error("Lookup(' ') should not be found; space is a word gap")
	}
}

func TestReverse(t *testing.T) {
	if r, ok := Reverse("..."); !ok || r != 'S' {
		t.Errorf("Reverse(\"...\") = %q, %v, want 'S', true", r, ok)
	}
	if _, ok := Reverse("........"); ok {
		t.Error("Reverse(\"........\") should not be found")
	}
}

func TestEntriesOrder(t *testing.T) {
	entries := Entries()
	if len(entries) != len(toMorse) {
		t.Fatalf("len(Entries()) = %d, want %d", len(entries), len(toMorse))
	}
	if entries[0].Char != 'A' || entries[25].Char != 'Z' || entries[26].Char != '0' {
		t.Errorf("Entries() should start with A..Z then digits, got %q %q %q",
			entries[0].Char, entries[25].Char, entries[26].Char)
	}
}

func TestCodeString(t *testing.T) {
	c := Code{Dot, Dash, Dot}
	if got := c.String(); got != ".-." {
		t.Errorf("Code.String() = %q, want %q", got, ".-.")
	}
}
