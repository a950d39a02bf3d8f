package envsynth

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnvironment_SetGetEnviron(t *testing.T) {
	env := New(map[string]string{"B": "2"})
	env.Set("A", "1")
	env.Set("C", "")

	if v, ok := env.Lookup("C"); !ok || v != "" {
		t.Errorf("Lookup(C) = %q, %v; want empty, true", v, ok)
	}
	if _, ok := env.Lookup("D"); ok {
		t.Error("Lookup(D) ok = true, want false")
	}

	want := []string{"A=1", "B=2", "C="}
	if diff := cmp.Diff(want, env.Environ()); diff != "" {
		t.Errorf("Environ() mismatch (-want +got):\n%s", diff)
	}

	env.Unset("B")
	if env.Get("B") != "" {
		t.Errorf("Get(B) after Unset = %q", env.Get("B"))
	}
}

func TestEnvironment_NewCopiesInput(t *testing.T) {
	seed := map[string]string{"A": "1"}
	env := New(seed)
	env.Set("A", "2")

	if seed["A"] != "1" {
		t.Error("New() aliased its input map")
	}
}

func TestEnvironment_Clone(t *testing.T) {
	env := New(map[string]string{"A": "1"}, WithSeparator(";"))
	clone := env.Clone()
	clone.Set("A", "2")

	if env.Get("A") != "1" {
		t.Errorf("original A = %q, want 1", env.Get("A"))
	}
	if clone.Separator() != ";" {
		t.Errorf("clone separator = %q, want ;", clone.Separator())
	}
}

func TestParseEnviron(t *testing.T) {
	got := ParseEnviron([]string{"KEY=VALUE", "EMPTY=", "EQ=a=b", "NOEQUALS", "=C:=C:\\dir"})

	want := map[string]string{
		"KEY":   "VALUE",
		"EMPTY": "",
		"EQ":    "a=b",
		"=C:":   "C:\\dir",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseEnviron() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitEnvEntry(t *testing.T) {
	tests := []struct {
		entry     string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{"KEY=VALUE", "KEY", "VALUE", true},
		{"KEY=", "KEY", "", true},
		{"KEY=VAL=UE", "KEY", "VAL=UE", true},
		{"NOEQUALS", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			key, value, ok := splitEnvEntry(tt.entry)
			if key != tt.wantKey || value != tt.wantValue || ok != tt.wantOK {
				t.Errorf("splitEnvEntry(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.entry, key, value, ok, tt.wantKey, tt.wantValue, tt.wantOK)
			}
		})
	}
}
