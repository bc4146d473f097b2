package theme

import "testing"

func TestNamesAreAllValid(t *testing.T) {
	names := Names()
	if len(names) != 5 {
		t.Fatalf("got %d themes, want 5", len(names))
	}
	for _, name := range names {
		if !Valid(name) {
			t.Errorf("Names() includes unknown theme %q", name)
		}
	}
	if names[0] != DefaultName {
		t.Errorf("first theme = %q, want %q", names[0], DefaultName)
	}
}

func TestValidRejectsUnknown(t *testing.T) {
	if Valid("neon") {
		t.Error("Valid accepted an unknown theme")
	}
}

func TestNewStylesFallsBackToDefault(t *testing.T) {
	fallback := NewStyles("neon")
	def := NewStyles(DefaultName)
	if fallback.Palette != def.Palette {
		t.Error("unknown theme did not fall back to the default palette")
	}
}

func TestThemesHaveDistinctAccents(t *testing.T) {
	seen := map[string]string{}
	for _, name := range Names() {
		accent := NewStyles(name).Palette.Accent.Dark
		if prev, ok := seen[accent]; ok {
			t.Errorf("themes %q and %q share accent %s", prev, name, accent)
		}
		seen[accent] = name
	}
}
