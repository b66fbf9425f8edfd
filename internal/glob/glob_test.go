package glob

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		// Single-segment globs
		{"buil*", "build", true},
		{"buil*", "builder", true},
		{"buil*", "deploy", false},
		{"build?", "builds", true},
		{"build?", "build", false},
		{"*", "anything", true},

		// ** spans segments
		{"scripts/**", "scripts/ci/deploy.sh", true},
		{"scripts/**", "scripts", true}, // ** matches zero segments

		{"scripts/**", "other/deploy.sh", false},
		{"scripts/**", "scriptsfoo/deploy.sh", false}, // prefix is segment-aligned
		{"**/deploy.sh", "scripts/ci/deploy.sh", true},
		{"**/deploy.sh", "deploy.sh", true},
		{"**", "a/b/c", true},
		{"deploy/**/prod", "deploy/eu/prod", true},

		// Plain patterns fall back to the final segment
		{"deploy.sh", "scripts/deploy.sh", true},
		{"*.sh", "scripts/deploy.sh", true},
		{"*.sh", "scripts/deploy.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			got, err := Match(tt.pattern, tt.input)
			if err != nil {
				t.Fatalf("Match(%q, %q) error: %v", tt.pattern, tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

func TestMatch_MalformedPattern(t *testing.T) {
	if _, err := Match("[", "x"); err == nil {
		t.Error("Match with unclosed bracket succeeded, want error")
	}
}

func TestIsGlob(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"build", false},
		{"buil*", true},
		{"build?", true},
		{"scripts/**", true},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsGlob(tt.input); got != tt.want {
			t.Errorf("IsGlob(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
