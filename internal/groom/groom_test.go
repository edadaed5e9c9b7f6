package groom

// Notes:
// - Idempotence is checked over a hand-picked corpus of tricky inputs rather
//   than fuzzing; the inputs combine every pass so that one pass can expose
//   patterns for another.

import (
	"regexp"
	"strings"
	"testing"
)

const stoplightID = "---\nstoplight-id: abc123XYZ\n---\n"

// ---------------------------------------------------------------------------
// TestStripMetadata - Leading metadata blocks
// ---------------------------------------------------------------------------

func TestStripMetadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "id only",
			input: stoplightID + "# Overview\n",
			want:  "# Overview\n",
		},
		{
			name:  "id then tags",
			input: "---\nstoplight-id: a1\ntags: [api, v2]\n---\n# T\n",
			want:  "# T\n",
		},
		{
			name:  "tags then id",
			input: "---\ntags: []\nstoplight-id: a1\n---\n# T\n",
			want:  "# T\n",
		},
		{
			name:  "block without trailing newline",
			input: "---\nstoplight-id: a1\n---",
			want:  "",
		},
		{
			name:  "mid-document block untouched",
			input: "# Intro\n\n" + stoplightID + "text\n",
			want:  "# Intro\n\n" + stoplightID + "text\n",
		},
		{
			name:  "regular front matter untouched",
			input: "---\ntitle: Hello\n---\nbody\n",
			want:  "---\ntitle: Hello\n---\nbody\n",
		},
		{
			name:  "non-alphanumeric id untouched",
			input: "---\nstoplight-id: a-b\n---\nbody\n",
			want:  "---\nstoplight-id: a-b\n---\nbody\n",
		},
		{
			name:  "stacked blocks strip one",
			input: "---\nstoplight-id: a1\n---\n---\nstoplight-id: b2\n---\nBody\n",
			want:  "---\nstoplight-id: b2\n---\nBody\n",
		},
		{
			name:  "no block",
			input: "plain",
			want:  "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StripMetadata(tt.input); got != tt.want {
				t.Errorf("StripMetadata() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStripOrphans - Boilerplate headers and placeholders
// ---------------------------------------------------------------------------

func TestStripOrphans(t *testing.T) {
	t.Parallel()

	g := New(Options{})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "orphan header removed",
			input: "# GitHub repository\nBody\n",
			want:  "Body\n",
		},
		{
			name:  "orphan header at end without newline",
			input: "Body\n# Contact us",
			want:  "Body\n",
		},
		{
			name:  "orphan header with trailing spaces",
			input: "# Resources  \nBody\n",
			want:  "Body\n",
		},
		{
			name:  "longer header kept",
			input: "# Navixy IoT Logic API Documentation\n",
			want:  "# Navixy IoT Logic API Documentation\n",
		},
		{
			name:  "second-level header kept",
			input: "## Resources\n",
			want:  "## Resources\n",
		},
		{
			name:  "header mid-line kept",
			input: "see # Resources\n",
			want:  "see # Resources\n",
		},
		{
			name:  "placeholder pair removed",
			input: "# Draft\n\nThe beginning of an awesome article...\nNext\n",
			want:  "Next\n",
		},
		{
			name:  "placeholder without blank line kept",
			input: "# Draft\nThe beginning of an awesome article...\n",
			want:  "# Draft\nThe beginning of an awesome article...\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := g.StripOrphans(tt.input); got != tt.want {
				t.Errorf("StripOrphans() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_CustomOptions(t *testing.T) {
	t.Parallel()

	g := New(Options{
		OrphanHeaders: []string{"Legal (draft)"},
		Placeholder:   "TBD.",
	})

	got := g.Groom("# Legal (draft)\n# Resources\n# Stub\n\nTBD.\n")
	if got != "# Resources\n" {
		t.Errorf("Groom() = %q, want %q", got, "# Resources\n")
	}
}

// ---------------------------------------------------------------------------
// TestNormalizeWhitespace - Blank lines and trailing space
// ---------------------------------------------------------------------------

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapse blank lines", "a\n\n\n\nb", "a\n\nb\n"},
		{"trailing spaces", "a  \t\nb ", "a\nb\n"},
		{"spaces between newlines collapse", "a\n  \n\t\n\nb\n", "a\n\nb\n"},
		{"single trailing newline", "a\n\n\n", "a\n"},
		{"blank becomes empty", " \n\t\n", ""},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeWhitespace(tt.input); got != tt.want {
				t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestGroom - Full pipeline properties
// ---------------------------------------------------------------------------

var groomCorpus = []string{
	"",
	"\n\n\n",
	stoplightID + "# Overview\nHello.\n",
	stoplightID + stoplightID + "body\n",
	"# Resources\n" + stoplightID + "body\n",
	"# Contact us\n# Contact us\n\n\n\nbody   \n",
	"# A\n\n\n\nThe beginning of an awesome article...\n",
	"# A\n\nThe beginning of an awesome article...\n# B\n\nThe beginning of an awesome article...",
	"text  \n\n\n\n\n# GitHub repository\n\n\n\nmore\t\t\n",
	"---\nstoplight-id: x1\ntags: [a]\n---\n\n\n# User documentation\n\n",
	"line one\nline two\n   \n",
	"---\nstoplight-id: a1\n---\n---\nstoplight-id: b2\n---\nBody\n",
}

func TestGroom_Idempotent(t *testing.T) {
	t.Parallel()

	for _, input := range groomCorpus {
		once := Groom(input)
		twice := Groom(once)
		if once != twice {
			t.Errorf("Groom not idempotent for %q:\nonce  %q\ntwice %q", input, once, twice)
		}
	}
}

func TestGroom_Invariants(t *testing.T) {
	t.Parallel()

	trailing := regexp.MustCompile(`(?m)[ \t]+$`)

	for _, input := range groomCorpus {
		got := Groom(input)
		if strings.Contains(got, "\n\n\n") {
			t.Errorf("Groom(%q) left a blank-line run: %q", input, got)
		}
		if trailing.MatchString(got) {
			t.Errorf("Groom(%q) left trailing whitespace: %q", input, got)
		}
		if got != "" && (!strings.HasSuffix(got, "\n") || strings.HasSuffix(got, "\n\n")) {
			t.Errorf("Groom(%q) = %q, want exactly one trailing newline", input, got)
		}
	}
}

func TestGroom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "metadata stripped",
			input: stoplightID + "# Overview\nHello.",
			want:  "# Overview\nHello.\n",
		},
		{
			name:  "orphan before metadata exposes the block",
			input: "# Resources\n" + stoplightID + "body\n",
			want:  "body\n",
		},
		{
			name:  "stacked metadata blocks over rounds",
			input: "---\nstoplight-id: a1\n---\n---\nstoplight-id: b2\n---\nBody\n",
			want:  "Body\n",
		},
		{
			name:  "placeholder page becomes empty",
			input: stoplightID + "# Draft\n\nThe beginning of an awesome article...\n",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Groom(tt.input); got != tt.want {
				t.Errorf("Groom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGroomWithStats(t *testing.T) {
	t.Parallel()

	_, stats := New(Options{}).GroomWithStats(stoplightID + "# Resources\nbody  \n")

	if stats.Metadata != len(stoplightID) {
		t.Errorf("Metadata = %d, want %d", stats.Metadata, len(stoplightID))
	}
	if stats.Orphans != len("# Resources\n") {
		t.Errorf("Orphans = %d, want %d", stats.Orphans, len("# Resources\n"))
	}
	if stats.Whitespace != 2 {
		t.Errorf("Whitespace = %d, want 2", stats.Whitespace)
	}
	if stats.Rounds != 2 {
		t.Errorf("Rounds = %d, want 2", stats.Rounds)
	}
}
