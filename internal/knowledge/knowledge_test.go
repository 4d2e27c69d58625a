package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBase_ProfileLookup(t *testing.T) {
	base := Default()

	p, ok := base.Profile("geography")
	if !ok {
		t.Fatal("Expected geography profile to exist")
	}
	if p.Domain != "geography" {
		t.Errorf("Expected domain geography, got %s", p.Domain)
	}
	if len(p.Keywords) == 0 {
		t.Error("Expected geography keywords")
	}
	if len(p.AuthoritySources) == 0 {
		t.Error("Expected geography authority sources")
	}

	if _, ok := base.Profile("astrology"); ok {
		t.Error("Expected no profile for unconfigured domain")
	}
}

func TestBase_Domains(t *testing.T) {
	base := Default()
	domains := base.Domains()

	if len(domains) != 5 {
		t.Fatalf("Expected 5 built-in domains, got %d", len(domains))
	}

	want := map[string]bool{
		"politics": true, "science": true, "technology": true,
		"geography": true, "history": true,
	}
	for _, d := range domains {
		if !want[d] {
			t.Errorf("Unexpected domain %q", d)
		}
	}
}

func TestBase_ExtractFacts(t *testing.T) {
	base := Default()

	text := "India is a large country. Capital: New Delhi, and the population: 1.4 billion people live there. Currency: Indian Rupee."
	facts := base.ExtractFacts(text, "geography")

	if facts["capital"] != "New Delhi" {
		t.Errorf("Expected capital 'New Delhi', got %q", facts["capital"])
	}
	if facts["currency"] != "Indian Rupee" {
		t.Errorf("Expected currency 'Indian Rupee', got %q", facts["currency"])
	}
	if _, ok := facts["area"]; ok {
		t.Error("Did not expect an area fact")
	}
}

func TestBase_ExtractFacts_UnknownDomain(t *testing.T) {
	base := Default()
	facts := base.ExtractFacts("Capital: New Delhi", "astrology")
	if len(facts) != 0 {
		t.Errorf("Expected no facts for unknown domain, got %v", facts)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips html",
			input: "<p>New   Delhi is the <b>capital</b> of India.</p>",
			want:  "New Delhi is the capital of India.",
		},
		{
			name:  "strips wikipedia boilerplate",
			input: "From Wikipedia, the free encyclopedia New Delhi is the capital.",
			want:  "New Delhi is the capital.",
		},
		{
			name:  "collapses whitespace",
			input: "New Delhi \n\n  is   the capital.",
			want:  "New Delhi is the capital.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.input)
			if got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestQualityScore_Bounds(t *testing.T) {
	texts := []string{
		"",
		"click here click here click here",
		"The capital of India is New Delhi.",
		"The government of India is based in New Delhi, and the city has been the capital since 1931.",
	}
	for _, text := range texts {
		score := QualityScore(text)
		if score < 0 || score > 1 {
			t.Errorf("QualityScore(%q) = %f, out of [0,1]", text, score)
		}
	}
}

func TestQualityScore_PrefersProse(t *testing.T) {
	prose := "The capital of India is New Delhi."
	junk := "click here read more www.example.com view more"

	if QualityScore(prose) <= QualityScore(junk) {
		t.Errorf("Expected prose to score above junk: prose=%f junk=%f",
			QualityScore(prose), QualityScore(junk))
	}
}

func TestLoadProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")

	yaml := `
- domain: cooking
  keywords: [recipe, ingredient, dish]
  fact_patterns:
    - name: origin
      pattern: '(?i)(?:originated in|origin)[:\s]+([^.,]+)'
  authority_sources: [example.org]
  confidence_factors:
    encyclopedia: 0.8
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles failed: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("Expected 1 profile, got %d", len(profiles))
	}

	base := NewBase(profiles)
	facts := base.ExtractFacts("Laksa originated in: Malaysia.", "cooking")
	if facts["origin"] != "Malaysia" {
		t.Errorf("Expected origin Malaysia, got %q", facts["origin"])
	}
}

func TestLoadProfiles_BadPattern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")

	yaml := `
- domain: broken
  fact_patterns:
    - name: bad
      pattern: '(['
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadProfiles(path); err == nil {
		t.Error("Expected error for invalid pattern")
	}
}
