package knowledge

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FactPattern is one declarative extraction rule: a named pattern whose
// capture group yields the fact value. Rules are evaluated in slice order.
type FactPattern struct {
	Name    string
	Pattern *regexp.Regexp
	Group   int
}

// Profile is the static configuration for one domain: keyword lists,
// fact-extraction rules, authority sources and per-source trust weights.
// Immutable after construction.
type Profile struct {
	Domain            string
	Keywords          []string
	FactPatterns      []FactPattern
	AuthoritySources  []string
	ConfidenceFactors map[string]float64
}

// Base is the domain knowledge base. Pure data lookup, no side effects.
type Base struct {
	profiles map[string]*Profile
	order    []string
}

// NewBase builds a knowledge base from the given profiles.
// Later profiles with a duplicate domain key replace earlier ones.
func NewBase(profiles []Profile) *Base {
	b := &Base{profiles: make(map[string]*Profile)}
	for i := range profiles {
		p := profiles[i]
		if _, seen := b.profiles[p.Domain]; !seen {
			b.order = append(b.order, p.Domain)
		}
		b.profiles[p.Domain] = &p
	}
	return b
}

// Default returns a knowledge base with the built-in domain profiles.
func Default() *Base {
	return NewBase(defaultProfiles())
}

// Profile returns the profile for a domain, or false when none is configured.
func (b *Base) Profile(domain string) (*Profile, bool) {
	p, ok := b.profiles[domain]
	return p, ok
}

// Domains lists the configured domain keys in registration order.
func (b *Base) Domains() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// ExtractFacts applies each of the domain's fact patterns to the text,
// keeping the first match per fact name. Unknown domains yield an empty map.
func (b *Base) ExtractFacts(text, domain string) map[string]string {
	facts := make(map[string]string)
	p, ok := b.profiles[domain]
	if !ok {
		return facts
	}
	for _, fp := range p.FactPatterns {
		if _, done := facts[fp.Name]; done {
			continue
		}
		m := fp.Pattern.FindStringSubmatch(text)
		if m == nil || fp.Group >= len(m) {
			continue
		}
		if v := strings.TrimSpace(m[fp.Group]); v != "" {
			facts[fp.Name] = v
		}
	}
	return facts
}

// AuthoritySources returns the domain's authority source list, empty when unknown.
func (b *Base) AuthoritySources(domain string) []string {
	if p, ok := b.profiles[domain]; ok {
		return p.AuthoritySources
	}
	return nil
}

// ConfidenceFactors returns the domain's per-source trust weights, empty when unknown.
func (b *Base) ConfidenceFactors(domain string) map[string]float64 {
	if p, ok := b.profiles[domain]; ok {
		return p.ConfidenceFactors
	}
	return nil
}

// profileSpec is the YAML shape of a profile; patterns are compiled on load.
type profileSpec struct {
	Domain            string             `yaml:"domain"`
	Keywords          []string           `yaml:"keywords"`
	FactPatterns      []factPatternSpec  `yaml:"fact_patterns"`
	AuthoritySources  []string           `yaml:"authority_sources"`
	ConfidenceFactors map[string]float64 `yaml:"confidence_factors"`
}

type factPatternSpec struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Group   int    `yaml:"group"`
}

// LoadProfiles reads domain profiles from a YAML file. This keeps the
// pattern data external to code; the file fully replaces the built-ins.
func LoadProfiles(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	var specs []profileSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	profiles := make([]Profile, 0, len(specs))
	for _, s := range specs {
		if s.Domain == "" {
			return nil, fmt.Errorf("profile without domain key")
		}
		p := Profile{
			Domain:            s.Domain,
			Keywords:          s.Keywords,
			AuthoritySources:  s.AuthoritySources,
			ConfidenceFactors: s.ConfidenceFactors,
		}
		for _, fps := range s.FactPatterns {
			re, err := regexp.Compile(fps.Pattern)
			if err != nil {
				return nil, fmt.Errorf("profile %q pattern %q: %w", s.Domain, fps.Name, err)
			}
			group := fps.Group
			if group == 0 {
				group = 1
			}
			p.FactPatterns = append(p.FactPatterns, FactPattern{Name: fps.Name, Pattern: re, Group: group})
		}
		profiles = append(profiles, p)
	}
	sort.SliceStable(profiles, func(i, j int) bool { return profiles[i].Domain < profiles[j].Domain })
	return profiles, nil
}
