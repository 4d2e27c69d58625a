package knowledge

import "regexp"

// pat compiles a case-insensitive fact pattern with capture group 1.
func pat(name, expr string) FactPattern {
	return FactPattern{Name: name, Pattern: regexp.MustCompile("(?i)" + expr), Group: 1}
}

// defaultProfiles returns the built-in domain profiles. The keyword lists,
// patterns, authority sources and trust weights are data, not behavior;
// custom deployments replace them wholesale via LoadProfiles.
func defaultProfiles() []Profile {
	return []Profile{
		{
			Domain: "politics",
			Keywords: []string{
				"pm", "prime minister", "president", "government", "minister",
				"parliament", "election", "vote", "party", "political",
			},
			FactPatterns: []FactPattern{
				pat("office_holder", `(?:current|serving|incumbent)[:\s]+([^.,]+)`),
				pat("political_party", `(?:party|affiliation|member of)[:\s]+([^.,]+)`),
				pat("term_start", `(?:assumed office|took office|since)[:\s]+([^.,]+)`),
				pat("residence", `(?:residence|lives at|address)[:\s]+([^.,]+)`),
				pat("predecessor", `(?:preceded by|replaced|after)[:\s]+([^.,]+)`),
			},
			AuthoritySources: []string{"wikipedia.org", "pmindia.gov.in", "presidentofindia.gov.in", "parliament.gov.in"},
			ConfidenceFactors: map[string]float64{
				"official_site": 0.95, "wikipedia": 0.9, "news": 0.7, "blog": 0.5,
			},
		},
		{
			Domain: "science",
			Keywords: []string{
				"physics", "chemistry", "biology", "mathematics", "scientific",
				"research", "experiment", "theory", "law", "formula",
			},
			FactPatterns: []FactPattern{
				pat("discovery_date", `(?:discovered|found|established)[:\s]+([^.,]+)`),
				pat("discoverer", `(?:discovered by|found by|created by)[:\s]+([^.,]+)`),
				pat("formula", `(?:formula|equation)[:\s]+([^.,]+)`),
				pat("application", `(?:used for|applied to|purpose)[:\s]+([^.,]+)`),
				pat("unit", `(?:measured in|unit)[:\s]+([^.,]+)`),
			},
			AuthoritySources: []string{"wikipedia.org", "britannica.com", "scientificamerican.com", "nature.com", "science.org"},
			ConfidenceFactors: map[string]float64{
				"peer_reviewed": 0.95, "encyclopedia": 0.9, "educational": 0.8, "news": 0.7,
			},
		},
		{
			Domain: "technology",
			Keywords: []string{
				"ai", "artificial intelligence", "computer", "software", "programming",
				"tech", "startup", "company", "founder", "ceo",
			},
			FactPatterns: []FactPattern{
				pat("founder", `(?:founded by|created by|founder)[:\s]+([^.,]+)`),
				pat("founded_date", `(?:founded|established|created)[:\s]+([^.,]+)`),
				pat("headquarters", `(?:headquarters|based in|located in)[:\s]+([^.,]+)`),
				pat("ceo", `(?:ceo|chief executive|leader)[:\s]+([^.,]+)`),
				pat("valuation", `(?:valued at|worth|valuation)[:\s]+([^.,]+)`),
			},
			AuthoritySources: []string{"wikipedia.org", "techcrunch.com", "crunchbase.com", "bloomberg.com", "reuters.com"},
			ConfidenceFactors: map[string]float64{
				"official_site": 0.95, "financial_news": 0.9, "tech_news": 0.8, "blog": 0.6,
			},
		},
		{
			Domain: "geography",
			Keywords: []string{
				"country", "city", "capital", "population", "area",
				"continent", "border", "climate", "language", "currency",
			},
			FactPatterns: []FactPattern{
				pat("capital", `(?:capital|seat of government)[:\s]+([^.,]+)`),
				pat("population", `(?:population|inhabitants|people)[:\s]+([^.,]+)`),
				pat("area", `(?:area|size|square)[:\s]+([^.,]+)`),
				pat("currency", `(?:currency|money)[:\s]+([^.,]+)`),
				pat("language", `(?:language|spoken)[:\s]+([^.,]+)`),
			},
			AuthoritySources: []string{"wikipedia.org", "britannica.com", "cia.gov", "worldbank.org", "un.org"},
			ConfidenceFactors: map[string]float64{
				"government_data": 0.95, "international_org": 0.9, "encyclopedia": 0.8, "news": 0.7,
			},
		},
		{
			Domain: "history",
			Keywords: []string{
				"war", "battle", "ancient", "medieval", "revolution",
				"independence", "empire", "dynasty", "century", "year",
			},
			FactPatterns: []FactPattern{
				pat("date", `(?:occurred|happened|took place)[:\s]+([^.,]+)`),
				pat("participants", `(?:fought by|between|involved)[:\s]+([^.,]+)`),
				pat("outcome", `(?:result|outcome|ended)[:\s]+([^.,]+)`),
				pat("significance", `(?:important|significant|impact)[:\s]+([^.,]+)`),
				pat("location", `(?:took place|occurred|happened)[:\s]+([^.,]+)`),
			},
			AuthoritySources: []string{"wikipedia.org", "britannica.com", "history.com", "nationalgeographic.com", "smithsonianmag.com"},
			ConfidenceFactors: map[string]float64{
				"academic": 0.95, "museum": 0.9, "encyclopedia": 0.8, "educational": 0.7,
			},
		},
	}
}
