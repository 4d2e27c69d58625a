package graph

import (
	"context"
	"sort"
	"strings"

	"github.com/veracity-tools/veracity/internal/model"
)

// Verification methods reported on a FactCheck.
const (
	MethodPatternMatching       = "pattern_matching"
	MethodAuthorityConfirmation = "authority_source_confirmation"
	MethodCrossSourceAgreement  = "cross_source_agreement"
)

// VerifyFact checks a single (type, value) assertion against the domain's
// fact pattern and its authority sources. Confidence accumulates additively
// and is clamped to [0,1]; the caller decides the pass threshold.
func (b *Builder) VerifyFact(ctx context.Context, factType, factValue, domain string) model.FactCheck {
	check := model.FactCheck{
		Fact:               factType + ": " + factValue,
		SupportingSources:  []string{},
		ConflictingSources: []string{},
		Method:             MethodPatternMatching,
	}

	if profile, ok := b.base.Profile(domain); ok {
		for _, fp := range profile.FactPatterns {
			if fp.Name != factType {
				continue
			}
			if fp.Pattern.MatchString(factValue) {
				check.Confidence += 0.3
				check.SupportingSources = append(check.SupportingSources, "domain_knowledge")
			}
			break
		}
	}

	if b.Authority != nil {
		for _, src := range b.base.AuthoritySources(domain) {
			content, err := b.Authority.FetchAuthority(ctx, src, factValue)
			if err != nil {
				b.logger.Printf("authority %s: %v", src, err)
				continue
			}
			if strings.Contains(content, factValue) {
				check.Confidence += 0.2
				check.SupportingSources = append(check.SupportingSources, src)
				check.Method = MethodAuthorityConfirmation
			}
		}
	}

	if len(check.SupportingSources) > 1 {
		check.Confidence += 0.2
		check.Method = MethodCrossSourceAgreement
	}

	if check.Confidence > 1 {
		check.Confidence = 1
	}
	return check
}

// CheckFacts verifies each extracted (type, value) pair, in sorted key order.
func (b *Builder) CheckFacts(ctx context.Context, facts map[string]string, domain string) []model.FactCheck {
	checks := make([]model.FactCheck, 0, len(facts))
	for _, factType := range sortedKeys(facts) {
		checks = append(checks, b.VerifyFact(ctx, factType, facts[factType], domain))
	}
	return checks
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
