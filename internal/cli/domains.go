package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veracity-tools/veracity/internal/source"
)

// domainsCmd represents the domains command
var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List available knowledge domains",
	Long: `Display every configured knowledge domain with its keywords, fact
patterns, authority sources, and the providers consulted for it.`,
	RunE: runDomains,
}

func init() {
	rootCmd.AddCommand(domainsCmd)
	domainsCmd.Flags().StringVar(&profilesPath, "profiles", "", "YAML file with custom domain profiles")
}

func runDomains(cmd *cobra.Command, args []string) error {
	base, err := loadBase(profilesPath)
	if err != nil {
		return err
	}
	registry := source.DefaultRegistry()
	routing := registry.Domains()

	for _, domain := range base.Domains() {
		profile, _ := base.Profile(domain)

		fmt.Printf("%s\n", domain)
		fmt.Printf("  keywords:  %s\n", strings.Join(profile.Keywords, ", "))
		names := make([]string, 0, len(profile.FactPatterns))
		for _, pattern := range profile.FactPatterns {
			names = append(names, pattern.Name)
		}
		fmt.Printf("  facts:     %s\n", strings.Join(names, ", "))
		fmt.Printf("  authority: %s\n", strings.Join(profile.AuthoritySources, ", "))
		if providers, ok := routing[domain]; ok {
			fmt.Printf("  providers: %s\n", strings.Join(providers, ", "))
		}
		fmt.Println()
	}
	return nil
}
