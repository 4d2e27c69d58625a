package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/veracity-tools/veracity/internal/knowledge"
	"github.com/veracity-tools/veracity/internal/llm"
	"github.com/veracity-tools/veracity/internal/model"
	"github.com/veracity-tools/veracity/internal/nlp"
	"github.com/veracity-tools/veracity/internal/source"
	"github.com/veracity-tools/veracity/internal/verify"
)

var (
	verifyDomain  string
	verifyQuery   string
	verifyFacts   []string
	outJSON       string
	maxSources    int
	verifyTimeout time.Duration
	profilesPath  string
	userAgent     string
	insecureTLS   bool
	llmEnabled    bool
	llmModel      string
)

// verifyOutput wraps a session with the optional LLM narrative.
// The summary is presentation only.
type verifyOutput struct {
	Session model.VerificationSession `json:"session"`
	Summary string                    `json:"summary,omitempty"`
}

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify facts against multiple sources",
	Long: `Verify runs a verification session:
- Fetch candidate sources for each fact from domain-appropriate providers
- Detect categorical, numerical, temporal, and semantic conflicts
- Resolve conflicts through an ordered strategy chain
- Report per-fact confidence and an overall session confidence

Example:
  veracity verify --domain geography --query "capital of india" --fact capital="New Delhi"
  veracity verify --domain science --query relativity --fact discoverer="Albert Einstein" --json session.json
  veracity verify --domain geography --query "capital of india" --fact capital="New Delhi" --llm`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyDomain, "domain", "general", "knowledge domain (see 'veracity domains')")
	verifyCmd.Flags().StringVar(&verifyQuery, "query", "", "session query describing the topic")
	verifyCmd.Flags().StringArrayVar(&verifyFacts, "fact", nil, "fact to verify as type=value (repeatable)")
	verifyCmd.Flags().StringVar(&outJSON, "json", "", "write session JSON to this path instead of stdout")
	verifyCmd.Flags().IntVar(&maxSources, "max-sources", 5, "providers consulted per fact")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 2*time.Minute, "overall session timeout")
	verifyCmd.Flags().StringVar(&profilesPath, "profiles", "", "YAML file with custom domain profiles")
	verifyCmd.Flags().StringVar(&userAgent, "ua", "Veracity/0.1 (+https://github.com/veracity-tools/veracity)", "HTTP User-Agent")
	verifyCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")

	// LLM flags
	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM session summary")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	if verifyQuery == "" {
		return fmt.Errorf("--query is required")
	}
	facts, err := parseFacts(verifyFacts)
	if err != nil {
		return err
	}
	if len(facts) == 0 {
		return fmt.Errorf("at least one --fact type=value is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Source.MaxSources = maxSources
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.Output.Verbose = verbose
	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	base, err := loadBase(profilesPath)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	analyzer := nlp.New(base)
	aggregator := source.New(cfg.Source, source.DefaultRegistry(), source.DefaultProviders(cfg.HTTP), logger)
	engine := verify.NewEngine(base, analyzer, aggregator, verify.NewSessionStore(), cfg.Source.MaxSources, logger)

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying %d facts in domain %q\n", len(facts), verifyDomain)
	}

	session := engine.StartSession(ctx, verifyQuery, verifyDomain, facts)

	if verbose {
		for _, result := range session.Results {
			fmt.Fprintf(os.Stderr, "✓ %s: verified=%t confidence=%.2f (%s)\n",
				result.Fact, result.Verified, result.Confidence, result.Method)
		}
		fmt.Fprintf(os.Stderr, "✓ Overall confidence: %.2f\n", session.OverallConfidence)
	}

	output := verifyOutput{Session: session}
	if llmEnabled {
		summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			return fmt.Errorf("configure summarizer: %w", err)
		}
		summary, err := summarizer.Summarize(ctx, session)
		if err != nil {
			// The summary is optional output; a provider failure should
			// not discard verification results.
			fmt.Fprintf(os.Stderr, "LLM summary failed: %v\n", err)
		}
		output.Summary = summary
	}

	return writeJSON(output, outJSON)
}

// parseFacts splits repeated type=value flags into a fact map.
func parseFacts(raw []string) (map[string]string, error) {
	facts := make(map[string]string, len(raw))
	for _, item := range raw {
		idx := strings.Index(item, "=")
		if idx <= 0 || idx == len(item)-1 {
			return nil, fmt.Errorf("invalid --fact %q, want type=value", item)
		}
		facts[item[:idx]] = item[idx+1:]
	}
	return facts, nil
}

// loadBase builds the knowledge base, from a profiles file when given.
func loadBase(path string) (*knowledge.Base, error) {
	if path == "" {
		return knowledge.Default(), nil
	}
	profiles, err := knowledge.LoadProfiles(path)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return knowledge.NewBase(profiles), nil
}

// writeJSON renders v as indented JSON to the path, or stdout when empty.
func writeJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	}
	return nil
}
