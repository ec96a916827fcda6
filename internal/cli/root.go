// Package cli defines the extract_terms command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/termtools/extract-terms/internal/model"
	"github.com/termtools/extract-terms/internal/pipeline"
)

var (
	cfgFile string
	verbose bool

	inputDir  string
	outputDir string

	splitMode    string
	chunkSize    int
	chunkOverlap int

	workers     int
	llmProvider string
	llmModel    string
	maxTokens   int
	llmTimeout  time.Duration
	runTimeout  time.Duration

	rateLimit float64
	burst     int
	noCache   bool

	keepUnmatched  bool
	withConfidence bool
)

// rootCmd runs the whole extract-and-align pipeline itself; there is
// no separate "run" subcommand because a run is all this tool does.
var rootCmd = &cobra.Command{
	Use:   "extract_terms <zh_doc> <en_doc>",
	Short: "Extract and align medical terminology from paired Chinese/English PDFs",
	Long: `extract_terms builds a bilingual medical glossary from a paired
Chinese/English document set.

Each document is parsed, cleaned and split into bounded chunks; every
chunk goes through one LLM extraction call (in parallel), the two
deduplicated term lists are aligned by the LLM, and the results land
as timestamped CSV files in the output directory.

Example:
  extract_terms manual_zh.pdf manual_en.pdf
  extract_terms manual_zh.pdf manual_en.pdf --input-dir ./docs --output-dir ./glossary
  extract_terms manual_zh.pdf manual_en.pdf --provider openai --model gpt-4o-mini --workers 8`,
	Args:          cobra.ExactArgs(2),
	RunE:          runPipeline,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("extract_terms v0.3.2")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.extract_terms/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// IO flags
	rootCmd.Flags().StringVar(&inputDir, "input-dir", "./input", "directory document paths are resolved against")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "./output", "directory CSVs are written to (created if missing)")

	// Split flags
	rootCmd.Flags().StringVar(&splitMode, "split", "paragraph", "chunking mode (paragraph, sentence, length)")
	rootCmd.Flags().IntVar(&chunkSize, "chunk-size", 4096, "chunk size bound in runes")
	rootCmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", 0, "chunk overlap in runes (length mode)")

	// LLM flags
	rootCmd.Flags().StringVar(&llmProvider, "provider", "anthropic", "LLM provider (anthropic, openai, ollama)")
	rootCmd.Flags().StringVar(&llmModel, "model", "", "LLM model name (provider default if empty)")
	rootCmd.Flags().IntVar(&maxTokens, "max-tokens", 4096, "max response tokens per LLM call")
	rootCmd.Flags().DurationVar(&llmTimeout, "llm-timeout", 60*time.Second, "timeout per LLM request")
	rootCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Minute, "overall run timeout")

	// Concurrency flags
	rootCmd.Flags().IntVar(&workers, "workers", 5, "parallel chunk extraction workers")
	rootCmd.Flags().Float64Var(&rateLimit, "rate", 2.0, "LLM requests per second")
	rootCmd.Flags().IntVar(&burst, "burst", 5, "LLM request burst size")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the LLM response cache")

	// Alignment flags
	rootCmd.Flags().BoolVar(&keepUnmatched, "keep-unmatched", false, "emit unmatched terms with an empty counterpart")
	rootCmd.Flags().BoolVar(&withConfidence, "with-confidence", false, "include the confidence column in the glossary CSV")

	rootCmd.AddCommand(versionCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	zhDoc, enDoc := args[0], args[1]

	setupLogging()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, zhDoc, enDoc)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ %d Chinese terms, %d English terms, %d aligned pairs\n",
		result.ZHTerms, result.ENTerms, result.Pairs)
	fmt.Fprintf(os.Stderr, "✓ Terms:    %s\n", result.TermsFile)
	fmt.Fprintf(os.Stderr, "✓ Glossary: %s\n", result.GlossaryFile)

	return nil
}

// buildConfig merges defaults, config file/env values and flags, then
// resolves the provider credential. A missing key fails here, before
// the pipeline loads anything. Only flags the user actually set
// override the config file, keeping the documented hierarchy intact.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, model.WrapError(model.ConfigurationError, err, "parse configuration")
	}

	changed := cmd.Flags().Changed

	if changed("input-dir") || cfg.Input.Dir == "" {
		cfg.Input.Dir = inputDir
	}
	if changed("output-dir") || cfg.Output.Dir == "" {
		cfg.Output.Dir = outputDir
	}
	if changed("split") || cfg.Split.Mode == "" {
		cfg.Split.Mode = splitMode
	}
	if changed("chunk-size") || cfg.Split.ChunkSize == 0 {
		cfg.Split.ChunkSize = chunkSize
	}
	if changed("chunk-overlap") {
		cfg.Split.ChunkOverlap = chunkOverlap
	}
	if changed("provider") || cfg.LLM.Provider == "" {
		cfg.LLM.Provider = llmProvider
	}
	if changed("model") {
		cfg.LLM.Model = llmModel
	}
	if changed("max-tokens") || cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = maxTokens
	}
	if changed("llm-timeout") || cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = int(llmTimeout.Seconds())
	}
	if changed("workers") || cfg.Concurrency.Workers == 0 {
		cfg.Concurrency.Workers = workers
	}
	if changed("rate") || cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = rateLimit
	}
	if changed("burst") || cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = burst
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if changed("keep-unmatched") {
		cfg.Align.KeepUnmatched = keepUnmatched
	}
	if changed("with-confidence") {
		cfg.Align.WithConfidence = withConfidence
	}
	cfg.Verbose = cfg.Verbose || verbose

	switch cfg.LLM.Provider {
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, model.NewError(model.AuthError, "ANTHROPIC_API_KEY environment variable not set")
		}
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, model.NewError(model.AuthError, "OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

func setupLogging() {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// initConfig reads in config file and ENV variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.extract_terms")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Register every key with its default so AutomaticEnv has keys to
	// match against; without this, Unmarshal never consults the
	// environment for keys absent from the config file.
	setViperDefaults()

	viper.SetEnvPrefix("EXTRACT_TERMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setViperDefaults seeds viper with the built-in defaults, keyed the
// way the config file spells them (EXTRACT_TERMS_SPLIT_CHUNK_SIZE maps
// to split.chunk_size, and so on).
func setViperDefaults() {
	def := model.DefaultConfig()

	viper.SetDefault("input.dir", def.Input.Dir)
	viper.SetDefault("output.dir", def.Output.Dir)
	viper.SetDefault("split.mode", def.Split.Mode)
	viper.SetDefault("split.chunk_size", def.Split.ChunkSize)
	viper.SetDefault("split.chunk_overlap", def.Split.ChunkOverlap)
	viper.SetDefault("llm.provider", def.LLM.Provider)
	viper.SetDefault("llm.model", def.LLM.Model)
	viper.SetDefault("llm.base_url", def.LLM.BaseURL)
	viper.SetDefault("llm.timeout", def.LLM.Timeout)
	viper.SetDefault("llm.max_tokens", def.LLM.MaxTokens)
	viper.SetDefault("llm.temperature", def.LLM.Temperature)
	viper.SetDefault("concurrency.workers", def.Concurrency.Workers)
	viper.SetDefault("rate_limit.requests_per_second", def.RateLimit.RequestsPerSecond)
	viper.SetDefault("rate_limit.burst", def.RateLimit.Burst)
	viper.SetDefault("cache.enabled", def.Cache.Enabled)
	viper.SetDefault("cache.dir", def.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", def.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl_days", def.Cache.DiskTTLDay)
	viper.SetDefault("align.batch_size", def.Align.BatchSize)
	viper.SetDefault("align.keep_unmatched", def.Align.KeepUnmatched)
	viper.SetDefault("align.with_confidence", def.Align.WithConfidence)
}
