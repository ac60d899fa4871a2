package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/sourcing-agent/internal/multisource"
	"github.com/spigell/sourcing-agent/internal/ranking"
	"github.com/spigell/sourcing-agent/internal/scoring"
	"github.com/spigell/sourcing-agent/internal/source"
)

const (
	app = "sourcing-agent"

	SourceTypeFile = "file"
	SourceTypeHTTP = "http"

	ProviderTemplate = "template"
	ProviderGemini   = "gemini"
)

type Config struct {
	Job      *JobConfig      `mapstructure:"job" validate:"required"`
	Source   *SourceConfig   `mapstructure:"source" validate:"required"`
	GitHub   *GitHubConfig   `mapstructure:"github"`
	Scoring  *ScoringConfig  `mapstructure:"scoring"`
	Ranking  *RankingConfig  `mapstructure:"ranking" validate:"required"`
	Outreach *OutreachConfig `mapstructure:"outreach"`
	Output   string          `mapstructure:"output"`
}

type JobConfig struct {
	File     string `mapstructure:"file" validate:"required_without=Text"`
	Text     string `mapstructure:"text" validate:"required_without=File"`
	Location string `mapstructure:"location"`
	Title    string `mapstructure:"title"`
}

type SourceConfig struct {
	Type      string              `mapstructure:"type" validate:"oneof=file http"`
	File      string              `mapstructure:"file" validate:"required_if=Type file"`
	URL       string              `mapstructure:"url" validate:"required_if=Type http,omitempty,url"`
	Query     source.SearchParams `mapstructure:"query"`
	PerPage   int                 `mapstructure:"per-page" validate:"gte=0"`
	PageDelay time.Duration       `mapstructure:"page-delay" validate:"gte=0"`
	TokenFile string              `mapstructure:"token-file"`
	UserAgent string              `mapstructure:"user-agent"`
}

type GitHubConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	APIURL    string `mapstructure:"api-url" validate:"omitempty,url"`
	TokenFile string `mapstructure:"token-file"`
}

type ScoringConfig struct {
	MultiSource        bool                 `mapstructure:"multi-source"`
	Concurrency        int                  `mapstructure:"concurrency" validate:"gte=0"`
	Weights            *scoring.Weights     `mapstructure:"weights"`
	MultiSourceWeights *multisource.Weights `mapstructure:"multi-source-weights"`
	Lexicon            *scoring.Lexicon     `mapstructure:"lexicon"`
}

type RankingConfig struct {
	MinScore      float64 `mapstructure:"min-score" validate:"gte=0,lte=10"`
	TopN          int     `mapstructure:"top-n" validate:"gte=0"`
	ContactedFile string  `mapstructure:"contacted-file"`
	KeepErrored   bool    `mapstructure:"keep-errored"`
}

type OutreachConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=template gemini"`
	Type     string        `mapstructure:"type"`
	Tone     string        `mapstructure:"tone" validate:"omitempty,oneof=professional friendly casual"`
	Role     string        `mapstructure:"role"`
	Sender   string        `mapstructure:"sender"`
	Company  string        `mapstructure:"company"`
	Context  string        `mapstructure:"context"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "sourcing-agent scores candidate profiles against a job and drafts outreach for the best fits",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("source.token-file", "SOURCING_TOKEN_FILE"); err != nil {
		log.Fatalf("binding SOURCING_TOKEN_FILE environment variable: %v", err)
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is sourcing-agent.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.type", SourceTypeFile)
	v.SetDefault("github.api-url", source.DefaultGitHubURL)
	v.SetDefault("ranking.min-score", ranking.DefaultMinScore)
	v.SetDefault("ranking.top-n", ranking.DefaultTopN)
	v.SetDefault("outreach.provider", ProviderTemplate)
	v.SetDefault("outreach.gemini.max-retries", 3)
	v.SetDefault("outreach.gemini.max-log-length", 200)
}

func initConfig() {
	// Config needed only for score command now. If there is no config, we can skip initialization
	if scoreCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
	case cfgFile == "" && errors.As(err, &notFound):
		// Flags alone can describe a run.
	default:
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}
