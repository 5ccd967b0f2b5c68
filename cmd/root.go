package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "career-responder"
)

type Config struct {
	Gemini    *GeminiConfig    `mapstructure:"gemini"`
	Resend    *ResendConfig    `mapstructure:"resend"`
	Ntfy      *NtfyConfig      `mapstructure:"ntfy"`
	Evaluator *EvaluatorConfig `mapstructure:"evaluator"`
	Server    *ServerConfig    `mapstructure:"server"`
	Storage   *StorageConfig   `mapstructure:"storage"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ResendConfig struct {
	APIKey      string `mapstructure:"api-key"`
	APIKeyFile  string `mapstructure:"api-key-file"`
	From        string `mapstructure:"from"`
	NotifyEmail string `mapstructure:"notify-email"`
}

type NtfyConfig struct {
	Topic string `mapstructure:"topic"`
}

type EvaluatorConfig struct {
	Threshold    int `mapstructure:"threshold"`
	MaxRevisions int `mapstructure:"max-revisions"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-responder answers employer emails on the candidate's behalf using an LLM pipeline",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"resend.api-key-file": "RESEND_API_KEY_FILE",
		"ntfy.topic":          "NTFY_TOPIC",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.max-retries", 2)
	viper.SetDefault("resend.from", "onboarding@resend.dev")
	viper.SetDefault("ntfy.topic", "deniz-career-agent")
	viper.SetDefault("evaluator.threshold", 7)
	viper.SetDefault("evaluator.max-revisions", 3)
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("storage.driver", "memory")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-responder.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// The config file is optional. Environment variables and defaults cover
	// everything a file can set.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
