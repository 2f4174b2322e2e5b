package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cothinklab/cothink/store"
	"github.com/cothinklab/cothink/types"
)

const (
	configName = ".cothink"
	envPrefix  = "COTHINK"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

var validate = validator.New()

// InitConfig reads in the config file and matching environment variables.
func InitConfig() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")

	projectConfigDir := viper.GetString("project.rootDir")
	if projectConfigDir == "" {
		projectConfigDir = ".cothink"
	}

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else if _, err := os.Stat(projectConfigDir); !os.IsNotExist(err) {
		viper.AddConfigPath(projectConfigDir)
		viper.SetConfigName(configName)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	setDefaults()

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	if err := validate.Struct(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

func setDefaults() {
	viper.SetDefault("project.rootDir", ".cothink")
	viper.SetDefault("project.scenariosDir", "scenarios")
	viper.SetDefault("project.surveysDir", "surveys")
	viper.SetDefault("project.dataDir", "simulation_data")
	viper.SetDefault("project.templatesDir", "templates")

	viper.SetDefault("data.backend", "file")
	viper.SetDefault("data.file", "dataset.json")
	viper.SetDefault("data.format", "json")

	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.modelName", "")
	viper.SetDefault("llm.embeddingModel", "")
	viper.SetDefault("llm.apiKey", "")
	viper.SetDefault("llm.requestTimeoutSeconds", 30)

	viper.SetDefault("cohort.agentCount", 20)
	viper.SetDefault("cohort.researchContext", "university_diverse")
	viper.SetDefault("cohort.seed", 0)

	viper.SetDefault("run.concurrency", 10)
	viper.SetDefault("run.requestGapMillis", 0)

	viper.SetDefault("quality.enabled", true)
	viper.SetDefault("quality.minCoherence", 0.5)
	viper.SetDefault("quality.minFoundationAlignment", 0.6)

	viper.SetDefault("export.formats", []string{"json", "csv", "markdown"})
	viper.SetDefault("export.includeRawResponses", false)
	viper.SetDefault("export.autoAnalyze", true)

	viper.SetDefault("telemetry.disabled", false)
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}

// GetDataFilePath returns the full path to the dataset file.
func GetDataFilePath() string {
	config := GetConfig()
	return filepath.Join(config.Project.RootDir, config.Project.DataDir, config.Data.File)
}

// GetStore initializes and returns the record store selected by the config.
func GetStore() (store.RecordStore, error) {
	config := GetConfig()
	dataFilePath := GetDataFilePath()

	switch config.Data.Backend {
	case "sqlite":
		dbPath := dataFilePath
		if !strings.HasSuffix(dbPath, ".db") {
			dbPath = strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + ".db"
		}
		s := store.NewSQLiteRecordStore()
		if err := s.Initialize(map[string]string{"dbPath": dbPath}); err != nil {
			return nil, fmt.Errorf("initialize sqlite store at %s: %w", dbPath, err)
		}
		return s, nil
	default:
		s := store.NewFileRecordStore()
		if err := s.Initialize(map[string]string{
			"dataFile":       dataFilePath,
			"dataFileFormat": config.Data.Format,
		}); err != nil {
			return nil, fmt.Errorf("initialize store at %s: %w", dataFilePath, err)
		}
		return s, nil
	}
}
