package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/himkwtn/expression-mongo/pkg/apihelpers"
	"github.com/himkwtn/expression-mongo/pkg/db"
	"github.com/himkwtn/expression-mongo/pkg/expression"
	"github.com/himkwtn/expression-mongo/pkg/utils"

	mw "github.com/himkwtn/expression-mongo/pkg/apihelpers/middlewares"
	rankingDB "github.com/himkwtn/expression-mongo/pkg/db/ranking"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_RANKING_DB_USERNAME = "RANKING_DB_USERNAME"
	ENV_RANKING_DB_PASSWORD = "RANKING_DB_PASSWORD"

	ENV_MANAGEMENT_USER_JWT_SIGN_KEY = "MANAGEMENT_USER_JWT_SIGN_KEY"
)

type RankingApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// user management configs
	ManagementUserJWTConfig struct {
		SignKey string `json:"sign_key" yaml:"sign_key"`
	} `json:"management_user_jwt_config" yaml:"management_user_jwt_config"`

	APIClients []mw.APIClient `json:"api_clients" yaml:"api_clients"`

	// DB configs
	DBConfigs struct {
		RankingDB db.DBConfigYaml `json:"ranking_db" yaml:"ranking_db"`
	} `json:"db_configs" yaml:"db_configs"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`

	RankingConfig struct {
		AllowedVariables []string `json:"allowed_variables" yaml:"allowed_variables"`
		DateFields       []string `json:"date_fields" yaml:"date_fields"`
		ScoreField       string   `json:"score_field" yaml:"score_field"`
	} `json:"ranking_config" yaml:"ranking_config"`
}

var (
	conf             RankingApiConfig
	rankingDBService *rankingDB.RankingDBService
	whitelist        expression.Whitelist
)

func init() {
	if err := utils.ReadYamlConfig(os.Getenv(ENV_CONFIG_FILE_PATH), &conf); err != nil {
		slog.Error("Error reading config file", slog.String("error", err.Error()))
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	readSecrets()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if len(conf.RankingConfig.AllowedVariables) > 0 {
		whitelist = expression.NewWhitelist(conf.RankingConfig.AllowedVariables...)
	} else {
		whitelist = expression.DefaultWhitelist()
	}
	slog.Info("Ranking variables allowed", slog.Any("variables", whitelist.Names()))

	initDBs()
}

func readSecrets() {
	utils.OverrideFromEnv(&conf.DBConfigs.RankingDB.Username, ENV_RANKING_DB_USERNAME)
	utils.OverrideFromEnv(&conf.DBConfigs.RankingDB.Password, ENV_RANKING_DB_PASSWORD)
	utils.OverrideFromEnv(&conf.ManagementUserJWTConfig.SignKey, ENV_MANAGEMENT_USER_JWT_SIGN_KEY)

	for i := range conf.APIClients {
		utils.OverrideFromEnv(&conf.APIClients[i].Key, utils.GenerateAPIClientKeyEnvVarName(conf.APIClients[i].Name))
		if conf.APIClients[i].Key == "" {
			slog.Warn("API client without key will be ignored", slog.String("client", conf.APIClients[i].Name))
		}
	}
}

func initDBs() {
	var err error
	rankingDBService, err = rankingDB.NewRankingDBService(db.DBConfigFromYamlObj(conf.DBConfigs.RankingDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Ranking DB", slog.String("error", err.Error()))
		panic(err)
	}
}
