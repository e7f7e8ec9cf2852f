package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/himkwtn/expression-mongo/pkg/db"
	"github.com/himkwtn/expression-mongo/pkg/expression"
	"github.com/himkwtn/expression-mongo/pkg/utils"

	rankingDB "github.com/himkwtn/expression-mongo/pkg/db/ranking"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_RANKING_DB_USERNAME = "RANKING_DB_USERNAME"
	ENV_RANKING_DB_PASSWORD = "RANKING_DB_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		RankingDB db.DBConfigYaml `json:"ranking_db" yaml:"ranking_db"`
	} `json:"db_configs" yaml:"db_configs"`

	InstanceIDs []string `json:"instance_ids" yaml:"instance_ids"`

	AllowedVariables []string `json:"allowed_variables" yaml:"allowed_variables"`
	RecheckAfter     string   `json:"recheck_after" yaml:"recheck_after"`
}

var (
	conf             config
	rankingDBService *rankingDB.RankingDBService
	whitelist        expression.Whitelist
	recheckAfter     time.Duration
)

func init() {
	if err := utils.ReadYamlConfig(os.Getenv(ENV_CONFIG_FILE_PATH), &conf); err != nil {
		slog.Error("Error reading config file", slog.String("error", err.Error()))
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	utils.OverrideFromEnv(&conf.DBConfigs.RankingDB.Username, ENV_RANKING_DB_USERNAME)
	utils.OverrideFromEnv(&conf.DBConfigs.RankingDB.Password, ENV_RANKING_DB_PASSWORD)

	if len(conf.AllowedVariables) > 0 {
		whitelist = expression.NewWhitelist(conf.AllowedVariables...)
	} else {
		whitelist = expression.DefaultWhitelist()
	}

	if conf.RecheckAfter != "" {
		var err error
		recheckAfter, err = utils.ParseDurationString(conf.RecheckAfter)
		if err != nil {
			slog.Error("Error parsing recheck_after", slog.String("error", err.Error()), slog.String("value", conf.RecheckAfter))
			panic(err)
		}
	}

	initDBs()
}

func initDBs() {
	var err error
	rankingDBService, err = rankingDB.NewRankingDBService(db.DBConfigFromYamlObj(conf.DBConfigs.RankingDB, conf.InstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Ranking DB", slog.String("error", err.Error()))
		panic(err)
	}
}
