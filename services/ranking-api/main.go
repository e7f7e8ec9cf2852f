package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/himkwtn/expression-mongo/pkg/apihelpers"
	"github.com/himkwtn/expression-mongo/services/ranking-api/apihandlers"

	mw "github.com/himkwtn/expression-mongo/pkg/apihelpers/middlewares"
)

func main() {
	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length", mw.HeaderAPIKey, mw.HeaderRequestID},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length", mw.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(mw.RequestID())

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		conf.ManagementUserJWTConfig.SignKey,
		rankingDBService,
		conf.APIClients,
		conf.AllowedInstanceIDs,
		apihandlers.RankingConfig{
			Whitelist:  whitelist,
			DateFields: conf.RankingConfig.DateFields,
			ScoreField: conf.RankingConfig.ScoreField,
		},
	)
	v1APIHandlers.AddRankingAPI(v1Root)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "ranking-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Ranking API", slog.String("port", conf.GinConfig.Port))
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Ranking API", slog.String("error", err.Error()))
			return
		}
	} else {
		// Create tls config for mutual TLS
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}

		server := &http.Server{
			Addr:      ":" + conf.GinConfig.Port,
			Handler:   router,
			TLSConfig: tlsConfig,
		}

		err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Ranking API", slog.String("error", err.Error()))
			return
		}
	}
}
