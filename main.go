// Entry point for the CreditScope scoring service
package main

import (
	"flag"
	"os"

	storage "github.com/CreditScope/CreditScope-Go/pipelines/Storage"
	"github.com/CreditScope/CreditScope-Go/utils"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		utils.GetLogger().Error("failed to load configuration", err, utils.Component("server"))
		os.Exit(1)
	}
	utils.InitLogger(config.Logging)
	logger := utils.GetLogger()

	// The bundle is loaded exactly once; every request scores against this
	// handle until the process is restarted.
	bundle, err := storage.LoadBundle(config.Model.Path)
	if err != nil {
		logger.Error("failed to load model bundle", err,
			utils.Component("server"),
			utils.String("path", config.Model.Path))
		os.Exit(1)
	}
	logger.Info("model bundle loaded",
		utils.Component("server"),
		utils.String("model_id", bundle.ID),
		utils.String("algorithm", bundle.Algorithm),
		utils.Int("features", len(bundle.FeatureNames)))

	server, err := NewServer(config, bundle)
	if err != nil {
		logger.Error("failed to initialize server", err, utils.Component("server"))
		os.Exit(1)
	}
	if err := server.Start(); err != nil {
		logger.Error("server stopped", err, utils.Component("server"))
		os.Exit(1)
	}
}
