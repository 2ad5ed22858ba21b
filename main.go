package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"mribeiro/extrato-csv/cmd/classify"
	"mribeiro/extrato-csv/cmd/contacts"
	"mribeiro/extrato-csv/cmd/ingest"
	"mribeiro/extrato-csv/cmd/root"
)

func init() {
	// Load environment variables silently first, then set the global log
	// level before any logger is created.
	loadEnvSilently()
	logrus.SetLevel(configureLogLevelDirectly())

	root.Init()

	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(contacts.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly resolves the log level from the environment
// before configuration is fully loaded.
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
