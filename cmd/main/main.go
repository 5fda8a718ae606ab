package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "github.com/nivschuman/ElectionResults/internal/config"
	db "github.com/nivschuman/ElectionResults/internal/database/connection"
	metrics "github.com/nivschuman/ElectionResults/internal/metrics"
	nodes "github.com/nivschuman/ElectionResults/internal/nodes"
)

const skipNodeAnnotation = "skip-node"

var (
	node        *nodes.ApprovalNode
	metricsFile string
)

var rootCmd = &cobra.Command{
	Use:           "results",
	Short:         "Three party approval and finalization of polling station results",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipNodeAnnotation] != "" {
			return nil
		}
		return startNode()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return stopNode()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write prometheus metrics to this textfile after the command")
}

func startNode() error {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config/config.yml"
	}

	err := config.InitializeGlobalConfig(configFile)
	if err != nil {
		return err
	}

	dbFile := os.Getenv("DATABASE_FILE")
	if dbFile == "" {
		dbFile = config.GlobalConfig.DatabaseConfig.File
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "test" {
		log.Println("|Main| Running in test environment")
	}

	err = db.InitializeGlobalDB(dbFile, config.GlobalConfig.DatabaseConfig.LogLevel)
	if err != nil {
		return err
	}

	if environment == "test" {
		err = db.ResetDatabase(db.GlobalDB)
		if err != nil {
			return err
		}
	}

	metrics.Register()

	node, err = nodes.NewApprovalNode(config.GlobalConfig, db.GlobalDB)
	if err != nil {
		return err
	}

	return node.Start()
}

func stopNode() error {
	if metricsFile != "" && node != nil {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			log.Printf("|Main| %v", err)
		}
	}

	if node == nil {
		return nil
	}

	err := node.Stop()
	node = nil
	return err
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load .env file: %v", err)
	}

	if err := rootCmd.Execute(); err != nil {
		stopNode()
		log.Fatalf("|Main| %v", err)
	}
}
