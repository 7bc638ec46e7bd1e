package main

import (
	"fmt"

	"github.com/rediwo/mongo-join/config"
	"github.com/rediwo/mongo-join/logger"
	"github.com/rediwo/mongo-join/schema"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
)

// version is set using -ldflags
var version = "0.1.0"

type app struct {
	cfgFile string
	conf    *config.Config
	log     *logger.DefaultLogger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cobra.EnableCommandSorting = false
	rootCmd := &cobra.Command{
		Use:               "mongo-join",
		Short:             "Compile and run MongoDB queries that populate referenced documents",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./mongo-join.yaml)")
	pf.String("db", "", "MongoDB URI including the database name")
	pf.String("schema", "", "path to the YAML model file")
	pf.String("log-level", "", "log level: debug, info, warn, error or none")
	pf.Bool("debug", false, "log every compiled pipeline")

	rootCmd.AddCommand(a.compileCmd())
	rootCmd.AddCommand(a.findCmd())
	rootCmd.AddCommand(a.treeCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// setup loads the configuration and the logger before any command runs
func (a *app) setup(cmd *cobra.Command, args []string) error {
	conf, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.conf = conf

	a.log = logger.NewDefaultLogger("mongo-join")
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetLevel(conf.Level())
	logger.SetGlobalLogger(a.log)
	return nil
}

func (a *app) loadSchema() (*schema.Registry, error) {
	reg, err := schema.LoadFile(a.conf.Schema)
	if err != nil {
		return nil, err
	}
	a.log.Debug("Loaded %d models from %s", len(reg.Models()), a.conf.Schema)
	return reg, nil
}

// printJSON writes doc to the command output as relaxed extended JSON
func printJSON(cmd *cobra.Command, doc bson.D) error {
	data, err := bson.MarshalExtJSONIndent(doc, false, false, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mongo-join v%s\n", version)
		},
	}
}
