package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/finplan/projection-engine/internal/calculation"
	"github.com/finplan/projection-engine/internal/config"
	"github.com/finplan/projection-engine/internal/output"
	"github.com/finplan/projection-engine/internal/server"
)

var (
	inputFile    string
	outputFormat string
	saveToFile   bool
	debugMode    bool
	listenAddr   string
)

// stderrLogger writes engine logs to stderr so stdout stays clean for
// formatted output.
type stderrLogger struct {
	debug bool
}

func (l stderrLogger) Debugf(format string, args ...interface{}) {
	if l.debug {
		log.Printf("DEBUG "+format, args...)
	}
}
func (l stderrLogger) Infof(format string, args ...interface{})  { log.Printf("INFO "+format, args...) }
func (l stderrLogger) Warnf(format string, args ...interface{})  { log.Printf("WARN "+format, args...) }
func (l stderrLogger) Errorf(format string, args ...interface{}) { log.Printf("ERROR "+format, args...) }

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	rootCmd := &cobra.Command{
		Use:   "finplan",
		Short: "Deterministic financial projection and stress-test engine",
		Long: `finplan evaluates FIRE horizons, multi-currency retirement depletion
and portfolio crisis scenarios from a YAML configuration file.`,
	}

	calculateCmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run every plan in a configuration file",
		RunE:  runCalculate,
	}
	calculateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input configuration file (YAML)")
	calculateCmd.Flags().StringVarP(&outputFormat, "format", "f", "console",
		fmt.Sprintf("output format, one of %v", output.AvailableFormatterNames()))
	calculateCmd.Flags().BoolVarP(&saveToFile, "save", "s", false, "write output to a timestamped file instead of stdout")
	calculateCmd.Flags().BoolVarP(&debugMode, "debug", "d", false, "enable debug logging")
	_ = calculateCmd.MarkFlagRequired("input")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Long: `Starts a stateless HTTP API. The rate table is loaded once from the
configuration file; request bodies carry the calculation inputs.`,
		RunE: runServe,
	}
	serveCmd.Flags().StringVarP(&inputFile, "input", "i", "", "configuration file providing the exchange rate table")
	serveCmd.Flags().StringVarP(&listenAddr, "addr", "a", ":8080", "listen address")
	serveCmd.Flags().BoolVarP(&debugMode, "debug", "d", false, "enable debug logging")
	_ = serveCmd.MarkFlagRequired("input")

	exampleCmd := &cobra.Command{
		Use:   "example-config",
		Short: "Print an example configuration file",
		RunE:  runExampleConfig,
	}

	rootCmd.AddCommand(calculateCmd, serveCmd, exampleCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCalculate(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	engine := calculation.NewEngine()
	engine.Debug = debugMode
	engine.SetLogger(stderrLogger{debug: debugMode})

	report, err := engine.RunConfiguration(cfg)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}

	formatter := output.GetFormatterByName(outputFormat)
	if formatter == nil {
		return fmt.Errorf("unknown format %q, available: %v", outputFormat, output.AvailableFormatterNames())
	}

	if saveToFile {
		filename, err := output.WriteFormatted(formatter, report, output.FileExtension(outputFormat))
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		log.Printf("INFO report written to %s", filename)
		return nil
	}

	data, err := formatter.Format(report)
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	table, err := parser.LoadRatesFromFile(inputFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	srv := server.New(table, stderrLogger{debug: debugMode})
	return srv.ListenAndServe(listenAddr)
}

func runExampleConfig(cmd *cobra.Command, args []string) error {
	cfg := config.NewInputParser().CreateExampleConfiguration()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding example configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
