// Package main provides the CLI entry point for rulesheet-go.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/takeda9/rulesheet-go/internal/bootstrap"
	"github.com/takeda9/rulesheet-go/pkg/rulesheet"
	"github.com/takeda9/rulesheet-go/pkg/rulesheet/output"
)

var (
	outputPath string
	pretty     bool
	sheetName  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rulesheet [input.xlsx]",
		Short: "Extract rule-page documents from marker-annotated Excel files",
		Long: `rulesheet-go parses spreadsheets annotated with REGION-/TITLE-/RULES-/RANK-/
TABLE- markers into hierarchical rule-page JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "Parse only the named sheet")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP parse service",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	result, err := rulesheet.ParseFile(inputPath, rulesheet.Options{Sheet: sheetName})
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	jsonData, err := output.ToJSON(result, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	app := bootstrap.NewApp()
	if err := app.Initialize(context.Background()); err != nil {
		return err
	}
	return app.Run()
}
