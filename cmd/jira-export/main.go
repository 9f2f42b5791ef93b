/* Copyright (c) 2025 Jira API Extractor contributors
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/app"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/config"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/logger"
	"github.com/felipe-stanham/Jira-API-Extractor/internal/web"
	"github.com/spf13/cobra"
)

var (
	flagProject   string
	flagSprints   string
	flagStartDate string
	flagEndDate   string
	flagEpicLabel string
	flagOpenEpics bool
	flagJQL       string
	flagOutput    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jira-export",
		Short: "Extract Jira issues, work logs and comments into an Excel report",
		Long: `jira-export pulls sprint issues, work logs, comments and epic progress
from the Jira Cloud REST API and writes a multi-sheet Excel workbook
with summary charts.`,
		RunE:          runExport,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&flagProject, "project", "p", "", "Jira project key (required)")
	rootCmd.Flags().StringVarP(&flagSprints, "sprint", "s", "", "Sprint id or comma-separated list of ids")
	rootCmd.Flags().StringVar(&flagStartDate, "start-date", "", "Window start (YYYY-MM-DD), requires --end-date")
	rootCmd.Flags().StringVar(&flagEndDate, "end-date", "", "Window end (YYYY-MM-DD), requires --start-date")
	rootCmd.Flags().StringVar(&flagEpicLabel, "epic-label", "", "Extract issues of every epic carrying this label")
	rootCmd.Flags().BoolVar(&flagOpenEpics, "open-epics", false, "Extract issues of every epic not yet done")
	rootCmd.Flags().StringVar(&flagJQL, "jql", "", "Extra JQL clause ANDed onto every issue query")
	rootCmd.Flags().StringVarP(&flagOutput, "out", "o", "", "Output file path (default JiraExport.xlsx)")
	_ = rootCmd.MarkFlagRequired("project")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local extraction form in a browser",
		RunE:  runServe,
	}
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		printError("Error: %v", err)
		os.Exit(1)
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logger.New(cfg)

	opts := app.Options{
		Project:   flagProject,
		SprintIDs: splitCSV(flagSprints),
		StartDate: flagStartDate,
		EndDate:   flagEndDate,
		EpicLabel: flagEpicLabel,
		OpenEpics: flagOpenEpics,
		ExtraJQL:  flagJQL,
		Output:    flagOutput,
	}

	res, err := app.Run(cmd.Context(), cfg, log, printProgress, opts)
	if err != nil { return err }

	printSuccess("Export complete! Found %d issues, %d work logs, %d comments", res.Issues, res.Worklogs, res.Comments)
	printInfo("Saved to %s", res.Path)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logger.New(cfg)

	runner := func(ctx context.Context, cfg config.Config, p web.RunParams) ([]string, string, error) {
		var lines []string
		progress := func(format string, a ...any) {
			line := fmt.Sprintf(format, a...)
			lines = append(lines, line)
			printProgress("%s", line)
		}
		res, err := app.Run(ctx, cfg, log, progress, app.Options{
			Project:   p.Project,
			SprintIDs: splitCSV(p.SprintIDs),
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			EpicLabel: p.EpicLabel,
			OpenEpics: p.OpenEpics,
			ExtraJQL:  p.ExtraJQL,
		})
		if err != nil { return lines, "", err }
		lines = append(lines, fmt.Sprintf("Export complete! Found %d issues, %d work logs, %d comments", res.Issues, res.Worklogs, res.Comments))
		return lines, res.Path, nil
	}

	printInfo("Open http://localhost%s in your browser", cfg.HTTPAddr)
	return web.NewServer(cfg, log, runner).Serve()
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" { out = append(out, p) }
	}
	return out
}

// Progress lines own stdout; structured logs go to stderr.
func printProgress(format string, a ...any) {
	fmt.Println(color.CyanString(format, a...))
}

func printInfo(format string, a ...any) {
	fmt.Println(color.WhiteString(format, a...))
}

func printSuccess(format string, a ...any) {
	fmt.Println(color.GreenString(format, a...))
}

func printError(format string, a ...any) {
	fmt.Fprintln(os.Stderr, color.RedString(format, a...))
}
