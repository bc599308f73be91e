package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fentz26/gardenview/internal/checks"
	"github.com/fentz26/gardenview/internal/models"
	"github.com/fentz26/gardenview/internal/views"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"
)

var strictCheck bool

var tasksCmd = &cobra.Command{
	Use:   "tasks <link|payload|file|->",
	Short: "Print a garden's task timeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasks,
}

var checkCmd = &cobra.Command{
	Use:   "check <link|payload|file|->",
	Short: "Check a garden plan for spacing, boundary and date problems",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of a garden document",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	checkCmd.Flags().BoolVar(&strictCheck, "strict", false, "Exit with an error when issues are found")
}

func runTasks(cmd *cobra.Command, args []string) error {
	g, err := loadGarden(cmd, args[0])
	if err != nil {
		return err
	}

	entries := views.Timeline(g.Tasks, g.Beds)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks scheduled.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DUE\tTASK\tBED\tPLANTING\tSTATUS")
	for _, e := range entries {
		status := "pending"
		if e.Done {
			status = "completed " + e.CompletedOn
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Due, truncate(e.Task.Title, 40), orDash(e.BedName), orDash(e.PlantingLabel), status)
	}
	return w.Flush()
}

func runCheck(cmd *cobra.Command, args []string) error {
	g, err := loadGarden(cmd, args[0])
	if err != nil {
		return err
	}

	issues := checks.Run(g)
	if len(issues) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", g.Name, views.AllClear)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tMESSAGE")
	for _, issue := range issues {
		fmt.Fprintf(w, "%s\t%s\n", issue.Type, issue.Message)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if strictCheck {
		return fmt.Errorf("%d issue(s) found in %s", len(issues), g.Name)
	}
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	schema, err := jsonschema.For[models.Garden](nil)
	if err != nil {
		return fmt.Errorf("building schema: %w", err)
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
