package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/fentz26/gardenview/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the local history of opened gardens",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently opened gardens",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyOpenCmd = &cobra.Command{
	Use:         "open <id>",
	Short:       "Reopen a garden from history",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{tuiAnnotation: "true"},
	RunE:        runHistoryOpen,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Forget one garden",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRemove,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every garden",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var (
	historyLimit int
	historyQuery string
)

func init() {
	historyCmd.AddCommand(historyListCmd, historyOpenCmd, historyRemoveCmd, historyClearCmd)

	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show (0 for all)")
	historyListCmd.Flags().StringVar(&historyQuery, "search", "", "Only show gardens whose name contains this text")
}

func openHistory() (*store.Store, error) {
	if !cfg.History.Enabled {
		return nil, errors.New("history is disabled (history.enabled: false)")
	}
	return store.New(cfg.History.Path)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	st, err := openHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	var entries []store.View
	if historyQuery != "" {
		entries, err = st.Search(historyQuery)
	} else {
		entries, err = st.Recent(historyLimit)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No gardens in history")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBEDS\tPLANTINGS\tTASKS\tOPENED\tLAST OPENED")
	for _, v := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			truncateID(v.ID), truncate(v.Name, 30), v.Beds, v.Plantings, v.Tasks, v.OpenCount,
			v.LastOpened.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runHistoryOpen(cmd *cobra.Command, args []string) error {
	st, err := openHistory()
	if err != nil {
		return err
	}
	v, err := st.Get(args[0])
	st.Close()
	if err != nil {
		return err
	}
	return openViewer(v.Payload)
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	st, err := openHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	v, err := st.Get(args[0])
	if err != nil {
		return err
	}
	if err := st.Delete(v.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s)\n", truncateID(v.ID), v.Name)
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	st, err := openHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.Clear()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d garden(s) from history\n", n)
	return nil
}

func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
