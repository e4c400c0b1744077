/*
 * runs.go, part of gosasa.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */


package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rmera/gosasa/store"
	"github.com/rmera/gosasa/tables"
)

var runsStore string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the runs saved in a store",
	Args:  cobra.NoArgs,
	RunE:  runRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the residue and chain tables of a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	runsCmd.PersistentFlags().StringVar(&runsStore, "store", "", "SQLite database with the runs")
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	c, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("store") {
		c.Store.Path = runsStore
	}
	p := c.StorePath()
	if p == "" {
		return nil, fmt.Errorf("no store given, use --store or set [store] path in the configuration")
	}
	return store.Open(p)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	runs, err := st.Runs(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs saved.")
		return nil
	}
	header := []string{"ID", "Created", "Input", "Probe", "Points", "Reference", "Atoms", "Total SASA"}
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Input,
			fmt.Sprintf("%.2f", r.ProbeRadius), fmt.Sprint(r.NPoints), r.Reference,
			fmt.Sprint(r.Atoms), fmt.Sprintf("%.2f", r.Total)}
	}
	w := cmd.OutOrStdout()
	if isTerminal(w) {
		t := table.New().Border(lipgloss.RoundedBorder()).Headers(header...).Rows(rows...)
		fmt.Fprintln(w, t.Render())
		return nil
	}
	writeTSV(w, header, rows)
	return nil
}

func writeTSV(w io.Writer, header []string, rows [][]string) {
	for _, r := range append([][]string{header}, rows...) {
		for i, f := range r {
			if i > 0 {
				io.WriteString(w, "\t")
			}
			io.WriteString(w, f)
		}
		io.WriteString(w, "\n")
	}
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	ctx := cmd.Context()
	run, err := st.Get(ctx, args[0])
	if err != nil {
		return err
	}
	res, err := st.Residues(ctx, run.ID)
	if err != nil {
		return err
	}
	chains, err := st.Chains(ctx, run.ID)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "# run %s: %s, probe %.2f A, %d points, %s, sphere %s\n",
		run.ID, run.Input, run.ProbeRadius, run.NPoints, run.Reference, run.SphereVersion)
	if err := tables.WriteResidueRows(w, res); err != nil {
		return err
	}
	io.WriteString(w, "\n")
	return tables.WriteChainRows(w, chains)
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	run, err := st.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := st.Delete(cmd.Context(), run.ID); err != nil {
		return err
	}
	cmd.Printf("Deleted run %s.\n", run.ID)
	return nil
}
