/*
 * calc.go, part of gosasa.
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
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	sasa "github.com/rmera/gosasa"
	"github.com/rmera/gosasa/config"
	"github.com/rmera/gosasa/logger"
	"github.com/rmera/gosasa/pdb"
	"github.com/rmera/gosasa/store"
	"github.com/rmera/gosasa/tables"
)

// calcFlags are the flags shared by calc and watch.
type calcFlags struct {
	probe     float64
	points    int
	hetatm    bool
	altloc    string
	workers   int
	reference string
	extended  bool
	format    string
	out       string
	level     string
	store     string
}

var calcOpts calcFlags

var calcCmd = &cobra.Command{
	Use:   "calc <structure.pdb>",
	Short: "Compute the SASA of a structure",
	Long: `Computes the SASA per atom, per residue (absolute and relative) and per
chain for the first model of a PDB file. The file can be compressed with
gzip or zstd. If the calculation fails, no table is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runCalc,
}

func init() {
	addCalcFlags(calcCmd, &calcOpts)
	rootCmd.AddCommand(calcCmd)
}

func addCalcFlags(cmd *cobra.Command, f *calcFlags) {
	fl := cmd.Flags()
	fl.Float64Var(&f.probe, "probe", sasa.DefaultProbe, "probe radius in A")
	fl.IntVar(&f.points, "points", sasa.DefaultNPoints, "test points per atom")
	fl.BoolVar(&f.hetatm, "hetatm", false, "include HETATM records (ligands, waters, ions)")
	fl.StringVar(&f.altloc, "altloc", sasa.DefaultAltLoc, "alternate location code to keep")
	fl.IntVar(&f.workers, "workers", 0, "number of worker goroutines (default: number of CPUs)")
	fl.StringVar(&f.reference, "reference", sasa.DefaultReference, "maximum ASA table for relative SASA")
	fl.BoolVar(&f.extended, "extended", false, "map modified and protonated residue names to standard ones for relative SASA")
	fl.StringVarP(&f.format, "format", "f", tables.FormatCSV, "output format: csv, json or table")
	fl.StringVarP(&f.out, "out", "o", "", "directory for the output files (default: standard output)")
	fl.StringVarP(&f.level, "level", "l", tables.LevelAll, "tables to write: atom, residue, relative, chain or all")
	fl.StringVar(&f.store, "store", "", "SQLite database where the run is saved")
}

// settings returns the configuration with the flags given explicitly
// in cmd applied over it.
func settings(cmd *cobra.Command, f *calcFlags) (*config.Config, error) {
	c, err := loadConfig()
	if err != nil {
		return nil, err
	}
	fl := cmd.Flags()
	if fl.Changed("probe") {
		c.ProbeRadius = f.probe
	}
	if fl.Changed("points") {
		c.NPoints = f.points
	}
	if fl.Changed("hetatm") {
		c.IncludeHetatm = f.hetatm
	}
	if fl.Changed("altloc") {
		c.AltLocPrimary = f.altloc
	}
	if fl.Changed("workers") {
		c.Workers = f.workers
	}
	if fl.Changed("reference") {
		c.ReferenceTable = f.reference
	}
	if fl.Changed("extended") {
		c.ExtendedReference = f.extended
	}
	if fl.Changed("format") {
		c.Output.Format = f.format
	}
	if fl.Changed("out") {
		c.Output.Dir = f.out
	}
	if fl.Changed("level") {
		c.Output.Level = f.level
	}
	if fl.Changed("store") {
		c.Store.Path = f.store
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func runCalc(cmd *cobra.Command, args []string) error {
	c, err := settings(cmd, &calcOpts)
	if err != nil {
		return err
	}
	_, err = calculate(cmd.Context(), cmd, args[0], c, cmd.Flags().Changed("format"))
	return err
}

// calculate runs the whole calculation for the file path and writes its results.
// Nothing is written if the calculation fails.
func calculate(ctx context.Context, cmd *cobra.Command, path string, c *config.Config, explicitFormat bool) (*sasa.Report, error) {
	o := c.Options()
	done := logger.Stage("Input")
	atoms, census, err := pdb.ReadFile(path, o)
	done()
	if err != nil {
		return nil, err
	}
	logger.Info("%d atom records read from %s, %d take part", len(atoms), path, census)
	rep, err := sasa.Run(ctx, atoms, o, census)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := output(cmd, rep, c, explicitFormat); err != nil {
		return rep, err
	}
	if p := c.StorePath(); p != "" {
		st, err := store.Open(p)
		if err != nil {
			return rep, err
		}
		defer st.Close()
		id, err := st.Save(ctx, store.RunMeta{Input: path, Options: o}, rep)
		if err != nil {
			return rep, err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "run %s saved to %s\n", id, p)
	}
	return rep, nil
}

// output writes the tables to the output directory, if there is one, or to the
// standard output. CSV output to a terminal is shown as a table, unless the
// format was requested explicitly.
func output(cmd *cobra.Command, rep *sasa.Report, c *config.Config, explicitFormat bool) error {
	level := c.Output.Level
	if dir := c.Output.Dir; dir != "" {
		names, err := tables.WriteDir(dir, rep, c.Output.Format, level)
		if err != nil {
			return err
		}
		for _, n := range names {
			logger.Info("wrote %s", n)
		}
		return nil
	}
	w := cmd.OutOrStdout()
	switch {
	case c.Output.Format == tables.FormatJSON:
		return tables.WriteJSON(w, rep, level)
	case c.Output.Format == tables.FormatTable, !explicitFormat && isTerminal(w):
		return tables.WriteTable(w, rep, level)
	}
	return writeCSVs(w, rep, level)
}

func writeCSVs(w io.Writer, rep *sasa.Report, level string) error {
	sel, err := tables.Selected(level)
	if err != nil {
		return err
	}
	for i, l := range sel {
		if i > 0 {
			io.WriteString(w, "\n")
		}
		if err := tables.WriteCSV(w, rep, l); err != nil {
			return err
		}
	}
	return nil
}
