/*
 * root.go, part of gosasa.
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


// Package cli implements the gosasa command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	sasa "github.com/rmera/gosasa"
	"github.com/rmera/gosasa/config"
	"github.com/rmera/gosasa/logger"
)

// version is set at build time with -ldflags "-X".
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "gosasa",
	Short: "Solvent accessible surface area of macromolecules",
	Long: `gosasa computes the solvent accessible surface area (SASA) of the atoms
in a PDB file with the Shrake-Rupley algorithm, and sums it per residue
and per chain. Residue areas are also given relative to the maximum area
of their residue type.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default ~/.gosasa/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress information")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && verbose {
		if trace := sasa.Trace(err); trace != "" {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "trace: %s\n", trace)
		}
	}
	return err
}

// loadConfig reads the file given with --config, or the default one.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDefault()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
