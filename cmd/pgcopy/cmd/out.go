package cmd

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/calebcase/pgcopy"
)

func (a *app) outCmd() *cobra.Command {
	outCmd := &cobra.Command{
		Use:   "out",
		Short: "Convert a COPY binary stream on stdin to text rows",
		Long: `out reads a COPY binary stream, such as the output of
COPY ... TO STDOUT (FORMAT binary), and writes one tab separated line per row
in the COPY text format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := types(cmd)
			if err != nil {
				return err
			}

			d, err := pgcopy.NewDecoder(a.cfg.Schema(), bufio.NewReader(cmd.InOrStdin()), ts...)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())

			rows := 0
			for d.Next() {
				_, err = w.WriteString(d.Line() + "\n")
				if err != nil {
					return err
				}

				rows++
			}

			err = d.Err()
			if err != nil {
				a.log.Error("decode failed", "rows", rows, "error", err)

				return err
			}

			a.log.Debug("decoded stream", "rows", rows)

			return w.Flush()
		},
	}

	addTypesFlag(outCmd)

	return outCmd
}
