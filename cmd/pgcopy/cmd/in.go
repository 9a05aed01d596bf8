package cmd

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/calebcase/pgcopy"
)

// maxLine bounds a single text row.
const maxLine = 64 << 20

func (a *app) inCmd() *cobra.Command {
	inCmd := &cobra.Command{
		Use:   "in",
		Short: "Convert text rows on stdin to a COPY binary stream",
		Long: `in reads tab separated COPY text rows and writes the COPY binary stream
that COPY ... FROM STDIN (FORMAT binary) accepts. A line holding only \. ends
the input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := types(cmd)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())

			e, err := pgcopy.NewEncoder(a.cfg.Schema(), w, ts...)
			if err != nil {
				return err
			}

			s := bufio.NewScanner(cmd.InOrStdin())
			s.Buffer(make([]byte, 0, 64<<10), maxLine)

			rows := 0
			for s.Scan() {
				line := s.Text()
				if line == `\.` {
					break
				}

				err = e.EncodeLine(line)
				if err != nil {
					a.log.Error("encode failed", "line", rows+1, "error", err)

					return err
				}

				rows++
			}

			err = s.Err()
			if err != nil {
				return err
			}

			err = e.Close()
			if err != nil {
				return err
			}

			a.log.Debug("encoded stream", "rows", rows)

			return w.Flush()
		},
	}

	addTypesFlag(inCmd)

	return inCmd
}
