package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calebcase/pgcopy/numeric"
)

func (a *app) numericCmd() *cobra.Command {
	numericCmd := &cobra.Command{
		Use:   "numeric",
		Short: "Convert single NUMERIC values",
	}

	numericCmd.AddCommand(
		&cobra.Command{
			Use:     "decode [--] HEX...",
			Short:   "Print the text form of hex encoded NUMERIC payloads",
			Example: `  pgcopy numeric decode "0002 0000 4000 0001 0001 1388"`,
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				d := numeric.NewDecoder(a.cfg.Schema().Numeric)

				for _, arg := range args {
					data, err := hex.DecodeString(strings.Join(strings.Fields(arg), ""))
					if err != nil {
						return fmt.Errorf("decode %q: %w", arg, err)
					}

					var v numeric.Value

					err = d.Decode(data, &v)
					if err != nil {
						return err
					}

					a.log.Debug("decoded", "kind", v.Kind, "weight", v.Weight, "scale", v.Scale, "ndigits", len(v.Digits))

					fmt.Fprintln(cmd.OutOrStdout(), v.String())
				}

				return nil
			},
		},
		&cobra.Command{
			Use:   "encode [--] TEXT...",
			Short: "Print the hex encoded NUMERIC payloads of decimal texts",
			Long: `encode prints the NUMERIC payload of each decimal text as hex.
Negative values start with "-" and must follow "--" so they are not read as
flags.`,
			Example: `  pgcopy numeric encode 12345.678
  pgcopy numeric encode -- -1.5 -Infinity`,
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, arg := range args {
					v, err := numeric.Parse(arg)
					if err != nil {
						return err
					}

					data, err := v.MarshalBinary()
					if err != nil {
						return err
					}

					a.log.Debug("encoded", "text", arg, "bytes", len(data))

					fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
				}

				return nil
			},
		},
	)

	return numericCmd
}
