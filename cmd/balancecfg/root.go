package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpyw/balanced/internal/config"
)

var errInvalid = errors.New("invalid family file")

var formatNames = []string{"text", "yaml", "toml"}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "balancecfg",
		Short:         "Validate and convert balanced family files",
		Long:          `balancecfg reads protocol family files in the text, YAML or TOML format.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCheckCmd(), newConvertCmd(), newBuiltinCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "check [family-file...]",
		Short: "Validate family files",
		Args:  cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			for _, path := range args {
				families, err := config.LoadFile(path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v (%d families before the error)\n", path, err, len(families))
					continue
				}
				fmt.Fprintf(out, "%s: %d families\n", path, len(families))

				if list {
					for _, f := range families {
						object := f.Object
						if object == "" {
							object = "global"
						}
						fmt.Fprintf(out, "  %s(%s) left=%s right=%s\n",
							f.Name, object, strings.Join(f.Left, ","), strings.Join(f.Right, ","))
					}
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalid, failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List the families of each file")
	return cmd
}

func newConvertCmd() *cobra.Command {
	var to, output string

	cmd := &cobra.Command{
		Use:   "convert [family-file]",
		Short: "Convert a family file to another format",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := config.ParseFormat(to)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := config.ParseFormat(to)

			families, err := config.LoadFile(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				return config.Write(cmd.OutOrStdout(), format, families)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := config.Write(f, format, families); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&to, "to", "t", "yaml", "Output format")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	_ = cmd.RegisterFlagCompletionFunc("to", completeFormats)
	return cmd
}

func newBuiltinCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "builtin",
		Short: "Print the built-in sync families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			return config.Write(cmd.OutOrStdout(), f, config.SyncFamilies())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	return cmd
}

func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return formatNames, cobra.ShellCompDirectiveNoFileComp
}
