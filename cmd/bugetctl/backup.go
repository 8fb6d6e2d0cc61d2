package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"buget/internal/ledger"
)

func exportCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of the whole ledger and mark today as backed up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			body, err := s.svc.Export(cmd.Context(), s.today)
			if err != nil {
				return err
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(append(body, '\n'))
				return err
			}
			if err := os.WriteFile(output, body, 0600); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", ledger.BackupFileName, `output file, "-" for stdout`)
	return cmd
}

func importCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole ledger with a backup file",
		Long:  `Replace budgets, categories, transactions and the last backup date with the contents of a backup file. Use "-" to read from stdin.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}

			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			st, err := s.svc.Import(cmd.Context(), raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions, %d budgets, %d categories\n",
				len(st.Transactions), len(st.Budgets), len(st.Categories))
			return nil
		},
	}
}

func backupStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backup-status",
		Short: "Show how long ago the last backup was exported",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, opts)
			if err != nil {
				return err
			}
			defer s.close()

			age := s.svc.BackupStatus(s.today)
			out := cmd.OutOrStdout()
			switch age.Status() {
			case ledger.BackupNever:
				fmt.Fprintln(out, "No backup yet. Run 'bugetctl export'.")
			case ledger.BackupStale:
				fmt.Fprintf(out, "Last backup %d days ago. Run 'bugetctl export'.\n", age.Days)
			default:
				fmt.Fprintf(out, "Last backup %d days ago.\n", age.Days)
			}
			return nil
		},
	}
}
