package commands

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/signdesk/internal/cli/config"
	"github.com/leapstack-labs/signdesk/internal/state"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Session string
	Limit   int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded uploads",
		Long:  `Show the uploads recorded in the local state database, newest first.`,
		Example: `  # Last 20 uploads across all sessions
  signdesk history

  # Uploads of one browser session
  signdesk history --session 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Session, "session", "", "Only show uploads of this session id")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of uploads to show (0 for all)")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	loaded := config.GetConfig(cmd.Context())
	if loaded == nil {
		return fmt.Errorf("configuration not loaded")
	}
	logger := config.GetLogger(cmd.Context())

	store, err := openState(cmd.Context(), loaded.Config.StatePath, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return printHistory(cmd, store, opts)
}

func printHistory(cmd *cobra.Command, store state.Store, opts *HistoryOptions) error {
	uploads, err := store.ListUploads(cmd.Context(), opts.Session, opts.Limit)
	if err != nil {
		return err
	}
	if len(uploads) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No uploads recorded.")
		return nil
	}

	t := newTable(cmd.OutOrStdout())
	t.AppendHeader([]interface{}{"When", "File", "Size", "Signers", "Status", "Envelope / Message"})
	for _, u := range uploads {
		detail := u.EnvelopeID
		if u.Status == state.UploadFailed {
			detail = u.Message
		}
		t.AppendRow([]interface{}{
			humanize.Time(u.CreatedAt),
			u.FileName,
			humanize.IBytes(uint64(max(u.FileSize, 0))),
			strings.Join(u.SignerEmails, ", "),
			string(u.Status),
			detail,
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "(%d uploads)\n", len(uploads))
	return nil
}
