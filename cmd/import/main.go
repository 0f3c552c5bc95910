package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/vdavid/chatlens/internal/config"
	"github.com/vdavid/chatlens/internal/db"
	"github.com/vdavid/chatlens/internal/ingest"
	"github.com/vdavid/chatlens/internal/mailimport"
)

var rootCmd = &cobra.Command{
	Use:   "chatlens-import",
	Short: "Import chat exports mailed to an IMAP mailbox",
	Long: `Import connects to the configured IMAP server, finds the messages whose
subject matches, and stores the summary of every chat export they carry.

Connection settings come from CHATLENS_IMAP_SERVER, CHATLENS_IMAP_USER and
CHATLENS_IMAP_PASSWORD; the flags override the mailbox and subject filter.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := applyFlags(cmd, cfg); err != nil {
			return err
		}
		insecure, err := cmd.Flags().GetBool("insecure")
		if err != nil {
			return fmt.Errorf("failed to get insecure flag: %w", err)
		}

		store, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
		}
		defer func() {
			_ = store.Close()
		}()

		_, err = importMailbox(cmd.Context(), cfg, store, !insecure)
		return err
	},
}

func init() {
	rootCmd.Flags().String("mailbox", "", "Mailbox to search (overrides CHATLENS_IMAP_MAILBOX)")
	rootCmd.Flags().String("subject", "", "Subject filter (overrides CHATLENS_IMAP_SUBJECT)")
	rootCmd.Flags().Bool("insecure", false, "Connect without TLS")
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	mailbox, err := cmd.Flags().GetString("mailbox")
	if err != nil {
		return fmt.Errorf("failed to get mailbox flag: %w", err)
	}
	if mailbox != "" {
		cfg.IMAPMailbox = mailbox
	}

	subject, err := cmd.Flags().GetString("subject")
	if err != nil {
		return fmt.Errorf("failed to get subject flag: %w", err)
	}
	if subject != "" {
		cfg.IMAPSubject = subject
	}
	return nil
}

// importMailbox runs one import pass and returns the number of stored exports.
func importMailbox(ctx context.Context, cfg *config.Config, store db.Store, useTLS bool) (int, error) {
	if err := cfg.ValidateIMAP(); err != nil {
		return 0, err
	}

	svc, err := ingest.NewServiceFromConfig(cfg, store)
	if err != nil {
		return 0, err
	}

	c, err := mailimport.ConnectToIMAP(cfg.IMAPServer, useTLS)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := c.Logout(); err != nil {
			log.Printf("Failed to log out: %v", err)
		}
	}()

	if err := mailimport.Login(c, cfg.IMAPUsername, cfg.IMAPPassword); err != nil {
		return 0, err
	}

	exports, err := mailimport.FetchExports(c, cfg.IMAPMailbox, cfg.IMAPSubject)
	if err != nil {
		return 0, err
	}
	log.Printf("Found %d chat exports in %s", len(exports), cfg.IMAPMailbox)

	saved, err := svc.IngestAll(ctx, exports)
	if err != nil {
		return len(saved), err
	}

	log.Printf("Imported %d chat exports", len(saved))
	return len(saved), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
