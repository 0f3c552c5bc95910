package mailimport

import (
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// ConnectToIMAP connects to the IMAP server with a 5-second timeout.
// useTLS: true for production (TLS), false for tests (non-TLS).
func ConnectToIMAP(server string, useTLS bool) (*client.Client, error) {
	dialer := &net.Dialer{
		Timeout: 5 * time.Second,
	}

	if useTLS {
		c, err := client.DialWithDialerTLS(dialer, server, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to dial with TLS: %w", err)
		}
		return c, nil
	}

	c, err := client.DialWithDialer(dialer, server)
	if err != nil {
		return nil, fmt.Errorf("failed to dial: %w", err)
	}

	return c, nil
}

// Login authenticates with the IMAP server.
func Login(c *client.Client, username, password string) error {
	if err := c.Login(username, password); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	return nil
}

// FetchExports opens mailbox read-only, finds the messages whose subject
// contains subject, and returns the chat export of each. Messages without
// an export are skipped. An empty subject matches every message.
func FetchExports(c *client.Client, mailbox, subject string) ([]*Export, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}

	if _, err := c.Select(mailbox, true); err != nil {
		return nil, fmt.Errorf("failed to select mailbox %s: %w", mailbox, err)
	}

	criteria := imap.NewSearchCriteria()
	if subject != "" {
		criteria.Header.Add("Subject", subject)
	}

	uids, err := c.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search mailbox: %w", err)
	}
	if len(uids) == 0 {
		return []*Export{}, nil
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uids...)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchUid}

	messages := make(chan *imap.Message, len(uids))
	done := make(chan error, 1)

	go func() {
		done <- c.UidFetch(seqSet, items, messages)
	}()

	exports := make([]*Export, 0, len(uids))
	for msg := range messages {
		body := msg.GetBody(section)
		if body == nil {
			log.Printf("MailImport: Server returned no body for UID %d", msg.Uid)
			continue
		}

		export, err := ExtractChatExport(body)
		if errors.Is(err, ErrNoChatExport) {
			log.Printf("MailImport: UID %d carries no chat export, skipping", msg.Uid)
			continue
		}
		if err != nil {
			log.Printf("MailImport: Failed to read UID %d: %v", msg.Uid, err)
			continue
		}

		export.UID = msg.Uid
		exports = append(exports, export)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return exports, nil
}
