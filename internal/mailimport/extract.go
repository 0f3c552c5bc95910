// Package mailimport pulls chat exports out of e-mail, either from a single
// RFC 822 message or from an IMAP mailbox.
package mailimport

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jhillyerd/enmime"
	"github.com/vdavid/chatlens/internal/parser"
)

// ErrNoChatExport is returned when a message carries no chat export.
var ErrNoChatExport = errors.New("message carries no chat export")

// defaultFilename names exports found in a message body rather than in an
// attachment.
const defaultFilename = "chat.txt"

// Export is a chat export found in a message.
type Export struct {
	Filename string
	Subject  string
	Data     []byte
	// UID is the IMAP UID of the source message; zero for uploaded files.
	UID uint32
}

// ExtractChatExport reads a message and returns the first .txt attachment.
// Without one, the plain-text body is used if it looks like a chat export.
func ExtractChatExport(r io.Reader) (*Export, error) {
	envelope, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	subject := envelope.GetHeader("Subject")

	parts := append(append([]*enmime.Part{}, envelope.Attachments...), envelope.Inlines...)
	for _, part := range parts {
		if strings.EqualFold(filepath.Ext(part.FileName), ".txt") {
			return &Export{Filename: part.FileName, Subject: subject, Data: part.Content}, nil
		}
	}

	if parser.IsChatExport(envelope.Text) {
		return &Export{Filename: defaultFilename, Subject: subject, Data: []byte(envelope.Text)}, nil
	}

	return nil, ErrNoChatExport
}

// IsMailFile reports whether filename names a saved e-mail message.
func IsMailFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".eml")
}
