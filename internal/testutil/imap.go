package testutil

import (
	"encoding/base64"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/backend/memory"
	imapclient "github.com/emersion/go-imap/client"
	"github.com/emersion/go-imap/server"
)

// TestIMAPServer is an in-memory IMAP server listening on a random local port.
type TestIMAPServer struct {
	Server   *server.Server
	Address  string
	Backend  *memory.Backend
	cleanup  func()
	username string
	password string
}

// NewTestIMAPServer starts a test IMAP server. The memory backend has a
// single user, "username" / "password", whose INBOX already holds one
// unrelated message.
func NewTestIMAPServer(t *testing.T) *TestIMAPServer {
	t.Helper()

	be := memory.New()

	s := server.New(be)
	s.AllowInsecureAuth = true

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}

	go func() {
		if err := s.Serve(listener); err != nil {
			t.Logf("IMAP server error: %v", err)
		}
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	srv := &TestIMAPServer{
		Server:   s,
		Address:  listener.Addr().String(),
		Backend:  be,
		username: "username",
		password: "password",
		cleanup: func() {
			_ = s.Close()
		},
	}
	t.Cleanup(srv.Close)

	return srv
}

// Close shuts down the test IMAP server. It is safe to call more than once.
func (s *TestIMAPServer) Close() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// Username returns the default test username.
func (s *TestIMAPServer) Username() string {
	return s.username
}

// Password returns the default test password.
func (s *TestIMAPServer) Password() string {
	return s.password
}

// Connect creates a logged-in client connection to the test server.
func (s *TestIMAPServer) Connect(t *testing.T) (*imapclient.Client, func()) {
	t.Helper()

	client, err := imapclient.Dial(s.Address)
	if err != nil {
		t.Fatalf("Failed to connect to test server: %v", err)
	}

	if err := client.Login(s.username, s.password); err != nil {
		_ = client.Logout()
		t.Fatalf("Failed to login: %v", err)
	}

	return client, func() {
		_ = client.Logout()
	}
}

// AppendMessage stores a raw RFC 822 message in the given mailbox.
func (s *TestIMAPServer) AppendMessage(t *testing.T, mailbox, raw string) {
	t.Helper()

	client, cleanup := s.Connect(t)
	defer cleanup()

	// The memory backend expects CRLF line endings.
	raw = strings.ReplaceAll(strings.ReplaceAll(raw, "\r\n", "\n"), "\n", "\r\n")
	if err := client.Append(mailbox, []string{imap.SeenFlag}, time.Now(), strings.NewReader(raw)); err != nil {
		t.Fatalf("Failed to append message: %v", err)
	}
}

// ChatExportMessage builds a message carrying export as a .txt attachment.
func ChatExportMessage(subject, filename, export string) string {
	const boundary = "chatlens-test-boundary"

	return fmt.Sprintf(`From: Alice <alice@example.com>
To: Bob <bob@example.com>
Subject: %s
Date: %s
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="%s"

--%s
Content-Type: text/plain; charset=utf-8

Chat export attached.
--%s
Content-Type: text/plain; charset=utf-8; name="%s"
Content-Disposition: attachment; filename="%s"
Content-Transfer-Encoding: base64

%s
--%s--
`, subject, time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC).Format(time.RFC1123Z), boundary,
		boundary, boundary, filename, filename,
		base64.StdEncoding.EncodeToString([]byte(export)), boundary)
}

// PlainMessage builds a single-part text message.
func PlainMessage(subject, body string) string {
	return fmt.Sprintf(`From: Alice <alice@example.com>
To: Bob <bob@example.com>
Subject: %s
Date: %s
Content-Type: text/plain; charset=utf-8

%s
`, subject, time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC).Format(time.RFC1123Z), body)
}
