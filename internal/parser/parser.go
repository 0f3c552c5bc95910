// Package parser reads chat exports and computes their Summary.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/vdavid/chatlens/internal/models"
)

// ErrNoMessages is returned when an export contains no recognizable message.
var ErrNoMessages = errors.New("no messages found in chat export")

// headerPattern matches the first line of a message in a French-locale export:
// "<sender> <weekday> <day> <month> <year> <hh:mm>".
var headerPattern = regexp.MustCompile(
	`^(.*?) (lundi|mardi|mercredi|jeudi|vendredi|samedi|dimanche) (\d+) ([\p{L}]+) (\d{4}) (\d{2}:\d{2})`,
)

// maxLineBytes bounds a single export line.
const maxLineBytes = 1 << 20

// Parse splits an export into messages. Lines before the first header are
// ignored, and a header followed by no content does not produce a message.
func Parse(r io.Reader) ([]models.ChatMessage, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		messages  []models.ChatMessage
		content   []string
		sender    string
		timestamp string
		inMessage bool
	)

	flush := func() {
		if sender == "" || len(content) == 0 {
			return
		}
		messages = append(messages, models.ChatMessage{
			Sender:    sender,
			Timestamp: timestamp,
			Content:   strings.TrimSpace(strings.Join(content, "\n")),
		})
	}

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if match := headerPattern.FindStringSubmatch(line); match != nil {
			flush()
			content = nil
			sender = strings.TrimSpace(match[1])
			timestamp = strings.Join(match[2:7], " ")
			inMessage = true
			continue
		}

		if inMessage {
			content = append(content, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat export: %w", err)
	}
	flush()

	return messages, nil
}

// IsChatExport reports whether text contains at least one message header.
func IsChatExport(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if headerPattern.MatchString(strings.TrimSuffix(line, "\r")) {
			return true
		}
	}
	return false
}
