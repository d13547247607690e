// Package command parses operator input text into typed command values.
// Parsing is total: every input maps to exactly one command or to None.
package command

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind discriminates the parsed command variants.
type Kind int

const (
	// None means the text is not a command at all (plain operator chatter).
	None Kind = iota
	// DirectReply sends free text privately to a user by ID.
	DirectReply
	// Announce broadcasts free text to the announcement channel immediately.
	Announce
	// ScheduleAnnounce broadcasts at the next local occurrence of HH:MM.
	ScheduleAnnounce
	// Invalid is a recognized command with a malformed payload.
	Invalid
)

// Command is the result of parsing one line of operator input. Only the
// fields relevant to Kind are populated.
type Command struct {
	Kind   Kind
	UserID int64  // DirectReply target
	Body   string // DirectReply, Announce, ScheduleAnnounce
	Hour   int    // ScheduleAnnounce
	Minute int    // ScheduleAnnounce
	Reason string // Invalid usage hint
}

const (
	replyUsage    = "usage: reply <id> <message>"
	announceUsage = "missing announcement body"
	programUsage  = `usage: !program HH:MM "message"`
)

// Hour and minute must be exactly two digits; the body is everything between
// the first pair of double quotes, which must close the line.
var programRe = regexp.MustCompile(`^!program\s+([0-9]{2}):([0-9]{2})\s+"(.*)"\s*$`)

// Parse turns raw operator text into a Command. It never fails: unrecognized
// text yields Kind None, recognized-but-malformed text yields Kind Invalid
// with a usage hint.
func Parse(text string) Command {
	switch {
	case strings.HasPrefix(text, "reply ") || strings.HasPrefix(text, "reply\t"):
		return parseReply(text)
	case strings.HasPrefix(text, "!announce"):
		return parseAnnounce(text)
	case strings.HasPrefix(text, "!program"):
		return parseProgram(text)
	default:
		return Command{Kind: None}
	}
}

func parseReply(text string) Command {
	// Everything after the second field belongs to the body, embedded
	// whitespace included.
	rest := strings.TrimLeft(text[len("reply"):], " \t")
	idEnd := strings.IndexAny(rest, " \t")
	if idEnd < 0 {
		return Command{Kind: Invalid, Reason: replyUsage}
	}

	id, err := strconv.ParseInt(rest[:idEnd], 10, 64)
	if err != nil {
		return Command{Kind: Invalid, Reason: replyUsage}
	}

	body := rest[idEnd+1:]
	if body == "" {
		return Command{Kind: Invalid, Reason: replyUsage}
	}
	return Command{Kind: DirectReply, UserID: id, Body: body}
}

func parseAnnounce(text string) Command {
	body := strings.TrimSpace(strings.TrimPrefix(text, "!announce"))
	if body == "" {
		return Command{Kind: Invalid, Reason: announceUsage}
	}
	return Command{Kind: Announce, Body: body}
}

func parseProgram(text string) Command {
	m := programRe.FindStringSubmatch(text)
	if m == nil {
		return Command{Kind: Invalid, Reason: programUsage}
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return Command{Kind: Invalid, Reason: programUsage}
	}
	if m[3] == "" {
		return Command{Kind: Invalid, Reason: programUsage}
	}
	return Command{Kind: ScheduleAnnounce, Hour: hour, Minute: minute, Body: m[3]}
}
