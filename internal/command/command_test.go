package command_test

import (
	"testing"

	"github.com/ldmoreira/stewardbot/internal/command"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  command.Command
	}{
		{
			name:  "direct reply",
			input: "reply 555 Hello",
			want:  command.Command{Kind: command.DirectReply, UserID: 555, Body: "Hello"},
		},
		{
			name:  "direct reply keeps embedded whitespace",
			input: "reply 12 see you at  10:00 sharp",
			want:  command.Command{Kind: command.DirectReply, UserID: 12, Body: "see you at  10:00 sharp"},
		},
		{
			name:  "reply with non-integer id",
			input: "reply bob Hello",
			want:  command.Command{Kind: command.Invalid, Reason: "usage: reply <id> <message>"},
		},
		{
			name:  "reply with missing body",
			input: "reply 555",
			want:  command.Command{Kind: command.Invalid, Reason: "usage: reply <id> <message>"},
		},
		{
			name:  "bare reply word is chatter",
			input: "reply",
			want:  command.Command{Kind: command.None},
		},
		{
			name:  "immediate announce",
			input: "!announce Server maintenance at noon",
			want:  command.Command{Kind: command.Announce, Body: "Server maintenance at noon"},
		},
		{
			name:  "announce without body",
			input: "!announce   ",
			want:  command.Command{Kind: command.Invalid, Reason: "missing announcement body"},
		},
		{
			name:  "scheduled announce",
			input: `!program 14:30 "Event starts soon"`,
			want:  command.Command{Kind: command.ScheduleAnnounce, Hour: 14, Minute: 30, Body: "Event starts soon"},
		},
		{
			name:  "scheduled announce at midnight",
			input: `!program 00:00 "Happy new day"`,
			want:  command.Command{Kind: command.ScheduleAnnounce, Hour: 0, Minute: 0, Body: "Happy new day"},
		},
		{
			name:  "single-digit time components rejected",
			input: `!program 9:5 "Event soon"`,
			want:  command.Command{Kind: command.Invalid, Reason: `usage: !program HH:MM "message"`},
		},
		{
			name:  "out-of-range hour",
			input: `!program 24:00 "Too late"`,
			want:  command.Command{Kind: command.Invalid, Reason: `usage: !program HH:MM "message"`},
		},
		{
			name:  "out-of-range minute",
			input: `!program 10:60 "No such minute"`,
			want:  command.Command{Kind: command.Invalid, Reason: `usage: !program HH:MM "message"`},
		},
		{
			name:  "missing quotes",
			input: "!program 10:30 Event soon",
			want:  command.Command{Kind: command.Invalid, Reason: `usage: !program HH:MM "message"`},
		},
		{
			name:  "unterminated quote",
			input: `!program 10:30 "Event soon`,
			want:  command.Command{Kind: command.Invalid, Reason: `usage: !program HH:MM "message"`},
		},
		{
			name:  "plain chatter",
			input: "hey, how is it going?",
			want:  command.Command{Kind: command.None},
		},
		{
			name:  "empty input",
			input: "",
			want:  command.Command{Kind: command.None},
		},
		{
			name:  "reply prefix inside a word is chatter",
			input: "replying now",
			want:  command.Command{Kind: command.None},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := command.Parse(tc.input)
			if got != tc.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}
