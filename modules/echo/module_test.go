package echo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReply(t *testing.T) {
	tests := []struct {
		name    string
		command string
		prefix  string
		content string
		want    string
		ok      bool
	}{
		{name: "plain echo", command: "!echo", content: "!echo hello", want: "hello", ok: true},
		{name: "keeps inner spacing", command: "!echo", content: "!echo say  it  twice", want: "say  it  twice", ok: true},
		{name: "prefix is prepended", command: "!echo", prefix: "you said: ", content: "!echo hi", want: "you said: hi", ok: true},
		{name: "custom command", command: "!say", content: "!say hello", want: "hello", ok: true},
		{name: "unrelated message", command: "!echo", content: "hello there"},
		{name: "bare command", command: "!echo", content: "!echo"},
		{name: "command with only spaces", command: "!echo", content: "!echo    "},
		{name: "longer word sharing the prefix", command: "!echo", content: "!echoes around"},
		{name: "command mid-message", command: "!echo", content: "please !echo this"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Responder{command: tt.command, prefix: tt.prefix}
			got, ok := r.Reply(tt.content)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
