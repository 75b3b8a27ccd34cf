package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCommitMessage(t *testing.T) {
	tests := []struct {
		name                        string
		ctype, scope, subject, body string
		want                        string
	}{
		{"simple", "feat", "", "add note", "", "feat: add note\n\nCheckpoint-by: timedpad"},
		{"scope", "chore", "notes", "checkpoint", "", "chore(notes): checkpoint\n\nCheckpoint-by: timedpad"},
		{"body", "", "", "checkpoint", "  3 notes\n", "chore: checkpoint\n\n3 notes\n\nCheckpoint-by: timedpad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCommitMessage(tt.ctype, tt.scope, tt.subject, tt.body))
		})
	}
}

func TestAppendFooter(t *testing.T) {
	assert.Equal(t, "msg\n\nCheckpoint-by: timedpad", AppendFooter("msg"))
	assert.Equal(t, "msg\n\nCheckpoint-by: timedpad", AppendFooter("msg\n"))

	signed := "msg\n\nCheckpoint-by: timedpad"
	assert.Equal(t, signed, AppendFooter(signed))
}
