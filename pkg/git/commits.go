package git

import "strings"

// Conventional commit types used by checkpoints.
const (
	CommitTypeFeat  = "feat"
	CommitTypeFix   = "fix"
	CommitTypeChore = "chore"
)

// Footer marks commits written by the checkpoint command.
const Footer = "Checkpoint-by: timedpad"

// FormatCommitMessage builds a Conventional Commit message:
//
//	<type>(<scope>): <subject>
//
//	<body>
//
//	Checkpoint-by: timedpad
func FormatCommitMessage(ctype, scope, subject, body string) string {
	if ctype == "" {
		ctype = CommitTypeChore
	}

	var sb strings.Builder
	sb.WriteString(ctype)
	if scope != "" {
		sb.WriteString("(" + scope + ")")
	}
	sb.WriteString(": " + subject)

	if body = strings.TrimSpace(body); body != "" {
		sb.WriteString("\n\n" + body)
	}
	sb.WriteString("\n\n" + Footer)
	return sb.String()
}

// AppendFooter adds the footer to a free-form message unless already present.
func AppendFooter(msg string) string {
	if strings.Contains(msg, Footer) {
		return msg
	}
	return strings.TrimRight(msg, "\n") + "\n\n" + Footer
}
