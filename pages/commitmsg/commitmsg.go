package commitmsg

import (
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	begin = "--- pages digest begin ---"
	end   = "--- pages digest end ---"
)

// DefaultTemplate is the subject template used when none
// is configured.
const DefaultTemplate = "rebuild pages at {REVISION}"

// Generate renders the subject template with the given
// revision and branch and appends the digest between
// marker lines. Pass empty digest to omit the footer.
func Generate(
	template string,
	revision string,
	branch string,
	digest string,
) string {
	if template == "" {
		template = DefaultTemplate
	}

	subject := fasttemplate.ExecuteStringStd(
		template, "{", "}",
		map[string]any{
			"REVISION": revision,
			"BRANCH":   branch,
		},
	)

	if digest == "" {
		return subject
	}

	var sb strings.Builder

	sb.WriteString(subject)
	sb.WriteString("\n\n")
	sb.WriteString(begin)
	sb.WriteByte('\n')
	sb.WriteString(digest)
	sb.WriteByte('\n')
	sb.WriteString(end)
	sb.WriteByte('\n')

	return sb.String()
}

// ExtractDigest extracts the digest embedded between the
// marker lines of a commit message. Returns empty string
// when the markers are missing or unbalanced.
func ExtractDigest(msg string) string {
	var (
		digest         string
		betweenMarkers bool
	)

	for _, line := range strings.Split(msg, "\n") {
		switch line {
		case begin:
			betweenMarkers = true
		case end:
			return digest
		default:
			if betweenMarkers {
				digest = strings.TrimSpace(line)
			}
		}
	}

	return ""
}
