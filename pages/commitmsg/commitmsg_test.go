package commitmsg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/pages_publisher/pages/commitmsg"
)

func TestGenerate_default_template(t *testing.T) {
	t.Parallel()

	msg := commitmsg.Generate(
		"", "abc1234", "gh-pages", "",
	)

	assert.Equal(t, "rebuild pages at abc1234", msg)
}

func TestGenerate_custom_template(t *testing.T) {
	t.Parallel()

	msg := commitmsg.Generate(
		"publish {REVISION} to {BRANCH}",
		"abc1234",
		"gh-pages",
		"",
	)

	assert.Equal(
		t, "publish abc1234 to gh-pages", msg,
	)
}

func TestGenerate_unknown_placeholder_preserved(
	t *testing.T,
) {
	t.Parallel()

	msg := commitmsg.Generate(
		"site {VERSION} at {REVISION}",
		"abc1234",
		"gh-pages",
		"",
	)

	assert.Equal(
		t, "site {VERSION} at abc1234", msg,
	)
}

func TestGenerate_and_ExtractDigest_roundtrip(
	t *testing.T,
) {
	t.Parallel()

	const dg = "deadbeef"

	msg := commitmsg.Generate(
		"", "abc1234", "gh-pages", dg,
	)

	assert.Contains(t, msg, "rebuild pages at abc1234")
	assert.Equal(t, dg, commitmsg.ExtractDigest(msg))
}

func TestExtractDigest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  string
		want string
	}{
		{
			name: "no markers",
			msg:  "rebuild pages at abc1234",
			want: "",
		},
		{
			name: "empty message",
			msg:  "",
			want: "",
		},
		{
			name: "missing end marker",
			msg: "subject\n\n" +
				"--- pages digest begin ---\n" +
				"deadbeef\n",
			want: "",
		},
		{
			name: "well formed",
			msg: "subject\n\n" +
				"--- pages digest begin ---\n" +
				"deadbeef\n" +
				"--- pages digest end ---\n",
			want: "deadbeef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := commitmsg.ExtractDigest(tt.msg)
			assert.Equal(t, tt.want, got)
		})
	}
}
