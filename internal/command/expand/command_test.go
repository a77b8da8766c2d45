package expand_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-vargen/internal/command/expand"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	app := &cli.Command{
		Name:     "vargen",
		Reader:   strings.NewReader(stdin),
		Writer:   &out,
		Commands: []*cli.Command{expand.New()},
	}
	require.NoError(t, app.Run(context.Background(), append([]string{"vargen"}, args...)))

	return out.String()
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "arguments",
			args: []string{"expand", "Hello [World|Universe]!", "A[bc"},
			want: "Hello World!\nHello Universe!\nA[bc\n",
		},
		{
			name:  "stdin",
			stdin: "[a|b]\n\n[c|]\n",
			args:  []string{"expand"},
			want:  "a\nb\nc\n\n",
		},
		{
			name: "count",
			args: []string{"expand", "--count", "[a|b][c|d]", "plain"},
			want: "4\n1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(t, tt.stdin, tt.args...))
		})
	}
}
