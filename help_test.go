package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_Write(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give    Help
		wantErr string
	}{
		{give: "usage"},
		{give: "default"},
		{give: "config"},
		{give: "frontmatter"},
		{give: "highlight"},
		{give: "manifest"},
		{
			give:    "not-a-topic",
			wantErr: `unknown help topic "not-a-topic": valid values`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.give.String(), func(t *testing.T) {
			t.Parallel()

			err := tt.give.Write(io.Discard)
			if len(tt.wantErr) > 0 {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHelp_usageIsFirstLine(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	require.NoError(t, UsageHelp.Write(&buff))
	assert.Equal(t, "USAGE: codetabs [OPTIONS] [MANIFEST]\n", buff.String())
}

func TestHelp_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give      string
		want      Help
		wantKnown bool
	}{
		{give: "true", want: DefaultHelp, wantKnown: true},
		{give: "false", want: NoHelp},
		{give: " Manifest ", want: "manifest", wantKnown: true},
		{give: "tabs.yaml", want: "tabs.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			var h Help
			require.NoError(t, h.Set(tt.give))
			assert.Equal(t, tt.want, h)
			assert.Equal(t, tt.wantKnown, h.Known())
			assert.Equal(t, tt.want, h.Get())
		})
	}
}

func TestHelp_noHelpWritesNothing(t *testing.T) {
	t.Parallel()

	var buff bytes.Buffer
	require.NoError(t, NoHelp.Write(&buff))
	assert.Empty(t, buff.String())
}
