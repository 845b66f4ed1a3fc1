package flagvalue

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give string
		want language.Tag
	}{
		{give: "en", want: language.English},
		{give: "zh-Hans", want: language.SimplifiedChinese},
		{give: "zh-CN", want: language.MustParse("zh-CN")},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
			var l Language
			fset.Var(&l, "lang", "")
			require.NoError(t, fset.Parse([]string{"-lang", tt.give}))

			assert.Equal(t, tt.want, l.Tag())
			assert.Equal(t, tt.want, l.Get())
			assert.Equal(t, tt.want.String(), l.String())
		})
	}
}

func TestLanguage_error(t *testing.T) {
	t.Parallel()

	fset := flag.NewFlagSet(t.Name(), flag.ContinueOnError)
	fset.SetOutput(io.Discard)

	var l Language
	fset.Var(&l, "lang", "")
	assert.Error(t, fset.Parse([]string{"-lang", "not a language!"}))
}
