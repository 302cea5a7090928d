package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeJSONLines(t *testing.T) {
	type row struct {
		Name string `json:"name"`
	}
	b, err := EncodeJSONLines([]row{{Name: "A"}, {Name: "B"}})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Equal(t, []string{`{"name":"A"}`, `{"name":"B"}`}, lines)

	empty, err := EncodeJSONLines[row](nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestEncodeJSONEndsWithNewline(t *testing.T) {
	b, err := EncodeJSON(map[string]int{"exported": 3})
	require.NoError(t, err)
	require.Contains(t, string(b), `"exported": 3`)
	require.True(t, strings.HasSuffix(string(b), "\n"))
}

func TestIsTempFile(t *testing.T) {
	require.True(t, IsTempFile(".tmp-12345"))
	require.False(t, IsTempFile("HALLMARK_X.yaml"))
}
