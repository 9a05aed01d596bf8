package numeric_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// unhex decodes a hex string, ignoring spaces.
func unhex(t *testing.T, s string) []byte {
	t.Helper()

	data, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)

	return data
}

func unhexF(s string) []byte {
	data, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		panic(err)
	}

	return data
}

// shortName truncates long repetitive inputs for subtest names.
func shortName(s string) string {
	if len(s) <= 48 {
		return s
	}

	return s[:24] + "..." + s[len(s)-8:]
}
