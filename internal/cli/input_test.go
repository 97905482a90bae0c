package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPasswords feeds answers to readPassword in order.
func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more input")
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

func TestGetPassword(t *testing.T) {
	stubPasswords(t, "secret")
	var out bytes.Buffer

	pw, err := GetPassword(&out, "Password: ")
	require.NoError(t, err)
	assert.Equal(t, "secret", pw)
	assert.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	stubPasswords(t)
	var out bytes.Buffer

	_, err := GetPassword(&out, "Password: ")
	assert.Error(t, err)
}

func TestGetNewPassword(t *testing.T) {
	var out bytes.Buffer

	stubPasswords(t, "pw", "pw")
	pw, err := GetNewPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "pw", pw)

	stubPasswords(t, "pw", "other")
	_, err = GetNewPassword(&out)
	assert.ErrorIs(t, err, errPasswordMismatch)
}
