package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		stdin     string
		passwords []string
		wantErr   string
	}{
		{name: "arguments", args: []string{"-cost", "4", "secret1", "тест123"}, passwords: []string{"secret1", "тест123"}},
		{name: "stdin lines", args: []string{"-cost", "4"}, stdin: "one\n\ntwo\n", passwords: []string{"one", "two"}},
		{name: "nothing to hash", args: []string{"-cost", "4"}, wantErr: "no passwords given"},
		{name: "cost too low", args: []string{"-cost", "2", "x"}, wantErr: "cost must be between"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			err := run(tt.args, strings.NewReader(tt.stdin), &out)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			hashes := strings.Fields(out.String())
			require.Len(t, hashes, len(tt.passwords))
			for i, hash := range hashes {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(tt.passwords[i])))
			}
		})
	}
}
