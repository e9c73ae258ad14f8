//go:build !integration

package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/shipkit/shipkit-cli/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	valid   map[string]bool
	checked []string
}

func (s *stubValidator) IsValidToken(_ context.Context, token string) bool {
	s.checked = append(s.checked, token)
	return s.valid[token]
}

func newTestTokenEnv(stored string) (tokenEnv, *credentials.MemoryStore, *stubValidator, *bytes.Buffer) {
	store := credentials.NewMemoryStore(stored)
	validator := &stubValidator{valid: map[string]bool{"sk_live_1234567890": true}}
	var out bytes.Buffer
	return tokenEnv{store: store, validator: validator, out: &out}, store, validator, &out
}

func TestNewTokenCommand(t *testing.T) {
	cmd := NewTokenCommand()
	require.NotNil(t, cmd, "Command should be created")
	assert.Equal(t, "token", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"set", "remove", "status"}, names)
}

func TestRunTokenSet(t *testing.T) {
	t.Run("valid token is saved", func(t *testing.T) {
		env, store, _, out := newTestTokenEnv("")
		require.NoError(t, runTokenSet(context.Background(), env, "sk_live_1234567890"))

		got, ok := store.Get()
		assert.True(t, ok)
		assert.Equal(t, "sk_live_1234567890", got)
		assert.Contains(t, out.String(), "Token saved (sk_l…7890)")
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		env, store, _, out := newTestTokenEnv("previous")
		err := runTokenSet(context.Background(), env, "bogus")
		require.Error(t, err)
		assert.Equal(t, 1, ExitCode(err))
		assert.Contains(t, out.String(), "Invalid token")

		got, _ := store.Get()
		assert.Equal(t, "previous", got, "existing token must survive a failed set")
	})
}

func TestRunTokenRemove(t *testing.T) {
	env, store, _, out := newTestTokenEnv("sk_live_1234567890")
	runTokenRemove(env)
	assert.Contains(t, out.String(), "Token removed")
	_, ok := store.Get()
	assert.False(t, ok)

	out.Reset()
	runTokenRemove(env)
	assert.Contains(t, out.String(), "No token saved")
}

func TestRunTokenStatus(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		wantErr  bool
		wantText string
		wantCall bool
	}{
		{name: "no token", stored: "", wantErr: true, wantText: "No token saved"},
		{name: "valid token", stored: "sk_live_1234567890", wantText: "is valid", wantCall: true},
		{name: "stale token", stored: "sk_live_0000000000", wantErr: true, wantText: "no longer valid", wantCall: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _, validator, out := newTestTokenEnv(tt.stored)
			err := runTokenStatus(context.Background(), env)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out.String(), tt.wantText)
			assert.Equal(t, tt.wantCall, len(validator.checked) == 1)
		})
	}
}

func TestResolveTokenValue(t *testing.T) {
	t.Setenv(constants.EnvToken, "from-env")

	got, err := resolveTokenValue("  from-flag ")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", got)

	got, err = resolveTokenValue("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "abc", want: "***"},
		{in: "abcdefgh", want: "********"},
		{in: "abcdefghij", want: "abcd…ghij"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, maskToken(tt.in))
		})
	}
}
