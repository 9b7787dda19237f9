package authenticator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fairdraw/backend/config"
)

type testObject struct {
	ID string `json:"id"`
}

func TestTokenEngineRoundTrip(t *testing.T) {
	engine := NewTokenEngine[testObject](config.TokenConfigs{
		Secret:     "secret",
		Expiration: time.Minute,
	})

	token, err := engine.Generate("user1", testObject{ID: "user1"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", obj.ID)
}

func TestTokenEngineRejectsWrongSecret(t *testing.T) {
	engine := NewTokenEngine[testObject](config.TokenConfigs{
		Secret:     "secret",
		Expiration: time.Minute,
	})

	other := NewTokenEngine[testObject](config.TokenConfigs{
		Secret:     "another-secret",
		Expiration: time.Minute,
	})

	token, err := engine.Generate("user1", testObject{ID: "user1"})
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestTokenEngineRejectsExpired(t *testing.T) {
	engine := NewTokenEngine[testObject](config.TokenConfigs{
		Secret:     "secret",
		Expiration: -time.Minute,
	})

	token, err := engine.Generate("user1", testObject{ID: "user1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}
