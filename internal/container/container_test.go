package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devconnector/config"
	"github.com/oksasatya/devconnector/pkg/helpers"
)

func TestOpenStore_Memory(t *testing.T) {
	closeFn, err := OpenStore(context.Background(), &config.Config{StoreDriver: config.StoreMemory}, helpers.NewDiscardLogger())
	require.NoError(t, err)
	defer closeFn()

	require.NotNil(t, GetIdentityRepo())
	require.NotNil(t, GetProfileRepo())
	require.NotNil(t, GetAccountRepo())
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.Config{StoreDriver: "sqlite"}, helpers.NewDiscardLogger())
	require.Error(t, err)
}

func TestOptionalDepsAreUntypedNil(t *testing.T) {
	SetRabbitPub(nil)
	SetES(nil, "profiles")

	// a typed nil inside an interface would compare non-nil here
	require.True(t, GetJobs() == nil)
	require.True(t, GetProfileIndex() == nil)
}
