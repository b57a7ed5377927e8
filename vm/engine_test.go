package vm

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/govm-net/counter/core"
	"github.com/govm-net/counter/counter"
	_ "github.com/govm-net/counter/store/bolt"
	"github.com/govm-net/counter/store/db"
	"github.com/govm-net/counter/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ownerAddr = core.AddressFromString("0xabcdef1234567890abcdef1234567890abcdef12")
	otherAddr = core.AddressFromString("0x1111111111111111111111111111111111111111")
)

func newTestEngine(t *testing.T, storeType string) *Engine {
	t.Helper()
	params := map[string]any{}
	if storeType != "memory" {
		params["db_path"] = filepath.Join(t.TempDir(), "counter."+storeType)
	}
	engine, err := NewEngine(&Config{StoreType: storeType, StoreParams: params})
	require.NoError(t, err)
	t.Cleanup(func() {
		engine.Close()
	})
	return engine
}

func queryCount(t *testing.T, engine *Engine) int32 {
	t.Helper()
	data, err := engine.Query(context.Background(), []byte(`{"get_count": {}}`))
	require.NoError(t, err)
	var resp counter.CountResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp.Count
}

func TestValidateConfig(t *testing.T) {
	_, err := NewEngine(nil)
	assert.Error(t, err)

	_, err = NewEngine(&Config{StoreType: "etcd"})
	assert.Error(t, err)

	engine, err := NewEngine(&Config{})
	require.NoError(t, err)
	defer engine.Close()
	assert.IsType(t, &memory.Store{}, engine.GetStore())
}

func TestEngineScenario(t *testing.T) {
	for _, storeType := range []string{"memory", "db", "bolt"} {
		t.Run(storeType, func(t *testing.T) {
			engine := newTestEngine(t, storeType)
			ctx := context.Background()

			res, err := engine.Instantiate(ctx, ownerAddr, []byte(`{"count": 17}`))
			require.NoError(t, err)
			assert.NotEmpty(t, res.TxID)
			assert.Contains(t, res.Attributes, core.Attribute{Key: "owner", Value: ownerAddr.String()})
			assert.Contains(t, res.Attributes, core.Attribute{Key: "count", Value: "17"})

			_, err = engine.Instantiate(ctx, otherAddr, []byte(`{"count": 1}`))
			assert.ErrorIs(t, err, counter.ErrAlreadyInitialized)

			res, err = engine.Execute(ctx, otherAddr, []byte(`{"increment": {}}`))
			require.NoError(t, err)
			assert.Equal(t, []core.Attribute{{Key: "method", Value: "try_increment"}}, res.Attributes)
			assert.Equal(t, int32(18), queryCount(t, engine))

			_, err = engine.Execute(ctx, otherAddr, []byte(`{"reset": {"count": 5}}`))
			assert.ErrorIs(t, err, counter.ErrUnauthorized)
			assert.Equal(t, int32(18), queryCount(t, engine))

			_, err = engine.Execute(ctx, ownerAddr, []byte(`{"reset": {"count": 5}}`))
			require.NoError(t, err)
			assert.Equal(t, int32(5), queryCount(t, engine))

			info, err := engine.ContractVersion(ctx)
			require.NoError(t, err)
			assert.Equal(t, counter.ContractVersion, info.Version)
		})
	}
}

func TestEngineNotInitialized(t *testing.T) {
	engine := newTestEngine(t, "memory")
	ctx := context.Background()

	_, err := engine.Execute(ctx, ownerAddr, []byte(`{"increment": {}}`))
	assert.ErrorIs(t, err, counter.ErrNotInitialized)

	_, err = engine.Query(ctx, []byte(`{"get_count": {}}`))
	assert.ErrorIs(t, err, counter.ErrNotInitialized)

	_, err = engine.ContractVersion(ctx)
	assert.ErrorIs(t, err, counter.ErrNotInitialized)
}

func TestEngineRejectsBadPayloads(t *testing.T) {
	engine := newTestEngine(t, "memory")
	ctx := context.Background()

	_, err := engine.Instantiate(ctx, ownerAddr, []byte(`{}`))
	assert.ErrorIs(t, err, counter.ErrInvalidMessage)

	_, err = engine.Execute(ctx, ownerAddr, []byte(`{"decrement": {}}`))
	assert.ErrorIs(t, err, counter.ErrInvalidMessage)

	_, err = engine.Query(ctx, []byte(`{"get_owner": {}}`))
	assert.ErrorIs(t, err, counter.ErrInvalidMessage)
}

func TestEngineCanceledContext(t *testing.T) {
	engine := newTestEngine(t, "memory")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Instantiate(ctx, ownerAddr, []byte(`{"count": 1}`))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = engine.Query(context.Background(), []byte(`{"get_count": {}}`))
	assert.ErrorIs(t, err, counter.ErrNotInitialized)
}

func TestEngineRecordsEventsOnCommitOnly(t *testing.T) {
	engine := newTestEngine(t, "db")
	ctx := context.Background()

	res, err := engine.Instantiate(ctx, ownerAddr, []byte(`{"count": 3}`))
	require.NoError(t, err)

	_, err = engine.Execute(ctx, otherAddr, []byte(`{"reset": {"count": 0}}`))
	assert.ErrorIs(t, err, counter.ErrUnauthorized)

	_, err = engine.Execute(ctx, otherAddr, []byte(`{"increment": {}}`))
	require.NoError(t, err)

	events, err := engine.GetStore().(*db.Store).Events()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, res.TxID, events[0].TxID)
	assert.Equal(t, "instantiate", events[0].Method)
	assert.Equal(t, "try_increment", events[1].Method)
}

func TestEngineWithStore(t *testing.T) {
	engine := newTestEngine(t, "memory")
	s := memory.New()
	engine.WithStore(s)

	_, err := engine.Instantiate(context.Background(), ownerAddr, []byte(`{"count": 9}`))
	require.NoError(t, err)

	count, err := counter.QueryCount(s)
	require.NoError(t, err)
	assert.Equal(t, int32(9), count.Count)
}
