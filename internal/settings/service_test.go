package settings

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	values map[string]float64
	reads  int
}

func (m *mockRepository) Values(ctx context.Context) (map[string]float64, error) {
	m.reads++
	out := make(map[string]float64, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *mockRepository) Upsert(ctx context.Context, key string, value float64) error {
	m.values[key] = value
	return nil
}

func newTestService(t *testing.T) (*Service, *mockRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := &mockRepository{values: map[string]float64{
		"vat_rate":               7,
		"installation_fee_min":   1500,
		"waste_factor_wallpaper": 1.15,
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repo, rdb, time.Minute), repo
}

func TestSnapshot(t *testing.T) {
	svc, _ := newTestService(t)

	cfg, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7.0, cfg.VATRatePercent)
	assert.Equal(t, 1500.0, cfg.InstallationFeeMin)
	assert.Equal(t, 1.15, cfg.WasteFactor("wallpaper"))
	assert.Equal(t, 1.0, cfg.WasteFactor("curtains"), "absent category defaults to 1.0")
}

func TestSnapshotUsesCache(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	_, err = svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.reads, "second snapshot must come from cache")
}

func TestUpdateInvalidatesCache(t *testing.T) {
	svc, repo := newTestService(t)

	cfg, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7.0, cfg.VATRatePercent)

	require.NoError(t, svc.Update(context.Background(), "vat_rate", 9))

	cfg, err = svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9.0, cfg.VATRatePercent)
	assert.Equal(t, 2, repo.reads)
}

func TestUpdateRejectsEmptyKey(t *testing.T) {
	svc, _ := newTestService(t)
	require.Error(t, svc.Update(context.Background(), "", 1))
}
