package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
)

type mockSettingsRepo struct {
	getFn    func(ctx context.Context) (*domain.SafeZonePolicy, error)
	upsertFn func(ctx context.Context, radius, drift float64) error
}

func (m *mockSettingsRepo) Get(ctx context.Context) (*domain.SafeZonePolicy, error) {
	return m.getFn(ctx)
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, radius, drift float64) error {
	return m.upsertFn(ctx, radius, drift)
}

func testPolicy(radius, drift float64) *domain.SafeZonePolicy {
	return &domain.SafeZonePolicy{
		CenterLatitude:  0,
		CenterLongitude: 0,
		RadiusDegrees:   radius,
		DriftDegrees:    drift,
	}
}

func TestClassify_Scenario(t *testing.T) {
	// radius 0.01 degrees is roughly 1.1km; drift 0.005 roughly 0.55km.
	policy := testPolicy(0.01, 0.005)

	zone, err := Classify(0, 0.008, policy)
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneInside, zone)
	assert.False(t, zone.Outside())

	zone, err = Classify(0, 0.02, policy)
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneOutside, zone)
	assert.True(t, zone.Outside())
}

func TestClassify_DriftBand(t *testing.T) {
	policy := testPolicy(0.01, 0.005)

	// Between radius and radius+threshold: benign drift, no alert.
	zone, err := Classify(0, 0.012, policy)
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneDrift, zone)
	assert.False(t, zone.Outside())
}

func TestClassify_ZeroDriftDisablesTolerance(t *testing.T) {
	policy := testPolicy(0.01, 0)

	zone, err := Classify(0, 0.0101, policy)
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneOutside, zone)
}

func TestClassify_CenterIsInside(t *testing.T) {
	policy := testPolicy(0.01, 0.005)

	zone, err := Classify(0, 0, policy)
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneInside, zone)
}

func TestClassify_MonotonicInDistance(t *testing.T) {
	policy := testPolicy(0.01, 0.005)

	// Walking away from the center never flips back to a safer zone.
	rank := map[domain.Zone]int{domain.ZoneInside: 0, domain.ZoneDrift: 1, domain.ZoneOutside: 2}
	prev := -1
	for _, lon := range []float64{0, 0.004, 0.008, 0.011, 0.014, 0.016, 0.02, 0.1} {
		zone, err := Classify(0, lon, policy)
		require.NoError(t, err)
		require.GreaterOrEqual(t, rank[zone], prev, "zone regressed at lon=%f", lon)
		prev = rank[zone]
	}
}

func TestClassify_InvalidPolicy(t *testing.T) {
	_, err := Classify(0, 0, testPolicy(0, 0.005))
	assert.ErrorIs(t, err, domain.ErrInvalidPolicy)

	_, err = Classify(0, 0, testPolicy(-0.01, 0.005))
	assert.ErrorIs(t, err, domain.ErrInvalidPolicy)

	_, err = Classify(0, 0, testPolicy(0.01, -0.001))
	assert.ErrorIs(t, err, domain.ErrInvalidPolicy)
}

func TestClassify_Deterministic(t *testing.T) {
	policy := testPolicy(0.05, 0.01)

	first, err := Classify(-2.1488, 30.5429, policy)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Classify(-2.1488, 30.5429, policy)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPolicy_DefaultsWhenUnset(t *testing.T) {
	repo := &mockSettingsRepo{
		getFn: func(_ context.Context) (*domain.SafeZonePolicy, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := NewSafeZoneService(repo, -2.148252, 30.542430)

	policy, err := svc.Policy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRadiusDegrees, policy.RadiusDegrees)
	assert.Equal(t, domain.DefaultDriftDegrees, policy.DriftDegrees)
	assert.Equal(t, -2.148252, policy.CenterLatitude)
	assert.Equal(t, 30.542430, policy.CenterLongitude)
}

func TestPolicy_StoredValues(t *testing.T) {
	repo := &mockSettingsRepo{
		getFn: func(_ context.Context) (*domain.SafeZonePolicy, error) {
			return &domain.SafeZonePolicy{RadiusDegrees: 0.02, DriftDegrees: 0.005}, nil
		},
	}
	svc := NewSafeZoneService(repo, 1, 2)

	policy, err := svc.Policy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.02, policy.RadiusDegrees)
	assert.Equal(t, 0.005, policy.DriftDegrees)
	assert.Equal(t, 1.0, policy.CenterLatitude)
}

func TestPolicy_RepoError(t *testing.T) {
	repo := &mockSettingsRepo{
		getFn: func(_ context.Context) (*domain.SafeZonePolicy, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewSafeZoneService(repo, 0, 0)

	_, err := svc.Policy(context.Background())
	assert.Error(t, err)
}

func TestUpdate_Validation(t *testing.T) {
	repo := &mockSettingsRepo{
		upsertFn: func(_ context.Context, _, _ float64) error {
			t.Fatal("Upsert should not be called for invalid input")
			return nil
		},
	}
	svc := NewSafeZoneService(repo, 0, 0)

	assert.ErrorIs(t, svc.Update(context.Background(), 0, 0.01), domain.ErrInvalidPolicy)
	assert.ErrorIs(t, svc.Update(context.Background(), -1, 0.01), domain.ErrInvalidPolicy)
	assert.ErrorIs(t, svc.Update(context.Background(), 0.05, -0.01), domain.ErrInvalidPolicy)
}

func TestUpdate_Success(t *testing.T) {
	var gotRadius, gotDrift float64
	repo := &mockSettingsRepo{
		upsertFn: func(_ context.Context, radius, drift float64) error {
			gotRadius, gotDrift = radius, drift
			return nil
		},
	}
	svc := NewSafeZoneService(repo, 0, 0)

	require.NoError(t, svc.Update(context.Background(), 0.02, 0.005))
	assert.Equal(t, 0.02, gotRadius)
	assert.Equal(t, 0.005, gotDrift)
}

func TestHaversine(t *testing.T) {
	// Same point is zero distance.
	assert.Zero(t, haversine(-2.148252, 30.542430, -2.148252, 30.542430))

	// One hundredth of a degree of longitude at the equator is ~1.1km.
	d := haversine(0, 0, 0, 0.01)
	assert.InDelta(t, 1112, d, 10)
}
