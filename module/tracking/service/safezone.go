package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/repository/database"
)

const earthRadiusMeters = 6371000

// metersPerDegree converts the stored degree-based radius and drift
// threshold to meters, the same approximation the dashboard uses.
const metersPerDegree = 111320

// SafeZoneService owns the singleton safe-zone configuration. The center
// is fixed server configuration; radius and drift threshold come from the
// settings row and fall back to documented defaults when unset.
type SafeZoneService struct {
	repo      database.SettingsRepository
	centerLat float64
	centerLon float64
}

func NewSafeZoneService(repo database.SettingsRepository, centerLat, centerLon float64) *SafeZoneService {
	return &SafeZoneService{repo: repo, centerLat: centerLat, centerLon: centerLon}
}

func (s *SafeZoneService) Policy(ctx context.Context) (*domain.SafeZonePolicy, error) {
	policy, err := s.repo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		policy = &domain.SafeZonePolicy{
			RadiusDegrees: domain.DefaultRadiusDegrees,
			DriftDegrees:  domain.DefaultDriftDegrees,
		}
	} else if err != nil {
		return nil, fmt.Errorf("load safe zone settings: %w", err)
	}

	policy.CenterLatitude = s.centerLat
	policy.CenterLongitude = s.centerLon
	return policy, nil
}

func (s *SafeZoneService) Update(ctx context.Context, radiusDegrees, driftDegrees float64) error {
	if radiusDegrees <= 0 {
		return fmt.Errorf("%w: radius must be positive", domain.ErrInvalidPolicy)
	}
	if driftDegrees < 0 {
		return fmt.Errorf("%w: drift threshold must not be negative", domain.ErrInvalidPolicy)
	}
	return s.repo.Upsert(ctx, radiusDegrees, driftDegrees)
}

// Classify places a coordinate relative to the safe zone. The drift
// threshold widens the zone: only fixes beyond radius + threshold are
// classified outside and alerted; the band in between is benign drift.
func Classify(lat, lon float64, policy *domain.SafeZonePolicy) (domain.Zone, error) {
	if policy.RadiusDegrees <= 0 {
		return "", fmt.Errorf("%w: radius must be positive", domain.ErrInvalidPolicy)
	}
	if policy.DriftDegrees < 0 {
		return "", fmt.Errorf("%w: drift threshold must not be negative", domain.ErrInvalidPolicy)
	}

	dist := haversine(lat, lon, policy.CenterLatitude, policy.CenterLongitude)
	radius := policy.RadiusDegrees * metersPerDegree
	drift := policy.DriftDegrees * metersPerDegree

	switch {
	case dist <= radius:
		return domain.ZoneInside, nil
	case dist <= radius+drift:
		return domain.ZoneDrift, nil
	default:
		return domain.ZoneOutside, nil
	}
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
