package domain

// SafeZonePolicy is the active geo-fence configuration. The center is a
// fixed reference point from server configuration; radius and drift
// threshold are admin-configurable and stored as degrees, matching the
// values the device and dashboard exchange.
type SafeZonePolicy struct {
	CenterLatitude  float64 `json:"-"`
	CenterLongitude float64 `json:"-"`
	RadiusDegrees   float64 `json:"safe_zone_radius"`
	DriftDegrees    float64 `json:"gps_drift_threshold"`
}

const (
	DefaultRadiusDegrees = 0.05
	DefaultDriftDegrees  = 0.01
)

// Zone is the classification of a fix against a SafeZonePolicy.
type Zone string

const (
	// ZoneInside: within the configured radius.
	ZoneInside Zone = "inside"
	// ZoneDrift: beyond the radius but within the drift tolerance band.
	// Recorded informationally, never alerted.
	ZoneDrift Zone = "drift"
	// ZoneOutside: beyond radius + drift threshold. Triggers an alert.
	ZoneOutside Zone = "outside"
)

// Outside reports whether the classification should raise an alert.
func (z Zone) Outside() bool { return z == ZoneOutside }
