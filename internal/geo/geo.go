package geo

import (
	"context"
	"net"
)

// Location describes the network origin of an address.
type Location struct {
	Country   string  `json:"country,omitempty"`
	City      string  `json:"city,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Resolver is the pluggable geolocation capability. Implementations may call
// out to a GeoIP database or remote service; a nil location with a nil error
// means the address could not be resolved.
type Resolver interface {
	Geolocate(ctx context.Context, address string) (*Location, error)
}

// NoopResolver never resolves anything. It is the default wiring for the
// demo deployment.
type NoopResolver struct{}

func (NoopResolver) Geolocate(ctx context.Context, address string) (*Location, error) {
	return nil, nil
}

// LoopbackResolver tags loopback and private-range addresses as local and
// resolves nothing else. Useful for development against localhost traffic.
type LoopbackResolver struct{}

func (LoopbackResolver) Geolocate(ctx context.Context, address string) (*Location, error) {
	ip := net.ParseIP(address)
	if ip == nil {
		return nil, nil
	}
	if ip.IsLoopback() || ip.IsPrivate() {
		return &Location{Country: "local", City: "local"}, nil
	}
	return nil, nil
}
