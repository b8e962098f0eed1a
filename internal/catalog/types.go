// internal/catalog/types.go

// Package catalog supplies vendor profiles to the matching engine. Vendors
// are owned by the backing store and are read-only inputs here; each fetch
// is an authoritative snapshot, never cached across pipeline invocations.
package catalog

import "time"

// VendorService is one priced offering. Price bounds may arrive inverted
// from upstream and must be normalized before any arithmetic.
type VendorService struct {
	ServiceID   string  `json:"serviceId"`
	Name        string  `json:"name"`
	PriceMin    float64 `json:"priceMin"`
	PriceMax    float64 `json:"priceMax"`
	IsAvailable bool    `json:"isAvailable"`
}

// Normalized returns the service with price bounds in (min, max) order.
func (s VendorService) Normalized() VendorService {
	if s.PriceMin > s.PriceMax {
		s.PriceMin, s.PriceMax = s.PriceMax, s.PriceMin
	}
	return s
}

// VendorProfile is one catalog entry. An empty SupportedEventTypes set means
// the vendor supports all event types.
type VendorProfile struct {
	VendorID            string          `json:"vendorId"`
	Name                string          `json:"name"`
	City                string          `json:"city"`
	SupportedEventTypes []string        `json:"supportedEventTypes,omitempty"`
	Services            []VendorService `json:"services"`
	RatingAverage       float64         `json:"ratingAverage"`
	RatingCount         int             `json:"ratingCount"`
	ResponseTimeHours   *float64        `json:"responseTimeHours,omitempty"`
	VerificationStatus  string          `json:"verificationStatus"`
	LastActiveAt        time.Time       `json:"lastActiveAt"`
	ContactEmail        string          `json:"contactEmail,omitempty"`
	ContactPhone        string          `json:"contactPhone,omitempty"`
}

// SupportsEventType reports whether the vendor serves the given event type.
func (v VendorProfile) SupportsEventType(eventType string) bool {
	if len(v.SupportedEventTypes) == 0 {
		return true
	}
	for _, t := range v.SupportedEventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// Normalize swaps any inverted service price bounds in place. Sources call
// this once at the boundary so downstream arithmetic never re-checks.
func (v *VendorProfile) Normalize() {
	for i, s := range v.Services {
		v.Services[i] = s.Normalized()
	}
}
