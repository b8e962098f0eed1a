// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// PostgresSource reads vendor profiles from the marketplace database.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// VendorsByCity loads every vendor in a city together with its services.
// Profiles are normalized at this boundary: inverted price bounds are
// swapped and a malformed supported-types column degrades to "all types".
func (s *PostgresSource) VendorsByCity(ctx context.Context, city string) ([]VendorProfile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, city, supported_event_types, rating_average, rating_count,
		       response_time_hours, verification_status, last_active_at,
		       contact_email, contact_phone
		FROM vendors WHERE city = $1`, city)
	if err != nil {
		return nil, fmt.Errorf("query vendors: %w", err)
	}
	defer rows.Close()

	var vendors []VendorProfile
	var vendorIDs []string
	for rows.Next() {
		var v VendorProfile
		var supportedTypes []byte
		var responseTime sql.NullFloat64
		var contactEmail, contactPhone sql.NullString

		err := rows.Scan(&v.VendorID, &v.Name, &v.City, &supportedTypes,
			&v.RatingAverage, &v.RatingCount, &responseTime,
			&v.VerificationStatus, &v.LastActiveAt, &contactEmail, &contactPhone)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}

		if len(supportedTypes) > 0 {
			if err := json.Unmarshal(supportedTypes, &v.SupportedEventTypes); err != nil {
				v.SupportedEventTypes = nil
			}
		}
		if responseTime.Valid {
			rt := responseTime.Float64
			v.ResponseTimeHours = &rt
		}
		v.ContactEmail = contactEmail.String
		v.ContactPhone = contactPhone.String

		vendors = append(vendors, v)
		vendorIDs = append(vendorIDs, v.VendorID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendors: %w", err)
	}

	if len(vendors) == 0 {
		return vendors, nil
	}

	if err := s.attachServices(ctx, vendors, vendorIDs); err != nil {
		return nil, err
	}

	for i := range vendors {
		vendors[i].Normalize()
	}
	return vendors, nil
}

func (s *PostgresSource) attachServices(ctx context.Context, vendors []VendorProfile, vendorIDs []string) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT vendor_id, service_id, name, price_min, price_max, is_available
		FROM vendor_services WHERE vendor_id = ANY($1)`, pq.Array(vendorIDs))
	if err != nil {
		return fmt.Errorf("query vendor services: %w", err)
	}
	defer rows.Close()

	byVendor := make(map[string]int, len(vendors))
	for i, v := range vendors {
		byVendor[v.VendorID] = i
	}

	for rows.Next() {
		var vendorID string
		var svc VendorService
		if err := rows.Scan(&vendorID, &svc.ServiceID, &svc.Name, &svc.PriceMin, &svc.PriceMax, &svc.IsAvailable); err != nil {
			return fmt.Errorf("scan vendor service: %w", err)
		}
		if i, ok := byVendor[vendorID]; ok {
			vendors[i].Services = append(vendors[i].Services, svc)
		}
	}
	return rows.Err()
}
