// internal/catalog/source.go
package catalog

import "context"

// Source fetches the vendor catalog scoped to one city. The discovery
// pipeline trusts the city scoping and does not re-filter it.
type Source interface {
	VendorsByCity(ctx context.Context, city string) ([]VendorProfile, error)
}
