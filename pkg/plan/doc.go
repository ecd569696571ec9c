// Package plan defines the subscription plan catalog: the set of plans a
// user can hold, the daily metered-operation quota each plan grants, and
// the billing provider price IDs used during checkout.
//
// The catalog is static by default but can be overridden from a YAML file
// so quota limits and price IDs can change without a rebuild:
//
//	catalog, err := plan.LoadCatalog("plans.yaml")
//	if err != nil {
//		// fall back to plan.DefaultCatalog()
//	}
//	limit := catalog.DailyLimit(plan.Premium)
//
// Every quota admission check reads limits through a Catalog, so the
// catalog must be constructed once at startup and shared.
package plan
