package plan

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry describes a single plan's entitlements and billing mapping.
type Entry struct {
	// DailyQuota is the number of metered operations allowed per calendar
	// day. Quota admission reads this value on every check.
	DailyQuota int64 `yaml:"daily_quota"`

	// PriceID is the billing provider's price identifier for paid plans.
	// Empty for plans that never go through checkout.
	PriceID string `yaml:"price_id"`
}

// Catalog maps plans to their entitlements. Immutable after construction.
type Catalog struct {
	entries map[Plan]Entry
}

// DefaultCatalog returns the built-in catalog used when no override file
// is configured.
func DefaultCatalog() *Catalog {
	return &Catalog{entries: map[Plan]Entry{
		Free:    {DailyQuota: 10},
		Premium: {DailyQuota: 500},
		Pro:     {DailyQuota: 2000},
	}}
}

// LoadCatalog reads a YAML catalog file and validates it. Plans missing
// from the file keep their defaults, so a file may override only prices.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Join(ErrCatalogNotFound, err)
		}
		return nil, errors.Join(ErrInvalidCatalog, err)
	}

	var file struct {
		Plans map[string]Entry `yaml:"plans"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}

	c := DefaultCatalog()
	for name, entry := range file.Plans {
		p, err := Parse(name)
		if err != nil {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("plan %q", name))
		}
		if entry.DailyQuota < 0 {
			return nil, errors.Join(ErrInvalidCatalog,
				fmt.Errorf("plan %q has negative daily quota: %d", name, entry.DailyQuota))
		}
		merged := c.entries[p]
		if entry.DailyQuota > 0 {
			merged.DailyQuota = entry.DailyQuota
		}
		if entry.PriceID != "" {
			merged.PriceID = entry.PriceID
		}
		c.entries[p] = merged
	}

	return c, nil
}

// DailyLimit returns the daily metered-operation quota for a plan.
// Unknown plans get the free tier limit to fail closed.
func (c *Catalog) DailyLimit(p Plan) int64 {
	if entry, ok := c.entries[p]; ok {
		return entry.DailyQuota
	}
	return c.entries[Free].DailyQuota
}

// PriceID returns the billing provider price ID for a plan, or empty if
// the plan is not purchasable.
func (c *Catalog) PriceID(p Plan) string {
	return c.entries[p].PriceID
}

// PlanForPrice resolves a provider price ID back to a plan. Returns
// ErrUnknownPlan when no plan maps to the price.
func (c *Catalog) PlanForPrice(priceID string) (Plan, error) {
	if priceID == "" {
		return "", ErrUnknownPlan
	}
	for p, entry := range c.entries {
		if entry.PriceID == priceID {
			return p, nil
		}
	}
	return "", ErrUnknownPlan
}
