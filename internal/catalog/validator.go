package catalog

// Package catalog provides catalog validation.

import (
	"fmt"
	"regexp"
	"strings"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

var serviceIDRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,62}[a-z0-9])?$`)

// IsValidServiceID validates a service id (lowercase letters, digits and inner hyphens).
func IsValidServiceID(id string) bool {
	return serviceIDRegex.MatchString(id)
}

func (v *Validator) Validate(file *File) error {
	if file == nil {
		return fmt.Errorf("catalog is required")
	}

	if file.Currency != "" && file.Currency != "EUR" {
		return fmt.Errorf("only EUR currency is supported")
	}

	if len(file.Services) == 0 {
		return fmt.Errorf("at least one service is required")
	}

	ids := make(map[string]bool)
	for i, service := range file.Services {
		if err := v.validateService(&service); err != nil {
			return fmt.Errorf("service %d validation failed: %w", i, err)
		}

		if ids[service.ID] {
			return fmt.Errorf("duplicate service id: %s", service.ID)
		}
		ids[service.ID] = true
	}

	for id, rule := range file.DeliveryRules {
		if !ids[id] {
			return fmt.Errorf("delivery rule for unknown service: %s", id)
		}
		if rule.BaseDays < 0 || rule.AdditionalPerUnit < 0 {
			return fmt.Errorf("delivery rule for %s must not be negative", id)
		}
	}

	return nil
}

func (v *Validator) validateService(service *ServiceConfig) error {
	if !IsValidServiceID(strings.TrimSpace(service.ID)) {
		return fmt.Errorf("service id %q is invalid", service.ID)
	}

	if strings.TrimSpace(service.Name) == "" {
		return fmt.Errorf("service name is required")
	}

	if service.DefaultPrice != nil && *service.DefaultPrice < 0 {
		return fmt.Errorf("default price must be zero or positive")
	}

	if err := v.validateTiers(service.PricingTiers); err != nil {
		return err
	}

	return v.validatePricing(&service.Pricing)
}

func (v *Validator) validateTiers(tiers []PricingTier) error {
	previous := 0
	for i, tier := range tiers {
		if tier.QuantityThreshold < 1 {
			return fmt.Errorf("pricing tier %d threshold must be at least 1", i)
		}
		if tier.QuantityThreshold <= previous {
			return fmt.Errorf("pricing tiers must be ordered ascending by quantity")
		}
		if tier.UnitPrice < 0 {
			return fmt.Errorf("pricing tier %d price must be zero or positive", i)
		}
		previous = tier.QuantityThreshold
	}
	return nil
}

func (v *Validator) validatePricing(rule *PricingRule) error {
	if rule.UnitPrice != nil && *rule.UnitPrice < 0 {
		return fmt.Errorf("unit price must be zero or positive")
	}

	for key, row := range rule.Matrix {
		if len(row) == 0 {
			return fmt.Errorf("matrix row %q must not be empty", key)
		}
		for _, price := range row {
			if price < 0 {
				return fmt.Errorf("matrix row %q contains a negative price", key)
			}
		}
	}

	for key, price := range rule.Options {
		if price < 0 {
			return fmt.Errorf("option %q has a negative price", key)
		}
	}

	if (len(rule.Matrix) > 0 || len(rule.Options) > 0) && strings.TrimSpace(rule.Parameter) == "" {
		return fmt.Errorf("pricing parameter is required for keyed prices")
	}

	return nil
}
