package catalog

// Package catalog provides service catalog parsing functionality.

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/exposeprofi/proposals/internal/description"
)

type File struct {
	Currency      string                  `yaml:"currency"`
	Services      []ServiceConfig         `yaml:"services"`
	DeliveryRules map[string]DeliveryRule `yaml:"delivery_rules"`
}

type ServiceConfig struct {
	ID           string             `yaml:"id"`
	Name         string             `yaml:"name"`
	DefaultPrice *float64           `yaml:"default_price"`
	PricingTiers []PricingTier      `yaml:"pricing_tiers"`
	Pricing      PricingRule        `yaml:"pricing"`
	Description  []description.Node `yaml:"description"`
}

type PricingTier struct {
	QuantityThreshold int     `yaml:"quantity" json:"quantityThreshold"`
	UnitPrice         float64 `yaml:"price" json:"unitPrice"`
	Label             string  `yaml:"label" json:"label"`
}

// PricingRule names the pricing shape of a service and carries its price table.
// Which fields are read depends on Strategy.
type PricingRule struct {
	Strategy  string               `yaml:"strategy" json:"strategy,omitempty"`
	Parameter string               `yaml:"parameter" json:"parameter,omitempty"`
	UnitPrice *float64             `yaml:"unit_price" json:"unitPrice,omitempty"`
	Matrix    map[string][]float64 `yaml:"matrix" json:"matrix,omitempty"`
	Options   map[string]float64   `yaml:"options" json:"options,omitempty"`
}

type DeliveryRule struct {
	BaseDays          int `yaml:"base_days" json:"baseDays"`
	AdditionalPerUnit int `yaml:"additional_per_unit" json:"additionalPerUnit"`
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(content []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	return &file, nil
}

func (p *Parser) ParseFromString(content string) (*File, error) {
	return p.Parse([]byte(content))
}
