package catalog

import (
	"testing"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "valid catalog",
			yaml: `
currency: EUR
services:
  - id: interior
    name: "3D-Innenvisualisierung"
    pricing:
      strategy: tiered
    pricing_tiers:
      - { quantity: 1, price: 399, label: "1 Ansicht" }
      - { quantity: 10, price: 199, label: ">=10 Ansichten" }
    description:
      - text: "Fotorealistisch"
        children:
          - "Hochauflösend"
      - "Professionelle Lichtsetzung"
delivery_rules:
  interior: { base_days: 5, additional_per_unit: 1 }
`,
			wantErr: false,
		},
		{
			name:    "invalid yaml",
			yaml:    "invalid: yaml: content:",
			wantErr: true,
		},
		{
			name: "description node must be string or mapping",
			yaml: `
services:
  - id: interior
    name: "x"
    description:
      - [a, b]
`,
			wantErr: true,
		},
	}

	parser := NewParser()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := parser.ParseFromString(tt.yaml)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if len(file.Services) != 1 {
				t.Fatalf("expected 1 service, got %d", len(file.Services))
			}

			svc := file.Services[0]
			if len(svc.PricingTiers) != 2 || svc.PricingTiers[1].QuantityThreshold != 10 {
				t.Errorf("unexpected tiers: %+v", svc.PricingTiers)
			}
			if len(svc.Description) != 2 {
				t.Fatalf("expected 2 bullets, got %d", len(svc.Description))
			}
			if svc.Description[0].IsLeaf() || svc.Description[0].Children[0].Text != "Hochauflösend" {
				t.Errorf("expected nested bullet, got %+v", svc.Description[0])
			}
			if !svc.Description[1].IsLeaf() {
				t.Errorf("expected leaf bullet, got %+v", svc.Description[1])
			}
			if rule := file.DeliveryRules["interior"]; rule.BaseDays != 5 || rule.AdditionalPerUnit != 1 {
				t.Errorf("unexpected delivery rule: %+v", rule)
			}
		})
	}
}
