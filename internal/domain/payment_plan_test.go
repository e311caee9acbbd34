package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentPlan_Validate(t *testing.T) {
	tests := []struct {
		name    string
		plan    PaymentPlan
		wantErr bool
		errMsg  string
	}{
		{
			name: "deposit and balance",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Label: "deposit", Type: PaymentTermTypePercent, Value: decimal.NewFromInt(30), Priority: 1},
				{Label: "balance", Type: PaymentTermTypeRemainder, Priority: 2, DueDays: 30},
			}},
			wantErr: false,
		},
		{
			name: "fixed, percent and remainder",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Label: "booking", Type: PaymentTermTypeFixed, Value: decimal.NewFromInt(500), Priority: 1},
				{Label: "progress", Type: PaymentTermTypePercent, Value: decimal.NewFromInt(50), Priority: 2, DueDays: 15},
				{Label: "balance", Type: PaymentTermTypeRemainder, Priority: 3, DueDays: 60},
			}},
			wantErr: false,
		},
		{
			name:    "empty plan",
			plan:    PaymentPlan{},
			wantErr: true,
			errMsg:  "at least one term",
		},
		{
			name: "no remainder",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Label: "deposit", Type: PaymentTermTypePercent, Value: decimal.NewFromInt(30)},
			}},
			wantErr: true,
			errMsg:  "exactly one REMAINDER term",
		},
		{
			name: "two remainders",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Label: "first", Type: PaymentTermTypeRemainder},
				{Label: "second", Type: PaymentTermTypeRemainder},
			}},
			wantErr: true,
			errMsg:  "exactly one REMAINDER term",
		},
		{
			name: "missing label",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Type: PaymentTermTypeRemainder},
			}},
			wantErr: true,
			errMsg:  "label cannot be empty",
		},
		{
			name: "zero fixed amount",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Label: "booking", Type: PaymentTermTypeFixed, Value: decimal.Zero},
				{Label: "balance", Type: PaymentTermTypeRemainder},
			}},
			wantErr: true,
			errMsg:  "FIXED payment term value must be positive",
		},
		{
			name: "percent above 100",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Label: "deposit", Type: PaymentTermTypePercent, Value: decimal.NewFromInt(120)},
				{Label: "balance", Type: PaymentTermTypeRemainder},
			}},
			wantErr: true,
			errMsg:  "above 0 and at most 100",
		},
		{
			name: "zero percent",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Label: "deposit", Type: PaymentTermTypePercent, Value: decimal.Zero},
				{Label: "balance", Type: PaymentTermTypeRemainder},
			}},
			wantErr: true,
			errMsg:  "above 0 and at most 100",
		},
		{
			name: "whole total in percent terms",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Label: "deposit", Type: PaymentTermTypePercent, Value: decimal.NewFromInt(30)},
				{Label: "delivery", Type: PaymentTermTypePercent, Value: decimal.NewFromInt(70)},
				{Label: "balance", Type: PaymentTermTypeRemainder},
			}},
			wantErr: false,
		},
		{
			name: "percent terms above 100 in total",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Label: "deposit", Type: PaymentTermTypePercent, Value: decimal.NewFromInt(60)},
				{Label: "progress", Type: PaymentTermTypePercent, Value: decimal.NewFromInt(60)},
				{Label: "balance", Type: PaymentTermTypeRemainder},
			}},
			wantErr: true,
			errMsg:  "cannot exceed 100 in total",
		},
		{
			name: "due before acceptance",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Label: "balance", Type: PaymentTermTypeRemainder, DueDays: -1},
			}},
			wantErr: true,
			errMsg:  "due before acceptance",
		},
		{
			name: "unknown type",
			plan: PaymentPlan{Terms: []PaymentTerm{
				{Label: "deposit", Type: PaymentTermType("HALF")},
				{Label: "balance", Type: PaymentTermTypeRemainder},
			}},
			wantErr: true,
			errMsg:  "FIXED, PERCENT, or REMAINDER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
