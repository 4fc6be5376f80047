// Package broker2 maps documents from the second broker's collection onto the
// canonical policy shape.
package broker2

import (
	"fmt"

	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/utils"
)

// Source field names used by broker2.
const (
	FieldPolicyNumber        = "PolicyRef"
	FieldInsuredAmount       = "CoverageAmount"
	FieldStartDate           = "InitiationDate"
	FieldEndDate             = "ExpirationDate"
	FieldAdminFee            = "AdminCharges"
	FieldBusinessDescription = "CompanyDescription"
	FieldBusinessEvent       = "ContractEvent"
	FieldClientType          = "ConsumerCategory"
	FieldClientRef           = "ConsumerID"
	FieldCommission          = "BrokerFee"
	FieldEffectiveDate       = "ActivationDate"
	FieldInsurerPolicyNumber = "InsuranceCompanyRef"
	FieldTaxAmount           = "TaxAmount"
	FieldPremium             = "CoverageCost"
	FieldPolicyFee           = "ContractFee"
	FieldPolicyType          = "ContractCategory"
	FieldInsurer             = "Underwriter"
	FieldProduct             = "InsurancePlan"
	FieldRenewalDate         = "NextRenewalDate"
	FieldRootPolicyRef       = "PrimaryPolicyRef"
)

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) Source() models.Source {
	return models.SourceBroker2
}

func (n *Normalizer) Normalize(raw models.RawRecord) (models.CanonicalPolicy, error) {
	id := utils.SafeString(raw["_id"])
	if id == "" {
		return models.CanonicalPolicy{}, fmt.Errorf("broker2: %w", models.ErrMissingIdentifier)
	}

	policy := models.CanonicalPolicy{
		ID:                  id,
		Source:              models.SourceBroker2,
		PolicyNumber:        text(raw, FieldPolicyNumber),
		InsuredAmount:       amount(raw, FieldInsuredAmount),
		StartDate:           text(raw, FieldStartDate),
		EndDate:             text(raw, FieldEndDate),
		EffectiveDate:       text(raw, FieldEffectiveDate),
		RenewalDate:         text(raw, FieldRenewalDate),
		AdminFee:            amount(raw, FieldAdminFee),
		Commission:          amount(raw, FieldCommission),
		TaxAmount:           amount(raw, FieldTaxAmount),
		Premium:             amount(raw, FieldPremium),
		PolicyFee:           amount(raw, FieldPolicyFee),
		BusinessDescription: text(raw, FieldBusinessDescription),
		BusinessEvent:       text(raw, FieldBusinessEvent),
		ClientType:          text(raw, FieldClientType),
		ClientRef:           text(raw, FieldClientRef),
		InsurerPolicyNumber: text(raw, FieldInsurerPolicyNumber),
		PolicyType:          text(raw, FieldPolicyType),
		Insurer:             text(raw, FieldInsurer),
		Product:             text(raw, FieldProduct),
		RootPolicyRef:       text(raw, FieldRootPolicyRef),
	}
	if v, ok := raw["createdAt"]; ok && v != nil {
		s := utils.SafeString(v)
		policy.CreatedAt = &s
	}
	if v, ok := raw["updatedAt"]; ok && v != nil {
		s := utils.SafeString(v)
		policy.UpdatedAt = &s
	}
	return policy, nil
}

func text(raw models.RawRecord, field string) string {
	return utils.SafeString(raw[field])
}

func amount(raw models.RawRecord, field string) float64 {
	return utils.SafeParseNumber(raw[field])
}
