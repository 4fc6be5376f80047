// Package broker1 maps documents from the first broker's collection onto the
// canonical policy shape.
package broker1

import (
	"fmt"

	"github.com/username/policyfeed/src/models"
	"github.com/username/policyfeed/src/utils"
)

// Source field names used by broker1.
const (
	FieldPolicyNumber        = "PolicyNumber"
	FieldInsuredAmount       = "InsuredAmount"
	FieldStartDate           = "StartDate"
	FieldEndDate             = "EndDate"
	FieldAdminFee            = "AdminFee"
	FieldBusinessDescription = "BusinessDescription"
	FieldBusinessEvent       = "BusinessEvent"
	FieldClientType          = "ClientType"
	FieldClientRef           = "ClientRef"
	FieldCommission          = "Commission"
	FieldEffectiveDate       = "EffectiveDate"
	FieldInsurerPolicyNumber = "InsurerPolicyNumber"
	FieldTaxAmount           = "IPTAmount"
	FieldPremium             = "Premium"
	FieldPolicyFee           = "PolicyFee"
	FieldPolicyType          = "PolicyType"
	FieldInsurer             = "Insurer"
	FieldProduct             = "Product"
	FieldRenewalDate         = "RenewalDate"
	FieldRootPolicyRef       = "RootPolicyRef"
)

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) Source() models.Source {
	return models.SourceBroker1
}

func (n *Normalizer) Normalize(raw models.RawRecord) (models.CanonicalPolicy, error) {
	id := utils.SafeString(raw["_id"])
	if id == "" {
		return models.CanonicalPolicy{}, fmt.Errorf("broker1: %w", models.ErrMissingIdentifier)
	}

	str := func(field string) string { return utils.SafeString(raw[field]) }
	num := func(field string) float64 { return utils.SafeParseNumber(raw[field]) }

	return models.CanonicalPolicy{
		ID:                  id,
		Source:              models.SourceBroker1,
		PolicyNumber:        str(FieldPolicyNumber),
		InsuredAmount:       num(FieldInsuredAmount),
		StartDate:           str(FieldStartDate),
		EndDate:             str(FieldEndDate),
		EffectiveDate:       str(FieldEffectiveDate),
		RenewalDate:         str(FieldRenewalDate),
		AdminFee:            num(FieldAdminFee),
		Commission:          num(FieldCommission),
		TaxAmount:           num(FieldTaxAmount),
		Premium:             num(FieldPremium),
		PolicyFee:           num(FieldPolicyFee),
		BusinessDescription: str(FieldBusinessDescription),
		BusinessEvent:       str(FieldBusinessEvent),
		ClientType:          str(FieldClientType),
		ClientRef:           str(FieldClientRef),
		InsurerPolicyNumber: str(FieldInsurerPolicyNumber),
		PolicyType:          str(FieldPolicyType),
		Insurer:             str(FieldInsurer),
		Product:             str(FieldProduct),
		RootPolicyRef:       str(FieldRootPolicyRef),
		CreatedAt:           optionalString(raw, "createdAt"),
		UpdatedAt:           optionalString(raw, "updatedAt"),
	}, nil
}

func optionalString(raw models.RawRecord, field string) *string {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil
	}
	s := utils.SafeString(v)
	return &s
}
