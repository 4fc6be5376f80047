package parsers

import (
	"github.com/username/policyfeed/src/parsers/broker1"
	"github.com/username/policyfeed/src/parsers/broker2"
)

// FieldMappingEntry pairs a canonical field with each broker's name for it.
type FieldMappingEntry struct {
	Canonical string `json:"canonical"`
	Broker1   string `json:"broker1"`
	Broker2   string `json:"broker2"`
	Numeric   bool   `json:"numeric"`
}

// FieldMapping documents how broker fields map onto CanonicalPolicy.
var FieldMapping = []FieldMappingEntry{
	{"id", "_id", "_id", false},
	{"policyNumber", broker1.FieldPolicyNumber, broker2.FieldPolicyNumber, false},
	{"insuredAmount", broker1.FieldInsuredAmount, broker2.FieldInsuredAmount, true},
	{"startDate", broker1.FieldStartDate, broker2.FieldStartDate, false},
	{"endDate", broker1.FieldEndDate, broker2.FieldEndDate, false},
	{"adminFee", broker1.FieldAdminFee, broker2.FieldAdminFee, true},
	{"businessDescription", broker1.FieldBusinessDescription, broker2.FieldBusinessDescription, false},
	{"businessEvent", broker1.FieldBusinessEvent, broker2.FieldBusinessEvent, false},
	{"clientType", broker1.FieldClientType, broker2.FieldClientType, false},
	{"clientRef", broker1.FieldClientRef, broker2.FieldClientRef, false},
	{"commission", broker1.FieldCommission, broker2.FieldCommission, true},
	{"effectiveDate", broker1.FieldEffectiveDate, broker2.FieldEffectiveDate, false},
	{"insurerPolicyNumber", broker1.FieldInsurerPolicyNumber, broker2.FieldInsurerPolicyNumber, false},
	{"taxAmount", broker1.FieldTaxAmount, broker2.FieldTaxAmount, true},
	{"premium", broker1.FieldPremium, broker2.FieldPremium, true},
	{"policyFee", broker1.FieldPolicyFee, broker2.FieldPolicyFee, true},
	{"policyType", broker1.FieldPolicyType, broker2.FieldPolicyType, false},
	{"insurer", broker1.FieldInsurer, broker2.FieldInsurer, false},
	{"product", broker1.FieldProduct, broker2.FieldProduct, false},
	{"renewalDate", broker1.FieldRenewalDate, broker2.FieldRenewalDate, false},
	{"rootPolicyRef", broker1.FieldRootPolicyRef, broker2.FieldRootPolicyRef, false},
	{"createdAt", "createdAt", "createdAt", false},
	{"updatedAt", "updatedAt", "updatedAt", false},
}
