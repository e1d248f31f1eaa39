package models

// Known verification type labels. Types are plain strings; anything else is
// accepted and handled by the custom templates.
const (
	TypeEmail           = "email"
	TypePhone           = "phone"
	TypeCreditCard      = "credit-card"
	TypeSSN             = "ssn"
	TypeAddress         = "address"
	TypeCustom          = "custom"
	TypeMedicalClaim    = "medical-claim"
	TypeDrugInfo        = "drug-info"
	TypeSymptomCheck    = "symptom-check"
	TypeTreatmentVerify = "treatment-verify"

	TypeUnknown = "unknown"
)

// TypeInfo describes a type for the front-end picker.
type TypeInfo struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Medical     bool   `json:"medical"`
}

// SupportedTypes lists the known types in display order.
var SupportedTypes = []TypeInfo{
	{Value: TypeMedicalClaim, Label: "Medical Claim", Description: "Verify medical claims and health information", Medical: true},
	{Value: TypeDrugInfo, Label: "Drug Information", Description: "Check drug safety and dosage information", Medical: true},
	{Value: TypeSymptomCheck, Label: "Symptom Check", Description: "Analyze symptoms and medical conditions", Medical: true},
	{Value: TypeTreatmentVerify, Label: "Treatment Verification", Description: "Verify treatment recommendations", Medical: true},
	{Value: TypeEmail, Label: "Email", Description: "Validate email address format and structure"},
	{Value: TypePhone, Label: "Phone", Description: "Validate phone number format and country code"},
	{Value: TypeCreditCard, Label: "Credit Card", Description: "Check card number patterns and Luhn checksum"},
	{Value: TypeSSN, Label: "SSN", Description: "Check Social Security Number format"},
	{Value: TypeAddress, Label: "Address", Description: "Check postal address components"},
	{Value: TypeCustom, Label: "Custom", Description: "General data quality analysis"},
}

var knownTypes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(SupportedTypes))
	for _, t := range SupportedTypes {
		m[t.Value] = struct{}{}
	}
	return m
}()

// IsKnownType reports whether t is one of the labels in SupportedTypes.
func IsKnownType(t string) bool {
	_, ok := knownTypes[t]
	return ok
}

// IsFormatType reports whether t checks the format of personal data. Such
// data is never forwarded to the search engine.
func IsFormatType(t string) bool {
	switch t {
	case TypeEmail, TypePhone, TypeCreditCard, TypeSSN, TypeAddress:
		return true
	}
	return false
}
