package buildprompt

import "truecheck/internal/models"

// typeRules holds the bullet list appended after "Verification rules for <type>:".
// Lookup is by exact label; anything else gets the custom block.
var typeRules = map[string]string{
	models.TypeEmail: `
- Check if it follows standard email format (user@domain.com)
- Validate domain structure
- Check for common email patterns
- Identify potential issues like missing @ symbol, invalid characters, etc.`,

	models.TypePhone: `
- Check if it follows phone number format
- Validate country code if present
- Check for proper length and structure
- Identify common phone number patterns`,

	models.TypeCreditCard: `
- Check if it follows credit card number patterns
- Validate Luhn algorithm (checksum)
- Identify card type if possible
- Check for proper length and format`,

	models.TypeSSN: `
- Check if it follows SSN format (XXX-XX-XXXX)
- Validate it's not a test number (000, 666, 900-999)
- Check for proper length and structure`,

	models.TypeAddress: `
- Check if it contains street, city, state, zip components
- Validate address structure
- Check for proper formatting
- Identify missing or invalid components`,

	models.TypeMedicalClaim: `
- Check whether the claim is supported by peer-reviewed research
- Compare it against guidance from recognized health authorities
- Flag exaggerated, absolute or unproven statements
- Answer uncertain when the evidence is mixed or insufficient`,

	models.TypeDrugInfo: `
- Check the stated dosage against standard prescribing information
- Identify known contraindications and interactions
- Verify the drug name matches the stated indication
- Flag statements that could lead to unsafe use`,

	models.TypeSymptomCheck: `
- Assess whether the described symptoms are consistent with the named condition
- Note common alternative causes for the symptoms
- Identify symptoms that warrant urgent medical attention
- Do not provide a diagnosis`,

	models.TypeTreatmentVerify: `
- Compare the treatment against current clinical guidelines
- Check whether it is evidence-based for the stated condition
- Identify known risks and side effects
- Flag alternative or unproven treatments`,

	models.TypeCustom: `
- Analyze the data for general validity
- Check for common data quality issues
- Provide suggestions for improvement
- Identify any obvious errors or inconsistencies`,
}

// RuleType returns the label whose rule block Build uses for t.
func RuleType(t string) string {
	if _, ok := typeRules[t]; ok {
		return t
	}
	return models.TypeCustom
}

// Rules returns the rule block for t, falling back to custom.
func Rules(t string) string {
	return typeRules[RuleType(t)]
}
