package llm

import (
	"fmt"
	"strings"
)

// BuildExtractionPrompt composes the structured-extraction instructions for
// one OCR transcript: the record field list, the target envelope shape, and
// the hard rules (no fabricated "Other(s)" person, no computed totals,
// exactly one agency key).
func BuildExtractionPrompt(fields []string, transcript string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	keysStr := strings.Join(quoted, ", ")

	var b strings.Builder
	b.WriteString("You are an expert in extracting structured data from OCR outputs.\n\n")
	b.WriteString("The following OCR text contains records of multiple people. A person may have multiple entries ")
	b.WriteString("(e.g., for different pay periods or types), and the same name may appear multiple times. ")
	b.WriteString("The document may also contain a summary or total section at the end.\n\n")
	b.WriteString("Your goal is to extract the following:\n\n")

	b.WriteString("1. \"records\" — a list of individual entries:\n")
	b.WriteString("- Each line or logical block represents one record for a person.\n")
	b.WriteString("- If the same person appears multiple times, include each entry separately.\n")
	b.WriteString("- If multiple people appear, extract records for all of them.\n")
	b.WriteString("- Extract exactly the following fields for each record:\n")
	b.WriteString("  [" + keysStr + "]\n")
	b.WriteString("- If a field is missing, set it to an empty string.\n")
	b.WriteString("- Each record should be a dictionary with all the keys in the list, even if some values are empty.\n\n")

	b.WriteString("2. \"Agency Name\" — a single dictionary:\n")
	b.WriteString("- This represents document-level summary or remittance totals.\n")
	b.WriteString("- Extract relevant summary-level values such as Total Gross Pay, Net Pay, ")
	b.WriteString("Fee (the sum of all types of negative values subtracted from the total gross pay), ")
	b.WriteString("Total Hours, Final Totals, and Remittance amounts.\n")
	b.WriteString("- Do not structure this like a person record.\n")
	b.WriteString("- There should only be one agency per OCR document, so extract the agency name as the key ")
	b.WriteString("and a dictionary of relevant values as its value.\n")
	b.WriteString("- Do not use a key called \"Others\". Always use the actual agency name as the dictionary key.\n\n")

	b.WriteString("3. Do not create a person record where the person name is \"Other\" or \"Others\". ")
	b.WriteString("Only valid names should be accepted.\n")
	b.WriteString("4. You will not calculate any totals — return values exactly as found in the text. ")
	b.WriteString("A field called \"Manual Total Gross Pays\" will be added later in code.\n\n")

	b.WriteString("Return a valid JSON object with the following structure:\n\n")
	b.WriteString("{\n")
	b.WriteString("  \"records\": [\n")
	b.WriteString("    { \"Agency\": \"...\", \"Person Name\": \"...\", \"...\": \"...\", \"PP Reference\": \"...\" }\n")
	b.WriteString("  ],\n")
	b.WriteString("  \"Agency Name\": {\n")
	b.WriteString("    \"<agency_name>\": {\n")
	b.WriteString("      \"Total Gross Pay\": \"...\",\n")
	b.WriteString("      \"VAT Rate\": \"...\",\n")
	b.WriteString("      \"Fee\": \"...\",\n")
	b.WriteString("      \"Total Amount Paid\": \"...\"\n")
	b.WriteString("    }\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")

	b.WriteString("\nHere is the OCR text:\n")
	b.WriteString(transcript)
	return b.String()
}
