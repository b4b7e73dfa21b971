package llm

import "strings"

// BuildExtractionPrompt composes the single-turn extraction prompt: the exact
// JSON shape we want, the email body, and parsing rules. The model is told to
// return JSON only; replies are still carved down to the JSON object (see
// ExtractJSONObject) since models wrap output in commentary.
func BuildExtractionPrompt(emailContent string) string {
	var b strings.Builder
	b.WriteString(`Extract order information from this email. Return ONLY valid JSON with this exact structure:

{
  "customer": {
    "name": "string",
    "address": "string"
  },
  "items": [
    {
      "product": "exact product name or code from email",
      "quantity": number,
      "confidence": number between 0-1
    }
  ],
  "delivery": {
    "date": "YYYY-MM-DD or 'not specified'",
    "address": "delivery address or same as customer"
  }
}

Email content:
`)
	b.WriteString(emailContent)
	b.WriteString(`

Rules:
- Extract exact product names/codes as written
- Parse quantities carefully (numbers before product names)
- If delivery address not specified, use customer address
- Set confidence based on clarity of information
- Return valid JSON only, no other text
`)
	return b.String()
}
