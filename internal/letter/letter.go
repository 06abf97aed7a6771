// Package letter renders the templated objection letter (Widerspruch) from
// the analysis output. Rendering is deterministic: the caller supplies the
// date, and the flagged items appear in their bill order.
package letter

import (
	"fmt"
	"strings"
	"time"

	"nebenscan/internal/domain"
)

// Language selects the letter template.
type Language string

const (
	LanguageGerman  Language = "de"
	LanguageEnglish Language = "en"
)

// Data carries everything the letter templates need.
type Data struct {
	LandlordName    string
	TenantName      string
	TenantAddress   string
	BillingPeriod   string
	Errors          []domain.LineItem // flagged items only, bill order
	EstimatedRefund float64
	Date            time.Time
}

// Generate renders the objection letter in the requested language.
func Generate(lang Language, data Data) (string, error) {
	switch lang {
	case LanguageGerman:
		return generateGerman(data), nil
	case LanguageEnglish:
		return generateEnglish(data), nil
	default:
		return "", fmt.Errorf("unsupported letter language: %s", lang)
	}
}

func splitErrors(items []domain.LineItem) (formal, outliers []domain.LineItem) {
	for _, item := range items {
		switch item.ErrorType {
		case domain.ErrorTypeFormal:
			formal = append(formal, item)
		case domain.ErrorTypeOutlier:
			outliers = append(outliers, item)
		}
	}
	return formal, outliers
}

func details(item domain.LineItem) string {
	if item.ErrorDetails == nil {
		return ""
	}
	return *item.ErrorDetails
}

func generateGerman(data Data) string {
	formal, outliers := splitErrors(data.Errors)

	var b strings.Builder
	fmt.Fprintf(&b, "Widerspruch gegen die Betriebskostenabrechnung\n\n\n")
	fmt.Fprintf(&b, "%s\n%s\n\n\n%s\n\n\n%s\n\n\n", data.TenantName, data.TenantAddress, data.LandlordName, data.Date.Format("02.01.2006"))
	fmt.Fprintf(&b, "Betreff: Widerspruch gegen die Betriebskostenabrechnung für den Zeitraum %s\n\n\n", data.BillingPeriod)
	b.WriteString("Sehr geehrte Damen und Herren,\n\n")
	fmt.Fprintf(&b, "hiermit lege ich Widerspruch gegen die mir zugegangene Betriebskostenabrechnung für den Zeitraum %s ein.\n\n", data.BillingPeriod)

	if len(formal) > 0 {
		b.WriteString("Die Abrechnung enthält folgende nicht umlagefähige Kosten (§ 2 BetrKV):\n\n")
		for i, item := range formal {
			fmt.Fprintf(&b, "%d. %s: €%.2f\n   Begründung: %s\n\n", i+1, item.Name, item.TotalCost, details(item))
		}
	}

	if len(outliers) > 0 {
		b.WriteString("\nZusätzlich weise ich auf folgende auffällige Kosten hin, die im Vergleich zu ortsüblichen Durchschnittskosten unverhältnismäßig hoch erscheinen:\n\n")
		for i, item := range outliers {
			fmt.Fprintf(&b, "%d. %s: €%.2f\n   Anmerkung: %s\n\n", i+1, item.Name, item.TotalCost, details(item))
		}
	}

	b.WriteString("Ich bitte um:\n")
	b.WriteString("1. Überprüfung der genannten Positionen\n")
	b.WriteString("2. Berichtigung der Abrechnung unter Ausschluss der nicht umlagefähigen Kosten\n")
	fmt.Fprintf(&b, "3. Rückerstattung der zu viel gezahlten Kosten in Höhe von ca. €%.2f\n", data.EstimatedRefund)
	b.WriteString("4. Zusendung einer korrigierten Abrechnung innerhalb von 4 Wochen\n\n")
	b.WriteString("Sollten Sie meinem Widerspruch nicht nachkommen, behalte ich mir vor, rechtliche Schritte einzuleiten und die Abrechnung durch einen Sachverständigen prüfen zu lassen.\n\n")
	b.WriteString("Bitte bestätigen Sie den Erhalt dieses Schreibens.\n\n")
	fmt.Fprintf(&b, "Mit freundlichen Grüßen\n\n\n%s\n\n\n---\n", data.TenantName)
	b.WriteString("Hinweis: Dieser Entwurf wurde mit Hilfe einer automatisierten Analyse erstellt und dient als Grundlage für Ihre Überlegungen. Es handelt sich nicht um Rechtsberatung. Für verbindliche Aussagen konsultieren Sie bitte einen Rechtsanwalt oder Mieterverein.\n")

	return b.String()
}

func generateEnglish(data Data) string {
	formal, outliers := splitErrors(data.Errors)

	var b strings.Builder
	b.WriteString("OBJECTION TO UTILITY BILL CHARGES\n\n\n")
	fmt.Fprintf(&b, "%s\n%s\n\n\n%s\n\n\n%s\n\n\n", data.TenantName, data.TenantAddress, data.LandlordName, data.Date.Format("1/2/2006"))
	fmt.Fprintf(&b, "Subject: Objection to Utility Bill (Betriebskostenabrechnung) for Period %s\n\n\n", data.BillingPeriod)
	b.WriteString("Dear Sir/Madam,\n\n")
	fmt.Fprintf(&b, "I hereby formally object to the utility bill I received for the period %s.\n\n", data.BillingPeriod)

	if len(formal) > 0 {
		b.WriteString("The bill contains the following non-allocable charges (§ 2 BetrKV):\n\n")
		for i, item := range formal {
			fmt.Fprintf(&b, "%d. %s: €%.2f\n   Reason: %s\n\n", i+1, item.Name, item.TotalCost, details(item))
		}
	}

	if len(outliers) > 0 {
		b.WriteString("\nAdditionally, I would like to point out the following unusually high costs:\n\n")
		for i, item := range outliers {
			fmt.Fprintf(&b, "%d. %s: €%.2f\n   Note: %s\n\n", i+1, item.Name, item.TotalCost, details(item))
		}
	}

	b.WriteString("I kindly request:\n")
	b.WriteString("1. Review of the mentioned items\n")
	b.WriteString("2. Correction of the bill excluding non-allocable charges\n")
	fmt.Fprintf(&b, "3. Refund of overpaid costs amounting to approximately €%.2f\n", data.EstimatedRefund)
	b.WriteString("4. Submission of a corrected bill within 4 weeks\n\n")
	b.WriteString("Should you not comply with this objection, I reserve the right to take legal action and have the bill reviewed by an expert.\n\n")
	b.WriteString("Please confirm receipt of this letter.\n\n")
	fmt.Fprintf(&b, "Sincerely,\n\n\n%s\n\n\n---\n", data.TenantName)
	b.WriteString("Disclaimer: This draft was created using automated analysis and serves as a basis for your consideration. It does not constitute legal advice. For binding statements, please consult a lawyer or tenant association.\n")

	return b.String()
}
