package core

import (
	"fmt"
	"strings"
)

// AdviceSystemPrompt frames every advice request.
const AdviceSystemPrompt = "Sei un consulente finanziario esperto. Fornisci consigli pratici e personalizzati in italiano."

// Messages returned to the user when no advice could be generated.
const (
	AdviceNotConfigured = "Servizio di consigli AI non configurato. Contatta l'amministratore."
	AdviceFallback      = "Mi dispiace, non sono riuscito a generare consigli personalizzati. Riprova più tardi."
)

type AdviceInput struct {
	Stats   Stats
	Budgets []Budget
	Goals   []Goal
	// Context is an optional free-text request from the user.
	Context string
}

// BuildAdvicePrompt renders the user's financial picture as the prompt sent
// to the language model.
func BuildAdvicePrompt(in AdviceInput) string {
	var b strings.Builder

	b.WriteString("Analizza la situazione finanziaria dell'utente e fornisci 3-5 consigli pratici in italiano.\n\n")
	b.WriteString("Dati finanziari:\n")
	fmt.Fprintf(&b, "- Entrate totali: €%s\n", in.Stats.TotalIncome)
	fmt.Fprintf(&b, "- Spese totali: €%s\n", in.Stats.TotalExpenses)
	fmt.Fprintf(&b, "- Bilancio: €%s\n", in.Stats.Balance)
	fmt.Fprintf(&b, "- Numero di transazioni: %d\n", in.Stats.TransactionCount)
	fmt.Fprintf(&b, "- Budget attivi: %d\n", len(in.Budgets))
	fmt.Fprintf(&b, "- Obiettivi di risparmio: %d\n", len(in.Goals))

	if len(in.Budgets) > 0 {
		b.WriteString("\nBudget:\n")
		for _, bg := range in.Budgets {
			fmt.Fprintf(&b, "- %s: %s€ / %s€ (%.1f%%)\n", bg.Category, bg.Spent, bg.Limit, bg.Spent.Percent(bg.Limit))
		}
	}

	if len(in.Goals) > 0 {
		b.WriteString("\nObiettivi:\n")
		for _, g := range in.Goals {
			fmt.Fprintf(&b, "- %s: %s€ / %s€ (%.1f%%)\n", g.Name, g.CurrentAmount, g.TargetAmount, g.CurrentAmount.Percent(g.TargetAmount))
		}
	}

	if ctx := strings.TrimSpace(in.Context); ctx != "" {
		fmt.Fprintf(&b, "\nRichiesta specifica: %s\n", ctx)
	}

	b.WriteString("\nFornisci consigli pratici e personalizzati per migliorare la gestione finanziaria.")
	return b.String()
}
