package bot

import (
	"fmt"
	"strings"

	"github.com/bitcoinrandomizer-ship-it/weight-tracker-bot/internal/service"
)

func formatWelcome(firstName string) string {
	return fmt.Sprintf(
		"Ciao %s! 👋\n\n"+
			"Sono il tuo assistente per il tracciamento del peso corporeo.\n\n"+
			"📊 **Comandi disponibili:**\n"+
			"• `/peso [valore]` - Registra il tuo peso (es: /peso 75.5)\n"+
			"• `/media` - Mostra la media della settimana precedente\n"+
			"• `/storico` - Mostra gli ultimi 7 pesi registrati\n"+
			"• `/notifica on|off` - Attiva o disattiva il promemoria giornaliero\n"+
			"• `/help` - Mostra questo messaggio di aiuto\n\n"+
			"Inizia registrando il tuo peso oggi!",
		firstName)
}

func formatRecordReply(res *service.RecordResult) string {
	verb := "registrato"
	if res.Updated {
		verb = "aggiornato"
	}
	return fmt.Sprintf("✅ Peso %s: **%g kg**\n📅 Data: %s", verb, res.WeightKg, res.Date)
}

func formatWeeklyReport(report *service.WeeklyReport) string {
	period := fmt.Sprintf("%s - %s",
		report.Week.Start.Format("02/01/2006"),
		report.Week.End.Format("02/01/2006"))

	if len(report.Entries) == 0 {
		return fmt.Sprintf(
			"📊 **Media settimanale**\n\nPeriodo: %s\n\n❌ Nessun peso registrato nella settimana precedente.",
			period)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 **Media settimanale**\n\nPeriodo: %s\n\n", period)
	fmt.Fprintf(&sb, "**Media: %.1f kg**\nRegistrazioni: %d\n\n**Dettaglio:**\n", report.Average, len(report.Entries))
	for _, entry := range report.Entries {
		fmt.Fprintf(&sb, "• %s: %.1f kg\n", entry.Date.Format("02/01"), entry.WeightKg)
	}
	return sb.String()
}

func formatHistoryReport(report *service.HistoryReport) string {
	if len(report.Entries) == 0 {
		return "📈 Non hai ancora registrato nessun peso."
	}

	var sb strings.Builder
	sb.WriteString("📈 **Storico pesi (ultimi 7)**\n\n")
	for _, entry := range report.Entries {
		date := entry.Date.Format("02/01/2006")
		if !entry.HasDelta {
			fmt.Fprintf(&sb, "📊 %s: **%.1f kg**\n", date, entry.WeightKg)
			continue
		}
		switch entry.Direction {
		case service.DirectionUp:
			fmt.Fprintf(&sb, "📈 %s: **%.1f kg** (+%.1f)\n", date, entry.WeightKg, entry.Delta)
		case service.DirectionDown:
			fmt.Fprintf(&sb, "📉 %s: **%.1f kg** (%.1f)\n", date, entry.WeightKg, entry.Delta)
		default:
			fmt.Fprintf(&sb, "➡️ %s: **%.1f kg** (=)\n", date, entry.WeightKg)
		}
	}

	if report.HasSummary {
		fmt.Fprintf(&sb, "\n📊 Media: **%.1f kg**", report.Average)
		switch report.Trend.Direction {
		case service.DirectionDown:
			fmt.Fprintf(&sb, "\n📉 Trend: -%.1f kg", report.Trend.Amount)
		case service.DirectionUp:
			fmt.Fprintf(&sb, "\n📈 Trend: +%.1f kg", report.Trend.Amount)
		}
	}
	return sb.String()
}
