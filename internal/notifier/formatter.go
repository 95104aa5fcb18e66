package notifier

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"SectorSentinel/internal/catalog"
	"SectorSentinel/internal/model"
	"SectorSentinel/internal/vote"
)

// PendingLabel is shown wherever a value has not been published yet.
const PendingLabel = "データ更新待ち"

var sectorIcons = map[model.SectorID]string{
	model.SectorAIRobot: "🤖",
	model.SectorQuantum: "⚛️",
	model.SectorSemi:    "📱",
	model.SectorBio:     "💊",
	model.SectorFusion:  "☀️",
	model.SectorSpace:   "🚀",
}

// FormatOverview renders all sectors and the index. eventLabel names the
// news event the since-event column is measured from.
func FormatOverview(vm *model.ViewModel, eventLabel string) string {
	var b strings.Builder

	b.WriteString("📊 <b>国家戦略技術：市場パフォーマンス</b>\n")
	if vm.LastUpdated != nil {
		b.WriteString(fmt.Sprintf("更新: %s\n\n", html.EscapeString(*vm.LastUpdated)))
	} else {
		b.WriteString(fmt.Sprintf("更新: %s\n\n", PendingLabel))
	}

	label := html.EscapeString(eventLabel)
	for _, s := range vm.Sectors {
		since := PendingLabel
		if c, ok := vm.SectorChange(s.Sector.ID); ok {
			since = FormatPercent(c)
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b>: %s | %s以降 %s\n",
			sectorIcons[s.Sector.ID], html.EscapeString(s.Sector.Name),
			FormatPercent(s.AggregateChangePercent), label, since))
	}

	b.WriteString("\n📈 <b>日経平均</b>: ")
	if vm.IndexPrice != nil {
		b.WriteString(FormatYen(*vm.IndexPrice))
	} else {
		b.WriteString(PendingLabel)
	}
	if vm.IndexChange != nil {
		b.WriteString(fmt.Sprintf(" | %s以降 %s", label, FormatPercent(*vm.IndexChange)))
	}
	b.WriteString(fmt.Sprintf("\n\n※基準日 %s", html.EscapeString(vm.EventDate)))
	return b.String()
}

// FormatSector renders one sector's detail with both tiers.
func FormatSector(s model.SectorSnapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s 銘柄一覧</b>\n", sectorIcons[s.Sector.ID], html.EscapeString(s.Sector.Name)))
	b.WriteString(fmt.Sprintf("平均騰落率: %s\n\n", FormatPercent(s.AggregateChangePercent)))

	b.WriteString("<b>大型株 (Large Cap)</b>\n")
	writeTier(&b, s.LargeCap())
	b.WriteString("\n<b>中小型株 (Small/Mid Cap)</b>\n")
	writeTier(&b, s.SmallMidCap())
	return b.String()
}

func writeTier(b *strings.Builder, tier []model.PricePoint) {
	if len(tier) == 0 {
		b.WriteString("  (なし)\n")
		return
	}
	for _, p := range tier {
		b.WriteString("• ")
		if p.Ticker == "" {
			b.WriteString("(不明な銘柄)")
		} else {
			b.WriteString(fmt.Sprintf(`<a href="%s">%s</a> (%s)`,
				catalog.QuoteURL(p.Ticker), html.EscapeString(p.Name), html.EscapeString(p.Ticker)))
		}
		if p.Pending() {
			b.WriteString(": " + PendingLabel + "\n")
			continue
		}
		b.WriteString(fmt.Sprintf(": %s %s\n", FormatPercent(*p.Change), FormatYen(*p.Price)))
	}
}

// FormatVotes renders the ephemeral vote tally with the current leader.
func FormatVotes(t *vote.Tally) string {
	var b strings.Builder
	b.WriteString("🗳 <b>投票状況</b>\n\n")
	for _, c := range t.Counts() {
		b.WriteString(fmt.Sprintf("%s %s: %d\n", sectorIcons[c.Sector.ID], html.EscapeString(c.Sector.Name), c.Votes))
	}
	if lead, ok := t.Leader(); ok {
		b.WriteString(fmt.Sprintf("\n👑 トップ: %s %s (%d 票)\n",
			sectorIcons[lead.Sector.ID], html.EscapeString(lead.Sector.Name), lead.Votes))
	} else {
		b.WriteString("\nまだ投票はありません\n")
	}
	return b.String()
}

// FormatPercent rounds to two decimals and signs positive values.
func FormatPercent(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		return "0.00%"
	}
	if r > 0 {
		return fmt.Sprintf("+%.2f%%", r)
	}
	return fmt.Sprintf("%.2f%%", r)
}

// FormatYen renders a price with thousands separators and at most two decimals.
func FormatYen(v float64) string {
	return "¥" + humanize.CommafWithDigits(v, 2)
}
