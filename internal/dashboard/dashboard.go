// Package dashboard holds the process-lifetime view: the defaults until the
// single snapshot load succeeds, then the built view model.
package dashboard

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"

	"SectorSentinel/internal/catalog"
	"SectorSentinel/internal/collector"
	"SectorSentinel/internal/logger"
	"SectorSentinel/internal/model"
	"SectorSentinel/internal/notifier"
	"SectorSentinel/internal/viewmodel"
	"SectorSentinel/internal/vote"
)

// Dashboard is safe for concurrent readers. Load runs at most once.
type Dashboard struct {
	source     collector.Source
	anchor     string
	eventLabel string
	votes      *vote.Tally

	once    sync.Once
	loadErr error

	mu     sync.RWMutex
	vm     model.ViewModel
	loaded bool
}

// New creates a dashboard showing defaults until Load succeeds.
func New(src collector.Source, anchor, eventLabel string) *Dashboard {
	return &Dashboard{
		source:     src,
		anchor:     anchor,
		eventLabel: eventLabel,
		votes:      vote.NewTally(),
		vm:         viewmodel.Default(anchor),
	}
}

// Load fetches the snapshot and builds the view. Only the first call does
// any work; later calls return the first call's result. On failure the
// defaults stay in place.
func (d *Dashboard) Load(ctx context.Context) error {
	d.once.Do(func() {
		log := logger.Component("dashboard").WithField("source", d.source.Name())
		p, err := d.source.Load(ctx)
		if err != nil {
			log.WithError(err).Error("load snapshot failed, keeping defaults")
			d.loadErr = err
			return
		}
		vm := viewmodel.Build(p, d.anchor)
		d.mu.Lock()
		d.vm = vm
		d.loaded = true
		d.mu.Unlock()
		log.WithField("history_rows", len(p.History)).Info("snapshot loaded")
	})
	return d.loadErr
}

// View returns the current view model.
func (d *Dashboard) View() model.ViewModel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.vm
}

// Loaded reports whether a snapshot replaced the defaults.
func (d *Dashboard) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// Report renders the overview.
func (d *Dashboard) Report() string {
	vm := d.View()
	return notifier.FormatOverview(&vm, d.eventLabel)
}

// HandleCommand processes a chat command and returns a reply.
func (d *Dashboard) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText()
	}
	name := fields[0]
	if i := strings.IndexByte(name, '@'); i > 0 {
		name = name[:i]
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch name {
	case "/start", "/sectors", "セクター一覧":
		return d.Report()
	case "/sector", "銘柄一覧":
		id, ok := catalog.ParseSectorID(arg)
		if !ok {
			return unknownSector(arg)
		}
		vm := d.View()
		snap, _ := vm.Sector(id)
		return notifier.FormatSector(snap)
	case "/vote", "投票":
		id, ok := catalog.ParseSectorID(arg)
		if !ok {
			return unknownSector(arg)
		}
		n, err := d.votes.Cast(id)
		if err != nil {
			return unknownSector(arg)
		}
		sec, _ := catalog.Lookup(id)
		return fmt.Sprintf("🗳 %s に投票しました (計 %d 票)", html.EscapeString(sec.Name), n)
	case "/votes", "投票状況":
		return notifier.FormatVotes(d.votes)
	default:
		return helpText()
	}
}

func unknownSector(arg string) string {
	ids := make([]string, 0, 6)
	for _, s := range catalog.Sectors() {
		ids = append(ids, string(s.ID))
	}
	return fmt.Sprintf("不明なセクター: %q\n指定可能: %s", html.EscapeString(arg), strings.Join(ids, ", "))
}

func helpText() string {
	return "使えるコマンド:\n• /sectors セクター一覧\n• /sector &lt;id&gt; 銘柄一覧\n• /vote &lt;id&gt; 投票\n• /votes 投票状況"
}
