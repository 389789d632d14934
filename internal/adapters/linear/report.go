package linear

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/ui/style"
	"github.com/muesli/termenv"
)

const completedLayout = "2006-01-02 15:04:05 MST"

// WriteReport writes the human readable form of result to w, styled with out's profile.
// Sections appear in visiting order: the route, attention systems without coordinates,
// then current systems.
func WriteReport(w io.Writer, out *termenv.Output, result *domain.RefreshResult) error {
	var b strings.Builder

	heading := func(s string) string {
		return out.String(s).Bold().Foreground(out.Color(string(style.Orange))).String()
	}
	faint := func(s string) string {
		return out.String(s).Faint().String()
	}

	if result.Interrupted {
		fmt.Fprintf(&b, "%s refresh interrupted, unvisited systems use cached data\n\n",
			out.String(style.Warning).Foreground(out.Color(string(style.Yellow))))
	}

	if len(result.Route) == 0 {
		fmt.Fprintf(&b, "%s\n", heading("Route: nothing to visit"))
	} else {
		fmt.Fprintf(&b, "%s\n", heading(fmt.Sprintf("Route (%d stops, %.2f ly)", len(result.Route), result.RouteDistance)))
		for i, name := range result.Route {
			if i == 0 {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, name)
				continue
			}
			hop := result.Coordinates[result.Route[i-1]].Distance(result.Coordinates[name])
			fmt.Fprintf(&b, "  %d. %s  %s\n", i+1, name, faint(fmt.Sprintf("+%.2f ly", hop)))
		}
	}

	if len(result.Missing) > 0 {
		missing := slices.Clone(result.Missing)
		slices.Sort(missing)
		fmt.Fprintf(&b, "\n%s\n", heading(fmt.Sprintf("Missing coordinates (%d)", len(missing))))
		for _, name := range missing {
			class, _ := result.ClassOf(name)
			fmt.Fprintf(&b, "  - %s (%s)\n", name, classString(out, class))
		}
	}

	current := slices.Clone(result.Current)
	slices.Sort(current)
	fmt.Fprintf(&b, "\n%s\n", heading(fmt.Sprintf("Current (%d)", len(current))))
	for _, name := range current {
		fmt.Fprintf(&b, "  - %s\n", name)
	}

	c := result.Counters
	companion := "not running"
	if result.CompanionRunning {
		companion = "running"
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d cached, %d from hint, %d fetched, %d failed\n", faint("Coordinates"),
		c.CoordinatesCached, c.CoordinatesFromHint, c.CoordinatesFetched, c.CoordinateFailures)
	fmt.Fprintf(&b, "%s   %d fetched, %d skipped, %d failed\n", faint("Freshness"),
		c.FreshnessFetched, c.FreshnessSkipped, c.FreshnessFailures)
	fmt.Fprintf(&b, "%s   %s\n", faint("Companion"), companion)
	fmt.Fprintf(&b, "%s   %s\n", faint("Threshold"), result.Threshold)
	fmt.Fprintf(&b, "%s   %s\n", faint("Completed"), result.CompletedAt.Format(completedLayout))

	if result.PersistErr != "" {
		fmt.Fprintf(&b, "\n%s cache not saved: %s\n",
			out.String(style.Cross).Foreground(out.Color(string(style.Red))), result.PersistErr)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func classString(out *termenv.Output, class domain.Classification) string {
	color := style.UnknownColor
	switch class {
	case domain.Current:
		color = style.CurrentColor
	case domain.Outdated:
		color = style.OutdatedColor
	}
	return out.String(class.String()).Foreground(out.Color(string(color))).String()
}
