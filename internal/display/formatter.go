package display

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"profile-summary/internal/linguist"
	"profile-summary/internal/summary"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

const barWidth = 40

type Formatter struct {
	format    string
	out       io.Writer
	selection *Selection
}

func NewFormatter(format string, out io.Writer) *Formatter {
	return &Formatter{format: format, out: out}
}

// WithSelection highlights the selected language in table output.
func (f *Formatter) WithSelection(selection *Selection) *Formatter {
	f.selection = selection
	return f
}

func (f *Formatter) Display(result *summary.Result) error {
	switch f.format {
	case "json":
		return f.displayJSON(result)
	case "table":
		return f.displayTable(result)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

func (f *Formatter) displayJSON(result *summary.Result) error {
	encoder := json.NewEncoder(f.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func (f *Formatter) displayTable(result *summary.Result) error {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	blue := color.New(color.FgBlue)
	yellow := color.New(color.FgYellow)

	cyan.Fprintln(f.out, "\n"+strings.Repeat("=", 80))
	cyan.Fprintf(f.out, "  Profile Summary for @%s\n", result.User.Login)
	cyan.Fprintln(f.out, strings.Repeat("=", 80))

	fmt.Fprintln(f.out)
	green.Fprintln(f.out, "👤 PROFILE")
	fmt.Fprintln(f.out, strings.Repeat("-", 80))

	rows := [][]string{}
	if result.User.Name != "" {
		rows = append(rows, []string{"Name", result.User.Name})
	}
	rows = append(rows, []string{"Username", result.User.Login})
	if result.User.URL != "" {
		rows = append(rows, []string{"Profile", result.User.URL})
	}
	if result.User.AvatarURL != "" {
		rows = append(rows, []string{"Avatar", result.User.AvatarURL})
	}

	table := tablewriter.NewWriter(f.out)
	table.Header("Field", "Value")
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(f.out)
	green.Fprintln(f.out, "💻 LANGUAGES")
	fmt.Fprintln(f.out, strings.Repeat("-", 80))

	if len(result.Languages) == 0 {
		fmt.Fprintln(f.out, "No language data")
	} else {
		fmt.Fprintln(f.out, f.languageBar(result.Languages))
		fmt.Fprintln(f.out)

		table = tablewriter.NewWriter(f.out)
		table.Header("Language", "Key", "Bytes", "Usage")
		for _, lang := range result.Languages {
			name := lang.Name
			if f.selection.IsSelected(lang) {
				name = "▶ " + name
			}
			if err := table.Append([]string{
				name,
				lang.Key,
				formatBytes(lang.Bytes),
				lang.Usage,
			}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	fmt.Fprintln(f.out)
	green.Fprintln(f.out, "📊 ACTIVITY")
	fmt.Fprintln(f.out, strings.Repeat("-", 80))

	table = tablewriter.NewWriter(f.out)
	table.Header("Metric", "Value", "Scope")
	for _, stat := range result.Stats {
		if err := table.Append([]string{
			strings.ReplaceAll(stat.Title, "\n", " "),
			strconv.Itoa(stat.Value),
			stat.Description,
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintln(f.out)
		yellow.Fprintf(f.out, "⚠ %d repositories skipped\n", len(result.Skipped))
		for _, s := range result.Skipped {
			fmt.Fprintf(f.out, "  %s: %s\n", s.Name, s.Reason)
		}
	}

	fmt.Fprintln(f.out)
	blue.Fprintln(f.out, strings.Repeat("-", 80))
	blue.Fprintf(f.out, "Generated at: %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	blue.Fprintln(f.out, strings.Repeat("=", 80))
	fmt.Fprintln(f.out)

	return nil
}

// languageBar draws one colored segment per language. Segment widths come
// from rounding the cumulative share so they always add up to barWidth.
func (f *Formatter) languageBar(langs []summary.LanguageUsage) string {
	var b strings.Builder
	var cumulative float64
	drawn := 0

	for _, lang := range langs {
		cumulative += lang.Percent.InexactFloat64()
		end := int(math.Round(cumulative / 100 * barWidth))
		if end > barWidth {
			end = barWidth
		}
		cells := end - drawn
		if cells <= 0 {
			continue
		}
		drawn = end

		glyph := "█"
		if f.selection.Selected() != "" && !f.selection.IsSelected(lang) {
			glyph = "░"
		}
		b.WriteString(segmentColor(lang.Color).Sprint(strings.Repeat(glyph, cells)))
	}
	return b.String()
}

func segmentColor(hex string) *color.Color {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		r, g, b, _ = parseHexColor(linguist.DefaultColor)
	}
	return color.RGB(r, g, b)
}

func parseHexColor(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func DisplaySuccess(message string) {
	green := color.New(color.FgGreen)
	green.Fprintf(color.Error, "✓ %s\n", message)
}

func DisplayWarning(message string) {
	yellow := color.New(color.FgYellow)
	yellow.Fprintf(color.Error, "⚠ %s\n", message)
}

func DisplayError(message string) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(color.Error, "✗ %s\n", message)
}
