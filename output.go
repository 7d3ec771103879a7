package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"steamlocate/core"
	"steamlocate/kv"
)

type appView struct {
	core.App
	GameID   core.GameID       `json:"gameid"`
	State    string            `json:"state"`
	Sections map[string]string `json:"sections,omitempty"`
}

type libraryView struct {
	core.LibraryFolder
	Apps int `json:"apps"`
}

type diagnosticView struct {
	Kind  core.DiagnosticKind `json:"kind"`
	Path  string              `json:"path"`
	Error string              `json:"error"`
}

// report is what one invocation prints, either as JSON or as tables.
type report struct {
	Root        string           `json:"root"`
	Libraries   []libraryView    `json:"libraries,omitempty"`
	Apps        []appView        `json:"apps,omitempty"`
	Missing     []uint32         `json:"missing,omitempty"`
	Shortcuts   []core.Shortcut  `json:"shortcuts,omitempty"`
	Diagnostics []diagnosticView `json:"diagnostics,omitempty"`
}

func buildReport(snap *core.Snapshot, ops *core.Options) (*report, error) {
	r := &report{Root: snap.Root()}

	switch {
	case ops.Libraries:
		counts := make(map[string]int)
		for _, app := range snap.AppsInScanOrder() {
			counts[app.Library]++
		}
		for _, folder := range snap.LibraryFolders() {
			r.Libraries = append(r.Libraries, libraryView{LibraryFolder: folder, Apps: counts[folder.Path]})
		}

	case ops.Shortcuts:
		shortcuts, err := snap.Shortcuts()
		if err != nil {
			return nil, err
		}
		r.Shortcuts = shortcuts

	case len(ops.Apps) > 0:
		for _, id := range ops.Apps {
			if id > math.MaxUint32 {
				return nil, fmt.Errorf("app id %d is out of range", id)
			}
		}
		for _, id := range ops.Apps {
			app, ok := snap.App(uint32(id))
			if !ok {
				r.Missing = append(r.Missing, uint32(id))
				continue
			}
			view := newAppView(app)
			if ops.Sections {
				sections, err := renderSections(app.Sections)
				if err != nil {
					return nil, err
				}
				view.Sections = sections
			}
			r.Apps = append(r.Apps, view)
		}

	default:
		for _, app := range snap.SortedApps() {
			r.Apps = append(r.Apps, newAppView(app))
		}
	}

	if ops.Diagnostics {
		for _, d := range snap.Diagnostics() {
			view := diagnosticView{Kind: d.Kind, Path: d.Path}
			if d.Err != nil {
				view.Error = d.Err.Error()
			}
			r.Diagnostics = append(r.Diagnostics, view)
		}
	}
	return r, nil
}

func newAppView(app core.App) appView {
	return appView{App: app, GameID: app.GameID(), State: app.StateFlags.String()}
}

func renderSections(sections map[string]*kv.Node) (map[string]string, error) {
	if len(sections) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(sections))
	for name, node := range sections {
		var b strings.Builder
		if err := kv.EncodeText(&b, node); err != nil {
			return nil, fmt.Errorf("section %s: %w", name, err)
		}
		out[name] = b.String()
	}
	return out, nil
}

func writeJSON(w io.Writer, r *report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeHuman(w io.Writer, r *report, fancy bool) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Steam root: %s\n", r.Root)

	if len(r.Libraries) > 0 {
		rows := make([][]string, 0, len(r.Libraries))
		for i, lib := range r.Libraries {
			rows = append(rows, []string{strconv.Itoa(i), lib.Path, lib.Label, strconv.Itoa(lib.Apps)})
		}
		b.WriteString(renderTable([]string{"#", "Path", "Label", "Apps"}, rows,
			[]text.Align{text.AlignRight, text.AlignLeft, text.AlignLeft, text.AlignRight}, fancy))
		b.WriteString("\n")
	}

	if len(r.Apps) > 0 {
		rows := make([][]string, 0, len(r.Apps))
		for _, app := range r.Apps {
			rows = append(rows, []string{
				strconv.FormatUint(uint64(app.AppID), 10),
				app.Name,
				app.State,
				humanize.IBytes(app.SizeOnDisk),
				updatedText(app.App),
				app.Path,
			})
		}
		b.WriteString(renderTable([]string{"App ID", "Name", "State", "Size", "Updated", "Path"}, rows,
			[]text.Align{text.AlignRight, text.AlignLeft, text.AlignLeft, text.AlignRight, text.AlignLeft, text.AlignLeft}, fancy))
		b.WriteString("\n")

		for _, app := range r.Apps {
			for _, name := range slices.Sorted(maps.Keys(app.Sections)) {
				fmt.Fprintf(&b, "== %s (%d): %s ==\n%s", app.Name, app.AppID, name, app.Sections[name])
			}
		}
	}

	for _, id := range r.Missing {
		fmt.Fprintf(&b, "App %d is not installed\n", id)
	}

	if len(r.Shortcuts) > 0 {
		rows := make([][]string, 0, len(r.Shortcuts))
		for _, s := range r.Shortcuts {
			rows = append(rows, []string{
				strconv.FormatUint(uint64(s.AppID), 10),
				s.AppName,
				s.Exe,
				s.StartDir,
				s.UserID,
				s.GameID.RunURL(),
			})
		}
		b.WriteString(renderTable([]string{"App ID", "Name", "Exe", "Start Dir", "User", "Run"}, rows, nil, fancy))
		b.WriteString("\n")
	}

	if len(r.Diagnostics) > 0 {
		rows := make([][]string, 0, len(r.Diagnostics))
		for _, d := range r.Diagnostics {
			rows = append(rows, []string{d.Kind.String(), d.Path, d.Error})
		}
		b.WriteString(renderTable([]string{"Problem", "Path", "Error"}, rows, nil, fancy))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func updatedText(app core.App) string {
	if app.LastUpdated.IsZero() {
		return "-"
	}
	return humanize.Time(app.LastUpdated)
}

func renderTable(headers []string, rows [][]string, aligns []text.Align, fancy bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if fancy {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
