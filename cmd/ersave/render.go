package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"ersave/errs"
	"ersave/fixers"
	"ersave/session"
	"ersave/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderHeader(true).
		BorderRow(false).
		Headers(headers...)
}

func slotTable(s *session.Session) string {
	findings := map[int]int{}
	for _, f := range s.Findings() {
		findings[f.Slot]++
	}

	empty := map[int]bool{}
	broken := map[int]bool{}
	rows := [][]string{}
	for i := 0; i < s.SlotCount(); i++ {
		slot := strconv.Itoa(i)
		c, err := s.Slot(i)
		switch {
		case err != nil:
			broken[len(rows)] = true
			rows = append(rows, []string{slot, "unreadable", "", "", "", "", "", string(errs.CodeOf(err))})
		case c.IsEmpty():
			empty[len(rows)] = true
			rows = append(rows, []string{slot, "(empty)", "", "", "", "", "", ""})
		default:
			sum := c.Summary()
			problems := ""
			if n := findings[i]; n > 0 {
				broken[len(rows)] = true
				problems = strconv.Itoa(n)
			}
			rows = append(rows, []string{
				slot, sum.Name, strconv.Itoa(int(sum.Level)), strconv.Itoa(int(sum.Version)),
				sum.Map, sum.Time, humanize.Comma(int64(sum.Deaths)), problems,
			})
		}
	}

	return newTable("Slot", "Name", "Level", "Version", "Map", "Time", "Deaths", "Problems").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case broken[row]:
				return badStyle
			case empty[row]:
				return dimStyle
			}
			return cellStyle
		}).
		Render()
}

func findingTable(s *session.Session, findings []fixers.Finding) string {
	rows := [][]string{}
	for _, f := range findings {
		name := ""
		if c, err := s.Slot(f.Slot); err == nil {
			name = c.PlayerGameData.CharacterName()
		}
		rows = append(rows, []string{strconv.Itoa(f.Slot), name, f.ID, f.Expl})
	}
	return newTable("Slot", "Name", "Problem", "Meaning").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

func summaryTable(sum types.Summary) string {
	if sum.Empty {
		return "(empty slot)"
	}
	attrs := []string{"Vigor", "Mind", "Endurance", "Strength", "Dexterity", "Intelligence", "Faith", "Arcane"}
	rows := [][]string{
		{"Name", sum.Name},
		{"Level", strconv.Itoa(int(sum.Level))},
		{"Archetype", sum.Archetype},
	}
	for i, attr := range attrs {
		rows = append(rows, []string{attr, strconv.Itoa(int(sum.Attributes[i]))})
	}
	rows = append(rows,
		[]string{"HP", fmt.Sprintf("%v / %v", sum.HP, sum.MaxHP)},
		[]string{"FP", fmt.Sprintf("%v / %v", sum.FP, sum.MaxFP)},
		[]string{"Stamina", fmt.Sprintf("%v / %v", sum.SP, sum.MaxSP)},
		[]string{"Runes", humanize.Comma(int64(sum.Runes))},
		[]string{"Runes (lifetime)", humanize.Comma(int64(sum.RunesMemory))},
		[]string{"Flasks", fmt.Sprintf("%v crimson, %v cerulean", sum.Flasks[0], sum.Flasks[1])},
		[]string{"Deaths", humanize.Comma(int64(sum.Deaths))},
		[]string{"Map", sum.Map},
		[]string{"Time", sum.Time},
		[]string{"Slot version", strconv.Itoa(int(sum.Version))},
		[]string{"Game version", strconv.Itoa(int(sum.GameVersion))},
		[]string{"Steam ID", strconv.FormatUint(sum.SteamID, 10)},
		[]string{"Torrent", fmt.Sprintf("%v (%v HP)", sum.RideState, sum.RideHP)},
		[]string{"Inventory", fmt.Sprintf("%v items, %v key items", sum.HeldCommon, sum.HeldKey)},
		[]string{"Storage", fmt.Sprintf("%v items, %v key items", sum.StoredCommon, sum.StoredKey)},
	)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}
