// Package leaderboard loads and ranks the multi-game scoring sheet. Each
// row is one player; per-activity scores feed a game subtotal and a spirit
// subtotal, and the grand total crowns the MVP.
package leaderboard

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// AbsentSentinel is the literal marker the sheet uses for "no score
// recorded". It maps to a missing value, never to zero.
const AbsentSentinel = "x"

const (
	BadgeTop     = "🏆"
	BadgeDefault = "🍪"
)

// ScoreRow is one player's line on the sheet.
type ScoreRow struct {
	Player       string              `json:"player"`
	GameScores   map[string]*float64 `json:"game_scores"`
	SpiritScores map[string]*float64 `json:"spirit_scores"`
	GameTotal    *float64            `json:"game_total"`
	SpiritTotal  *float64            `json:"spirit_total"`
	GrandTotal   *float64            `json:"grand_total"`
	Badge        string              `json:"badge,omitempty"`
}

// Board is a loaded score sheet plus the activity column names in sheet
// order.
type Board struct {
	GameColumns   []string   `json:"game_columns"`
	SpiritColumns []string   `json:"spirit_columns"`
	Rows          []ScoreRow `json:"rows"`
}

// LoadFile reads a score sheet CSV from disk.
func LoadFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening score sheet: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a score sheet. The header row names the player column and
// the per-activity columns; the three aggregate columns (game subtotal,
// spirit subtotal, grand total) are unlabeled and identified by position:
// they are, in order, the columns with blank headers.
func Load(r io.Reader) (*Board, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing score sheet: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("score sheet is empty")
	}

	header := records[0]
	var blanks []int
	for i, name := range header {
		if i == 0 {
			continue
		}
		if strings.TrimSpace(name) == "" {
			blanks = append(blanks, i)
		}
	}
	if len(blanks) < 3 {
		return nil, fmt.Errorf("score sheet has %d aggregate columns, want 3", len(blanks))
	}
	gameTotalCol, spiritTotalCol, grandTotalCol := blanks[0], blanks[1], blanks[2]

	board := &Board{}
	for i := 1; i < gameTotalCol; i++ {
		board.GameColumns = append(board.GameColumns, header[i])
	}
	for i := gameTotalCol + 1; i < spiritTotalCol; i++ {
		board.SpiritColumns = append(board.SpiritColumns, header[i])
	}

	for _, record := range records[1:] {
		row := ScoreRow{
			Player:       strings.TrimSpace(cell(record, 0)),
			GameScores:   make(map[string]*float64),
			SpiritScores: make(map[string]*float64),
		}
		for i, name := range board.GameColumns {
			row.GameScores[name] = parseScore(cell(record, 1+i))
		}
		for i, name := range board.SpiritColumns {
			row.SpiritScores[name] = parseScore(cell(record, gameTotalCol+1+i))
		}
		row.GameTotal = parseScore(cell(record, gameTotalCol))
		row.SpiritTotal = parseScore(cell(record, spiritTotalCol))
		row.GrandTotal = parseScore(cell(record, grandTotalCol))
		board.Rows = append(board.Rows, row)
	}

	return board, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// parseScore maps the absent sentinel, blank cells, and anything
// non-numeric to a missing value.
func parseScore(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, AbsentSentinel) {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
