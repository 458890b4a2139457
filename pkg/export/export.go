package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/artem13815/recruitflow/pkg/candidate"
	"github.com/artem13815/recruitflow/pkg/message"
)

// UseCase — выгрузка кандидатов в файлы для HR.
// fields в CSV — подмножество колонок по именам из candidateHeader
// (без учёта регистра); nil или пустой список означает все колонки.
type UseCase interface {
	Excel(ctx context.Context, orgID uuid.UUID, f candidate.Filters) ([]byte, error)
	CSV(ctx context.Context, orgID uuid.UUID, f candidate.Filters, fields []string) ([]byte, error)
}

type service struct {
	candidates candidate.Repository
	messages   message.Repository
}

func NewService(candidates candidate.Repository, messages message.Repository) UseCase {
	return &service{candidates: candidates, messages: messages}
}

const exportLimit = 10_000

var candidateHeader = []string{
	"Name", "Email", "Phone", "Status", "Years of Experience",
	"Skills", "Current Company", "Education", "Location",
	"Overall Confidence", "Created At",
}

// Excel собирает книгу из трёх листов: Candidates, Skills (частотность
// навыков по базе) и Messages (история переписки).
func (s *service) Excel(ctx context.Context, orgID uuid.UUID, f candidate.Filters) ([]byte, error) {
	items, _, err := s.candidates.List(ctx, orgID, f, exportLimit, 0)
	if err != nil {
		return nil, err
	}

	book := excelize.NewFile()
	defer book.Close()

	const candidatesSheet = "Candidates"
	book.SetSheetName(book.GetSheetName(0), candidatesSheet)
	writeRow(book, candidatesSheet, 1, candidateHeader)

	skillCounts := make(map[string]int)
	for i, c := range items {
		writeRow(book, candidatesSheet, i+2, candidateRow(c))
		for _, skill := range c.Skills {
			skillCounts[skill]++
		}
	}

	const skillsSheet = "Skills"
	if _, err := book.NewSheet(skillsSheet); err != nil {
		return nil, err
	}
	writeRow(book, skillsSheet, 1, []string{"Skill", "Candidates"})
	row := 2
	for _, skill := range sortedSkills(skillCounts) {
		writeRow(book, skillsSheet, row, []string{skill, strconv.Itoa(skillCounts[skill])})
		row++
	}

	const messagesSheet = "Messages"
	if _, err := book.NewSheet(messagesSheet); err != nil {
		return nil, err
	}
	writeRow(book, messagesSheet, 1, []string{"Candidate", "Direction", "Sent At", "Status", "Classification", "Content"})
	row = 2
	for _, c := range items {
		msgs, err := s.messages.ListByCandidate(ctx, c.ID, 0, 0)
		if err != nil {
			return nil, err
		}
		for _, m := range msgs {
			writeRow(book, messagesSheet, row, []string{
				c.Name,
				string(m.Direction),
				m.Timestamp.Format("2006-01-02 15:04"),
				string(m.Status),
				string(m.Classification),
				m.Content,
			})
			row++
		}
	}

	var buf bytes.Buffer
	if err := book.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSV выгружает кандидатов плоским файлом с тем же набором колонок,
// что и лист Candidates.
func (s *service) CSV(ctx context.Context, orgID uuid.UUID, f candidate.Filters, fields []string) ([]byte, error) {
	items, _, err := s.candidates.List(ctx, orgID, f, exportLimit, 0)
	if err != nil {
		return nil, err
	}
	cols := columnIndexes(fields)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(pickColumns(candidateHeader, cols)); err != nil {
		return nil, err
	}
	for _, c := range items {
		if err := w.Write(pickColumns(candidateRow(c), cols)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func candidateRow(c candidate.Candidate) []string {
	years := ""
	if c.YearsExperience != nil {
		years = strconv.Itoa(*c.YearsExperience)
	}
	return []string{
		c.Name,
		c.Email,
		c.Phone,
		string(c.Status),
		years,
		strings.Join(c.Skills, ", "),
		c.CurrentCompany,
		c.Education,
		c.Location,
		fmt.Sprintf("%.0f%%", c.OverallConfidence),
		c.CreatedAt.Format("2006-01-02"),
	}
}

// columnIndexes маппит запрошенные имена колонок на их позиции в
// candidateHeader; неизвестные имена игнорируются. nil — все колонки.
func columnIndexes(fields []string) []int {
	if len(fields) == 0 {
		return nil
	}
	var idx []int
	for _, f := range fields {
		for i, h := range candidateHeader {
			if strings.EqualFold(strings.TrimSpace(f), h) {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

func pickColumns(row []string, cols []int) []string {
	if cols == nil {
		return row
	}
	out := make([]string, 0, len(cols))
	for _, i := range cols {
		out = append(out, row[i])
	}
	return out
}

func writeRow(book *excelize.File, sheet string, row int, values []string) {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		_ = book.SetCellValue(sheet, cell, v)
	}
}

// sortedSkills — навыки по убыванию частоты, при равенстве по алфавиту.
func sortedSkills(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for skill := range counts {
		out = append(out, skill)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j], out[j-1]
			if counts[a] > counts[b] || (counts[a] == counts[b] && a < b) {
				out[j], out[j-1] = out[j-1], out[j]
			} else {
				break
			}
		}
	}
	return out
}
