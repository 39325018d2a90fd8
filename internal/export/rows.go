package export

import (
	"strconv"

	"github.com/Tleuberdina/bot-project/internal/domain"
)

// CreatedLayout renders process creation timestamps.
const CreatedLayout = "2006-01-02 15:04:05"

// Header is the fixed column order of the exported table.
func Header() []string {
	return []string{
		"ID",
		"Название процесса",
		"Ответственный",
		"Периодичность",
		"Время дедлайна",
		"Первое напоминание",
		"Второе напоминание",
		"Дата создания",
	}
}

// Record renders one process in Header order.
func Record(p domain.Process) []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.Name,
		p.Responsible,
		p.Frequency,
		p.DeadlineTime,
		p.Reminder1,
		p.Reminder2,
		p.CreatedAt.UTC().Format(CreatedLayout),
	}
}

// Values builds the sheet payload: the header row followed by one row per
// process. The ID column stays numeric.
func Values(ps []domain.Process) [][]interface{} {
	out := make([][]interface{}, 0, len(ps)+1)
	out = append(out, stringsRow(Header()))

	for _, p := range ps {
		rec := Record(p)
		row := stringsRow(rec)
		row[0] = p.ID
		out = append(out, row)
	}
	return out
}

func stringsRow(ss []string) []interface{} {
	row := make([]interface{}, len(ss))
	for i, s := range ss {
		row[i] = s
	}
	return row
}
