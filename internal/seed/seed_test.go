package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tleuberdina/bot-project/internal/domain"
)

func TestSample(t *testing.T) {
	ps, err := Sample()
	require.NoError(t, err)
	require.Len(t, ps, 4)

	assert.Equal(t, domain.Process{
		Name:         "Заполнить таблицу показателей",
		Responsible:  "Кирилл",
		Frequency:    "Раз в сутки",
		DeadlineTime: "23:59",
		Reminder1:    "24ч",
		Reminder2:    "2ч",
	}, ps[0])
	assert.Equal(t, "Иван", ps[3].Responsible)
	assert.Equal(t, "1ч", ps[3].Reminder2)
}

func TestParse_RejectsWrongReminderCount(t *testing.T) {
	_, err := Parse([]byte(`
processes:
  - name: x
    responsible: y
    deadline: "10:00"
    reminders: ["1ч"]
`))
	require.Error(t, err)
}

func TestParse_RejectsMissingResponsible(t *testing.T) {
	_, err := Parse([]byte(`
processes:
  - name: x
    reminders: ["1ч", "2ч"]
`))
	require.Error(t, err)
}

type fakeReplacer struct {
	got []domain.Process
	err error
}

func (f *fakeReplacer) ReplaceProcesses(_ context.Context, ps []domain.Process) error {
	f.got = ps
	return f.err
}

func TestApply(t *testing.T) {
	ps, err := Sample()
	require.NoError(t, err)

	r := &fakeReplacer{}
	n, err := Apply(context.Background(), r, ps)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Len(t, r.got, 4)

	r.err = errors.New("disk full")
	_, err = Apply(context.Background(), r, ps)
	assert.EqualError(t, err, "disk full")
}
