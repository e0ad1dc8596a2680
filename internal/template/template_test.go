package template

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hrd-survey/internal/mapping"
	"github.com/hrd-survey/internal/stats"
)

func sampleTemplate(t *testing.T) *Template {
	t.Helper()
	grid := [][]string{
		{"", "정량 평가", "", ""},
		{"", "강사 전문성 만족도", "", ""},
		{"", "교육 시설은 편리했다", "", ""},
		{"", "", "", ""},
		{"", "강의 내용은 실무에 도움이 되었다", "", ""},
	}
	tmpl, err := New(grid, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tmpl
}

func sampleStore(t *testing.T) *stats.Store {
	t.Helper()
	store := stats.NewStore()
	for _, q := range []stats.QuestionStat{
		{QuestionID: "q1", Label: "강사 전문성 만족도", Mean: 4.2, Min: 2, Max: 5, Count: 12},
		{QuestionID: "q2", Label: "강의 내용 실무 도움", Mean: 3.1, Min: 1, Max: 5, Count: 12},
	} {
		if err := store.Add(q); err != nil {
			t.Fatalf("store.Add() error = %v", err)
		}
	}
	return store
}

func TestSlots(t *testing.T) {
	tmpl := sampleTemplate(t)

	slots := tmpl.Slots()
	if len(slots) != 5 {
		t.Fatalf("len(Slots()) = %d, want 5", len(slots))
	}
	if slots[1].RowIndex != 1 || slots[1].Label != "강사 전문성 만족도" {
		t.Errorf("slots[1] = %+v", slots[1])
	}
	if slots[3].Label != "" {
		t.Errorf("slots[3].Label = %q, want empty", slots[3].Label)
	}
}

func TestSlotsAt(t *testing.T) {
	tmpl := sampleTemplate(t)

	slots := tmpl.SlotsAt([]int{1, 2, 4})
	want := []mapping.Slot{
		{RowIndex: 1, Label: "강사 전문성 만족도"},
		{RowIndex: 2, Label: "교육 시설은 편리했다"},
		{RowIndex: 4, Label: "강의 내용은 실무에 도움이 되었다"},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("SlotsAt() = %+v, want %+v", slots, want)
	}
}

func TestApplyWritesAcceptedOnly(t *testing.T) {
	tmpl := sampleTemplate(t)
	store := sampleStore(t)

	decisions := []mapping.Decision{
		{RowIndex: 1, TemplateLabel: "강사 전문성 만족도", QuestionID: "q1", Score: 0.9, Accepted: true},
		{RowIndex: 2, TemplateLabel: "교육 시설은 편리했다", Score: 0.2, Accepted: false},
	}

	if err := tmpl.Apply(decisions, store); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if got := tmpl.Cell(1, tmpl.ValueColumn()); got != "4.20" {
		t.Errorf("accepted cell = %q, want 4.20", got)
	}
	if got := tmpl.Cell(2, tmpl.ValueColumn()); got != "" {
		t.Errorf("rejected cell = %q, want untouched empty", got)
	}
}

func TestApplyIdempotent(t *testing.T) {
	store := sampleStore(t)
	decisions := []mapping.Decision{
		{RowIndex: 1, QuestionID: "q1", Score: 0.9, Accepted: true},
		{RowIndex: 4, QuestionID: "q2", Score: 0.7, Accepted: true},
	}

	once := sampleTemplate(t)
	if err := once.Apply(decisions, store); err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}

	twice := once.Clone()
	if err := twice.Apply(decisions, store); err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}

	if !reflect.DeepEqual(once.grid, twice.grid) {
		t.Errorf("re-applied grid differs:\nonce:  %v\ntwice: %v", once.grid, twice.grid)
	}
}

func TestApplyOutOfRange(t *testing.T) {
	tmpl := sampleTemplate(t)
	store := sampleStore(t)

	decisions := []mapping.Decision{
		{RowIndex: 99, QuestionID: "q1", Score: 0.9, Accepted: true},
	}

	err := tmpl.Apply(decisions, store)
	var rangeErr *mapping.OutOfRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("Apply() error = %v, want OutOfRangeError", err)
	}
	if rangeErr.RowIndex != 99 {
		t.Errorf("RowIndex = %d, want 99", rangeErr.RowIndex)
	}
}

func TestApplyUnknownQuestion(t *testing.T) {
	tmpl := sampleTemplate(t)
	store := sampleStore(t)

	decisions := []mapping.Decision{
		{RowIndex: 1, QuestionID: "q99", Score: 0.9, Accepted: true},
	}

	err := tmpl.Apply(decisions, store)
	var inputErr *mapping.InputError
	if !errors.As(err, &inputErr) {
		t.Errorf("Apply() error = %v, want InputError", err)
	}
}

func TestApplyWidensRaggedRow(t *testing.T) {
	grid := [][]string{
		{"", "강사 전문성 만족도"}, // no value column yet
	}
	tmpl, err := New(grid, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	store := sampleStore(t)
	decisions := []mapping.Decision{
		{RowIndex: 0, QuestionID: "q1", Score: 0.9, Accepted: true},
	}

	if err := tmpl.Apply(decisions, store); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := tmpl.Cell(0, 3); got != "4.20" {
		t.Errorf("widened cell = %q, want 4.20", got)
	}
}
