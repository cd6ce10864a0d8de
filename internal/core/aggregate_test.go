package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestTotalsByCategoryGroupsAndSorts(t *testing.T) {
	in := []Expense{
		{Category: "Combustível", Amount: "150.00"},
		{Category: "Combustível", Amount: "50.00"},
		{Category: "Passagem Aérea", Amount: "800.00"},
	}
	got, err := TotalsByCategory(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []CategoryTotal{
		{Name: "Passagem Aérea", Amount: Money{Cents: 80000}},
		{Name: "Combustível", Amount: Money{Cents: 20000}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("totals = %+v, want %+v", got, want)
	}
}

func TestTotalsByCategorySumInvariant(t *testing.T) {
	in := []Expense{
		{Category: "A", Amount: "10.01"},
		{Category: "B", Amount: "0.99"},
		{Category: "A", Amount: "-3.50"},
		{Category: "C", Amount: "1234.56"},
	}
	var wantSum int64
	for _, e := range in {
		c, err := ParseAmountToCents(e.Amount)
		if err != nil {
			t.Fatalf("parse %q: %v", e.Amount, err)
		}
		wantSum += c
	}
	totals, err := TotalsByCategory(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := SumTotals(totals).Cents; got != wantSum {
		t.Fatalf("sum of totals = %d, want %d", got, wantSum)
	}
}

func TestTotalsByCategoryOrderIndependent(t *testing.T) {
	a := []Expense{
		{Category: "X", Amount: "5.00"},
		{Category: "Y", Amount: "7.00"},
		{Category: "X", Amount: "1.00"},
	}
	b := []Expense{a[2], a[0], a[1]}

	ta, err := TotalsByCategory(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tb, err := TotalsByCategory(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ta, tb) {
		t.Fatalf("totals differ by input order: %+v vs %+v", ta, tb)
	}
}

func TestTotalsByCategoryIdempotent(t *testing.T) {
	in := []Expense{
		{Category: "A", Amount: "1.00"},
		{Category: "B", Amount: "2.00"},
	}
	first, err := TotalsByCategory(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := TotalsByCategory(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated aggregation differs: %+v vs %+v", first, second)
	}
}

func TestTotalsByCategoryBadAmountAbortsWhole(t *testing.T) {
	in := []Expense{
		{Category: "A", Amount: "1.00"},
		{Category: "B", Amount: "not-a-number"},
		{Category: "C", Amount: "2.00"},
	}
	totals, err := TotalsByCategory(in)
	if err == nil {
		t.Fatalf("expected error, got totals %+v", totals)
	}
	var dfe *DataFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("expected *DataFormatError, got %T: %v", err, err)
	}
	if dfe.Value != "not-a-number" || dfe.Field != "valorLiquido" {
		t.Fatalf("unexpected error detail: %+v", dfe)
	}
	if totals != nil {
		t.Fatalf("expected no partial totals, got %+v", totals)
	}
}

func TestTotalsByCategoryEmptyInput(t *testing.T) {
	totals, err := TotalsByCategory(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(totals) != 0 {
		t.Fatalf("expected no totals, got %+v", totals)
	}
}

func TestDeputyLabel(t *testing.T) {
	d := Deputy{ID: 204379, Name: "Maria do Rosário", Party: "PT", State: "RS"}
	if got := d.Label(); got != "Maria do Rosário (PT-RS)" {
		t.Fatalf("Label() = %q", got)
	}
	if got := (Deputy{Name: "Fulano"}).Label(); got != "Fulano" {
		t.Fatalf("Label() without party = %q", got)
	}
}
