package service

import (
	"context"
	"errors"
	"testing"

	"github.com/beaconhr/onboarding-system/internal/core/domain"
)

func TestEmployeeList_SortedByLastName(t *testing.T) {
	employees := newStubEmployeeRepo()
	employees.add(&domain.Employee{UserID: "u1", LastName: "Zimmer"})
	employees.add(&domain.Employee{UserID: "u2", LastName: "Abbot"})
	svc := NewEmployeeService(employees)

	out, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 || out[0].LastName != "Abbot" {
		t.Fatalf("unexpected order: %+v", out)
	}
}

func TestEmployeeSearch_EmptyQuery(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo())

	_, err := svc.Search(context.Background(), "  ")
	if !errors.Is(err, domain.ErrSearchQueryRequired) {
		t.Fatalf("expected ErrSearchQueryRequired, got %v", err)
	}
}

func TestEmployeeSearch_MatchesNames(t *testing.T) {
	employees := newStubEmployeeRepo()
	employees.add(&domain.Employee{UserID: "u1", FirstName: "Thomas", LastName: "Anderson", PreferredName: "Neo"})
	employees.add(&domain.Employee{UserID: "u2", FirstName: "Agent", LastName: "Smith"})
	svc := NewEmployeeService(employees)

	out, err := svc.Search(context.Background(), "neo")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out) != 1 || out[0].UserID != "u1" {
		t.Fatalf("unexpected match: %+v", out)
	}
}

func TestEmployeeDetail_Missing(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo())

	_, err := svc.Detail(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}
