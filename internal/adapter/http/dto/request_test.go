package dto

import (
	"testing"

	"github.com/iho/ledgercore/internal/usecase"
)

func TestCreateAccountRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateAccountRequest{UserID: "user-1", Currency: "usd"}

	got := req.ToUseCaseInput()
	want := usecase.CreateAccountInput{UserID: "user-1", Currency: "usd"}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestPostTransactionRequest_ToUseCaseInput(t *testing.T) {
	req := &PostTransactionRequest{
		ReferenceID:   "ref-1",
		Type:          "TRANSFER",
		Amount:        "10.5",
		Currency:      "USD",
		FromAccountID: "a",
		ToAccountID:   "b",
		Metadata:      "note",
	}

	got := req.ToUseCaseInput()
	want := usecase.PostTransactionInput{
		ReferenceID:   "ref-1",
		Type:          "TRANSFER",
		Amount:        "10.5",
		Currency:      "USD",
		FromAccountID: "a",
		ToAccountID:   "b",
		Metadata:      "note",
	}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}
