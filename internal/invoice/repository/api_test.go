package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-billing-terminal/internal/api"
	"github.com/fekuna/omnipos-billing-terminal/internal/model"
)

func TestCreateSendsCartAsIs(t *testing.T) {
	var received model.InvoiceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/invoice" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(model.InvoiceResponse{Success: true, InvoiceFile: "Ravi_20260831.txt", Total: 8.75})
	}))
	defer srv.Close()

	repo := NewAPIRepository(api.NewClient(&api.Config{BaseURL: srv.URL}))
	res, err := repo.Create(context.Background(), &model.InvoiceRequest{
		CustomerName:   "Ravi Kumar",
		CustomerMobile: "9876543210",
		Items: []model.CartLine{
			{LineID: "l1", ProductID: "1", Name: "Paracetamol", Price: 2.5, Qty: 3.5, SaleUnit: model.SaleUnitSub, PerStrip: 10},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !res.Success || res.InvoiceFile != "Ravi_20260831.txt" {
		t.Errorf("unexpected response %+v", res)
	}
	if len(received.Items) != 1 || received.Items[0].Qty != 3.5 {
		t.Errorf("items must arrive verbatim, got %+v", received.Items)
	}
	// Bookkeeping fields ride along untouched.
	if received.Items[0].LineID != "l1" || received.Items[0].SaleUnit != model.SaleUnitSub {
		t.Errorf("bookkeeping fields missing: %+v", received.Items[0])
	}
}

func TestCreateDecodesFailurePayloadOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(model.InvoiceResponse{Success: false, Message: "Cart is empty"})
	}))
	defer srv.Close()

	repo := NewAPIRepository(api.NewClient(&api.Config{BaseURL: srv.URL}))
	res, err := repo.Create(context.Background(), &model.InvoiceRequest{CustomerName: "x"})
	if err != nil {
		t.Fatalf("a decodable failure payload is not a transport error: %v", err)
	}
	if res.Success || res.Message != "Cart is empty" {
		t.Errorf("unexpected response %+v", res)
	}
}

func TestPrintPath(t *testing.T) {
	repo := NewAPIRepository(api.NewClient(&api.Config{BaseURL: "http://localhost:5000"}))
	got := repo.PrintPath("Ravi_20260831.txt")
	if got != "http://localhost:5000/print_invoice/Ravi_20260831.txt" {
		t.Errorf("unexpected print path %q", got)
	}
}
