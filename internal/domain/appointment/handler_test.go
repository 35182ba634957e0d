package appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newHandlerFixture(t *testing.T) (*Handler, *fixture) {
	t.Helper()
	f := newFixture()
	return NewHandler(f.svc), f
}

func post(t *testing.T, h echo.HandlerFunc, id, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return rec, h(c)
}

func TestHandler_RegisterPayment(t *testing.T) {
	h, f := newHandlerFixture(t)

	a := validAppointment()
	a.AmountOwed = 1500
	if err := f.svc.Create(context.Background(), a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec, err := post(t, h.RegisterPayment, a.ID.String(), `{"amount": 600}`)
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	var got struct {
		AmountPaid float64 `json:"amount_paid"`
		Paid       bool    `json:"paid"`
		Balance    float64 `json:"balance"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.AmountPaid != 600 || got.Paid {
		t.Errorf("amount_paid = %v, paid = %v", got.AmountPaid, got.Paid)
	}
	if got.Balance != 900 {
		t.Errorf("balance = %v, want 900", got.Balance)
	}
}

func TestHandler_RegisterPayment_Errors(t *testing.T) {
	h, f := newHandlerFixture(t)

	a := validAppointment()
	a.AmountOwed = 1500
	if err := f.svc.Create(context.Background(), a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name   string
		id     string
		body   string
		status int
	}{
		{"bad id", "not-a-uuid", `{"amount": 100}`, http.StatusBadRequest},
		{"unknown id", validAppointment().PatientID.String(), `{"amount": 100}`, http.StatusNotFound},
		{"zero amount", a.ID.String(), `{"amount": 0}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := post(t, h.RegisterPayment, tt.id, tt.body)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != tt.status {
				t.Errorf("got %v, want status %d", err, tt.status)
			}
		})
	}
}

func TestHandler_TogglePaid(t *testing.T) {
	h, f := newHandlerFixture(t)

	a := validAppointment()
	a.AmountOwed = 1200
	if err := f.svc.Create(context.Background(), a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec, err := post(t, h.TogglePaid, a.ID.String(), "")
	if err != nil {
		t.Fatalf("TogglePaid: %v", err)
	}
	var got struct {
		Paid       bool    `json:"paid"`
		AmountPaid float64 `json:"amount_paid"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Paid || got.AmountPaid != 1200 {
		t.Errorf("paid = %v, amount_paid = %v", got.Paid, got.AmountPaid)
	}
}

func TestHandler_CreateConflict(t *testing.T) {
	h, f := newHandlerFixture(t)

	a := validAppointment()
	if err := f.svc.Create(context.Background(), a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	body := `{"date": "2026-09-01", "start_time": "10:00",
		"patient_id": "` + a.PatientID.String() + `",
		"treatment_id": "` + a.TreatmentID.String() + `",
		"insurer_id": "` + a.InsurerID.String() + `"}`
	_, err := post(t, h.Create, "", body)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("got %v, want 409", err)
	}
}

func TestHandler_ListIncludesPaidTotal(t *testing.T) {
	h, f := newHandlerFixture(t)
	ctx := context.Background()

	a := validAppointment()
	a.AmountOwed = 1000
	a.Paid = true
	if err := f.svc.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List: %v", err)
	}

	var got struct {
		Total     int     `json:"total"`
		PaidTotal float64 `json:"paid_total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Total != 1 || got.PaidTotal != 1000 {
		t.Errorf("total = %d, paid_total = %v", got.Total, got.PaidTotal)
	}
}
