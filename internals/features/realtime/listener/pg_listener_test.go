package listener

import (
	"testing"

	"github.com/google/uuid"

	"cra_backend/internals/features/realtime/hub"
)

func TestToEvent(t *testing.T) {
	unit := uuid.New()
	raw := `{"op":"update","id":"` + uuid.NewString() + `","unit_id":"` + unit.String() + `"}`

	e, err := ToEvent(TableAppointments, raw)
	if err != nil {
		t.Fatal(err)
	}
	if e.Type != hub.EventRefreshAvailable || e.Table != "appointments" || e.Op != "UPDATE" {
		t.Fatalf("event = %+v", e)
	}
	if e.UnitID == nil || *e.UnitID != unit {
		t.Fatalf("unit = %v", e.UnitID)
	}
	if e.Data != nil {
		t.Fatalf("row data must not be forwarded: %v", e.Data)
	}
}

func TestToEventNullUnit(t *testing.T) {
	e, err := ToEvent(TableAppointments, `{"op":"DELETE","id":"`+uuid.NewString()+`","unit_id":null}`)
	if err != nil {
		t.Fatal(err)
	}
	if e.UnitID != nil {
		t.Fatalf("unit = %v, want nil", *e.UnitID)
	}
}

func TestToEventRejects(t *testing.T) {
	for _, raw := range []string{`not json`, `{"op":"TRUNCATE"}`, `{}`} {
		if _, err := ToEvent(TableAppointments, raw); err == nil {
			t.Fatalf("%s: expected error", raw)
		}
	}
}
