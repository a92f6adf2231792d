package route

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"cra_backend/internals/constants"
	"cra_backend/internals/features/appointments/appointments/model"
	"cra_backend/internals/features/archives/controller"
	"cra_backend/internals/features/archives/service"
	helperAuth "cra_backend/internals/helpers/auth"
)

var errDB = errors.New("db down")

// stubStore serves one active row for any date and fails on the configured step.
type stubStore struct {
	rows      []model.AppointmentModel
	selectErr error
	deleteErr error
}

func (s *stubStore) FindActiveByDate(context.Context, time.Time, *uuid.UUID) ([]model.AppointmentModel, error) {
	return s.rows, s.selectErr
}

func (s *stubStore) FindActiveByIDs(context.Context, []uuid.UUID, *uuid.UUID) ([]model.AppointmentModel, error) {
	return s.rows, s.selectErr
}

func (s *stubStore) FindActiveDatesBefore(context.Context, time.Time) ([]time.Time, error) {
	return nil, nil
}

func (s *stubStore) InsertHistory(context.Context, []model.AppointmentModel) error { return nil }

func (s *stubStore) DeleteActive(_ context.Context, ids []uuid.UUID, _ *time.Time) (int64, error) {
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	return int64(len(ids)), nil
}

func (s *stubStore) FindHistoryIDsBefore(context.Context, time.Time) ([]uuid.UUID, error) {
	return nil, s.selectErr
}

func (s *stubStore) MoveHistoryToCold(context.Context, []uuid.UUID) (int64, error) { return 0, nil }

func (s *stubStore) FindAllHistory(context.Context) ([]model.AppointmentModel, error) {
	return nil, s.selectErr
}

func (s *stubStore) DeleteHistory(context.Context, []uuid.UUID) (int64, error) { return 0, nil }

type busyLocker struct{}

func (busyLocker) TryLock(context.Context, string) (func(), bool, error) { return nil, false, nil }

func oneRow() []model.AppointmentModel {
	return []model.AppointmentModel{{
		AppointmentID:          uuid.New(),
		AppointmentStudentName: "ANA",
		AppointmentDate:        datatypes.Date(time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)),
		AppointmentStatus:      model.StatusScheduled,
		AppointmentOrigin:      model.OriginWalkIn,
	}}
}

func sessionAs(role string) *helperAuth.Session {
	unit := uuid.New()
	return &helperAuth.Session{UserID: uuid.New(), Role: role, UnitID: &unit}
}

func archiveApp(sess *helperAuth.Session, store service.Store, locker service.Locker) *fiber.App {
	svc := service.NewArchiveService(store, nil, locker, service.Options{})
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		helperAuth.SetSession(c, sess)
		return c.Next()
	})
	ArchiveAdminRoutes(app, controller.NewArchiveController(svc, nil))
	return app
}

type reply struct {
	ErrorCode string         `json:"error_code"`
	Severity  string         `json:"severity"`
	Data      map[string]any `json:"data"`
}

func post(t *testing.T, app *fiber.App, path, body string) (int, reply) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var r reply
	_ = json.Unmarshal(raw, &r)
	return resp.StatusCode, r
}

const rotateDateBody = `{"date":"2024-06-14"}`

func TestArchiveErrorMapping(t *testing.T) {
	admin := sessionAs(constants.RoleAdmin)
	super := sessionAs(constants.RoleSuperAdmin)

	cases := []struct {
		name   string
		app    *fiber.App
		path   string
		status int
		code   string
	}{
		{"ordinary failure", archiveApp(admin, &stubStore{selectErr: errDB}, nil), "/archives/rotate-date", 500, "ARCHIVE_FAILED"},
		{"lock busy", archiveApp(admin, &stubStore{}, busyLocker{}), "/archives/rotate-date", 409, "ARCHIVE_IN_PROGRESS"},
		{"storage missing", archiveApp(super, &stubStore{}, nil), "/archives/export-history", 503, "STORAGE_NOT_CONFIGURED"},
		{"nothing to rotate", archiveApp(admin, &stubStore{}, nil), "/archives/rotate-date", 200, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, r := post(t, tc.app, tc.path, rotateDateBody)
			if status != tc.status {
				t.Fatalf("status = %d, want %d", status, tc.status)
			}
			if r.ErrorCode != tc.code {
				t.Errorf("error_code = %q, want %q", r.ErrorCode, tc.code)
			}
			if tc.code != "ARCHIVE_PARTIAL_FAILURE" && r.Severity != "" {
				t.Errorf("severity = %q, only partial failures are critical", r.Severity)
			}
		})
	}
}

func TestArchivePartialFailureBody(t *testing.T) {
	app := archiveApp(sessionAs(constants.RoleAdmin), &stubStore{rows: oneRow(), deleteErr: errDB}, nil)

	status, r := post(t, app, "/archives/rotate-date", rotateDateBody)
	if status != 500 || r.ErrorCode != "ARCHIVE_PARTIAL_FAILURE" {
		t.Fatalf("status = %d code = %q", status, r.ErrorCode)
	}
	if r.Severity != "critical" {
		t.Errorf("severity = %q, want critical", r.Severity)
	}
	if r.Data["copied"] != float64(1) {
		t.Errorf("copied = %v", r.Data["copied"])
	}
	if r.Data["location"] != model.TableHistory {
		t.Errorf("location = %v", r.Data["location"])
	}
	if hint, _ := r.Data["recovery_hint"].(string); hint == "" {
		t.Error("recovery_hint missing")
	}
}

func TestArchiveRouteGates(t *testing.T) {
	cases := []struct {
		name   string
		sess   *helperAuth.Session
		path   string
		status int
		code   string
	}{
		{"admin rotates a date", sessionAs(constants.RoleAdmin), "/archives/rotate-date", 200, ""},
		{"admin denied cold rotation", sessionAs(constants.RoleAdmin), "/archives/rotate-cold", 403, "FORBIDDEN"},
		{"admin denied export", sessionAs(constants.RoleAdmin), "/archives/export-history", 403, "FORBIDDEN"},
		{"atendente denied", sessionAs(constants.RoleAtendente), "/archives/rotate-date", 403, "FORBIDDEN"},
		{"missing profile denied", &helperAuth.Session{UserID: uuid.New(), ProfileMissing: true}, "/archives/rotate-date", 403, "PROFILE_MISSING"},
		{"super admin cold rotation", sessionAs(constants.RoleSuperAdmin), "/archives/rotate-cold", 200, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, r := post(t, archiveApp(tc.sess, &stubStore{}, nil), tc.path, rotateDateBody)
			if status != tc.status {
				t.Fatalf("status = %d, want %d", status, tc.status)
			}
			if tc.code != "" && r.ErrorCode != tc.code {
				t.Errorf("error_code = %q, want %q", r.ErrorCode, tc.code)
			}
		})
	}
}
