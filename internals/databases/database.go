package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"cra_backend/internals/configs"
	appointmentModel "cra_backend/internals/features/appointments/appointments/model"
	notificationModel "cra_backend/internals/features/home/notifications/model"
	serviceTypeModel "cra_backend/internals/features/organization/service_types/model"
	staffModel "cra_backend/internals/features/organization/staff/model"
	unitModel "cra_backend/internals/features/organization/units/model"
	themeModel "cra_backend/internals/features/settings/theme/model"
	authModel "cra_backend/internals/features/users/auth/model"
	userModel "cra_backend/internals/features/users/user/model"
	"cra_backend/internals/helpers/zlog"
)

var DB *gorm.DB

func ConnectDB() {
	zlog.Info("🔌 connecting to PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  configs.DatabaseDSN(),
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		zlog.Fatal("❌ database connection failed", zap.Error(err))
	}
	DB = db
	zlog.Info("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		zlog.Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(context.Background()); err != nil {
			zlog.Warn("warm-up ping err", zap.Error(err))
		}
	}()
}

func Ping(ctx context.Context) error {
	if DB == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

/* =========================================================
   MIGRATIONS
========================================================= */

// Migrate creates tables, indexes, the cold-archive procedure and the
// change-notification trigger. Every statement is idempotent.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&unitModel.UnitModel{},
		&staffModel.StaffModel{},
		&serviceTypeModel.ServiceTypeModel{},
		&userModel.UserModel{},
		&userModel.UserProfileModel{},
		&authModel.TokenBlacklist{},
		&notificationModel.NotificationModel{},
		&notificationModel.NotificationAckModel{},
		&themeModel.ThemeSettingModel{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	for _, t := range []string{appointmentModel.TableActive, appointmentModel.TableHistory, appointmentModel.TableCold} {
		if err := db.Table(t).AutoMigrate(&appointmentModel.AppointmentModel{}); err != nil {
			return fmt.Errorf("automigrate %s: %w", t, err)
		}
	}

	for i, stmt := range migrationSQL() {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration statement %d: %w", i, err)
		}
	}
	zlog.Info("✅ migrations applied")
	return nil
}

func migrationSQL() []string {
	cols := strings.Join(appointmentModel.Columns, ", ")
	out := make([]string, 0, 16)

	for _, t := range []string{appointmentModel.TableActive, appointmentModel.TableHistory, appointmentModel.TableCold} {
		out = append(out,
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_date_unit ON %s (appointment_date, appointment_unit_id)`, t, t),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (appointment_created_at)`, t, t),
		)
	}

	out = append(out,
		`CREATE INDEX IF NOT EXISTS idx_staff_unit ON staff (staff_unit_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications (notification_created_at DESC)`,

		// Copy and delete inside one function call: both happen or neither.
		fmt.Sprintf(`
CREATE OR REPLACE FUNCTION archive_history_to_cold(ids uuid[]) RETURNS integer
LANGUAGE plpgsql AS $fn$
DECLARE
  moved integer;
BEGIN
  INSERT INTO %[1]s (%[3]s)
  SELECT %[3]s FROM %[2]s WHERE appointment_id = ANY(ids)
  ON CONFLICT (appointment_id) DO NOTHING;

  DELETE FROM %[2]s WHERE appointment_id = ANY(ids);
  GET DIAGNOSTICS moved = ROW_COUNT;
  RETURN moved;
END
$fn$`, appointmentModel.TableCold, appointmentModel.TableHistory, cols),

		`
CREATE OR REPLACE FUNCTION appointments_notify_change() RETURNS trigger
LANGUAGE plpgsql AS $fn$
BEGIN
  IF TG_OP = 'DELETE' THEN
    PERFORM pg_notify('appointments_changed',
      json_build_object('op', TG_OP, 'id', OLD.appointment_id, 'unit_id', OLD.appointment_unit_id)::text);
    RETURN OLD;
  END IF;
  PERFORM pg_notify('appointments_changed',
    json_build_object('op', TG_OP, 'id', NEW.appointment_id, 'unit_id', NEW.appointment_unit_id)::text);
  RETURN NEW;
END
$fn$`,
		`DROP TRIGGER IF EXISTS trg_appointments_notify_change ON appointments`,
		`CREATE TRIGGER trg_appointments_notify_change
  AFTER INSERT OR UPDATE OR DELETE ON appointments
  FOR EACH ROW EXECUTE FUNCTION appointments_notify_change()`,

		`INSERT INTO theme_settings (theme_setting_id, theme_setting_theme, theme_setting_automatic, theme_setting_updated_at)
  VALUES (1, 'light', false, now())
  ON CONFLICT (theme_setting_id) DO NOTHING`,
	)
	return out
}
