// internals/features/home/notifications/controller/notification_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cra_backend/internals/features/home/notifications/dto"
	"cra_backend/internals/features/home/notifications/model"
	"cra_backend/internals/features/realtime/hub"
	helper "cra_backend/internals/helpers"
	helperAuth "cra_backend/internals/helpers/auth"
	"cra_backend/internals/helpers/zlog"
)

var validate = validator.New()

type Broadcaster interface {
	Broadcast(e hub.Event) int
}

type NotificationController struct {
	DB  *gorm.DB
	Hub Broadcaster // optional
}

func NewNotificationController(db *gorm.DB, h Broadcaster) *NotificationController {
	return &NotificationController{DB: db, Hub: h}
}

// visible limits notifications to the caller's unit plus global ones.
func visible(q *gorm.DB, scope helperAuth.Scope) *gorm.DB {
	switch {
	case scope.All:
		return q
	case scope.UnitID != nil:
		return q.Where("(n.notification_unit_id IS NULL OR n.notification_unit_id = ?)", *scope.UnitID)
	default:
		return q.Where("n.notification_unit_id IS NULL")
	}
}

/* =========================================================
   POST /api/a/notifications
   ADMIN posts to its own unit; SUPER_ADMIN to one unit or
   to everyone (no unit_id).
========================================================= */

func (ctrl *NotificationController) Create(c *fiber.Ctx) error {
	sess, err := helperAuth.RequireSession(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.NotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body inválido")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return helper.JsonFromValidator(c, err)
	}

	unitID := req.UnitID
	if !sess.IsSuperAdmin() {
		if sess.UnitID == nil {
			return helper.JsonError(c, fiber.StatusForbidden, "Usuário sem unidade vinculada")
		}
		unitID = sess.UnitID
	}

	by := sess.UserID
	m := req.ToModel(unitID, &by)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}

	if ctrl.Hub != nil {
		ctrl.Hub.Broadcast(hub.Event{
			Type:   hub.EventNotification,
			Data:   fiber.Map{"id": m.NotificationID, "message": m.NotificationMessage},
			UnitID: m.NotificationUnitID,
		})
	}
	zlog.Info("notification created", zap.String("id", m.NotificationID.String()), zap.String("by", by.String()))
	return helper.JsonCreated(c, "Notificação enviada", dto.ToNotificationResponse(m, nil))
}

/* =========================================================
   DELETE /api/a/notifications/:id
========================================================= */

func (ctrl *NotificationController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	scope := helperAuth.ResolveScope(helperAuth.GetSession(c), nil)

	var m model.NotificationModel
	q := scope.Apply(ctrl.DB.WithContext(c.UserContext()).Where("notification_id = ?", id), "notification_unit_id")
	if err := q.First(&m).Error; err != nil {
		status, msg := helper.MapDBError(err, "Notificação não encontrada")
		return helper.JsonError(c, status, msg)
	}

	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_ack_notification_id = ?", id).Delete(&model.NotificationAckModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
	if err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonDeleted(c, "Notificação removida", fiber.Map{"id": id})
}

/* =========================================================
   GET /api/u/notifications?unread=true
   Each row carries the caller's own acknowledgment time.
========================================================= */

type notificationRow struct {
	model.NotificationModel
	AckAt *time.Time
}

func (ctrl *NotificationController) ListMine(c *fiber.Ctx) error {
	sess, err := helperAuth.RequireSession(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).
		Table("notifications n").
		Joins("LEFT JOIN notification_acks a ON a.notification_ack_notification_id = n.notification_id AND a.notification_ack_user_id = ?", sess.UserID)
	q = visible(q, helperAuth.ResolveScope(sess, nil))
	if c.QueryBool("unread") {
		q = q.Where("a.notification_ack_at IS NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao contar notificações")
	}

	var rows []notificationRow
	if err := q.Select("n.*, a.notification_ack_at AS ack_at").
		Order("n.notification_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Scan(&rows).Error; err != nil {
		zlog.Error("list notifications failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Falha ao buscar notificações")
	}

	out := make([]dto.NotificationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToNotificationResponse(&rows[i].NotificationModel, rows[i].AckAt))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, p))
}

/* =========================================================
   POST /api/u/notifications/:id/ack
   Idempotent: the first acknowledgment time is kept.
========================================================= */

func (ctrl *NotificationController) Ack(c *fiber.Ctx) error {
	sess, err := helperAuth.RequireSession(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID inválido")
	}
	ctx := c.UserContext()

	var m model.NotificationModel
	q := visible(ctrl.DB.WithContext(ctx).Table("notifications n").Where("n.notification_id = ?", id), helperAuth.ResolveScope(sess, nil))
	if err := q.Take(&m).Error; err != nil {
		status, msg := helper.MapDBError(err, "Notificação não encontrada")
		return helper.JsonError(c, status, msg)
	}

	ack := model.NotificationAckModel{
		NotificationAckNotificationID: id,
		NotificationAckUserID:         sess.UserID,
		NotificationAckAt:             time.Now(),
	}
	if err := ctrl.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&ack).Error; err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	if err := ctrl.DB.WithContext(ctx).
		Where("notification_ack_notification_id = ? AND notification_ack_user_id = ?", id, sess.UserID).
		Take(&ack).Error; err != nil {
		status, msg := helper.MapDBError(err, "")
		return helper.JsonError(c, status, msg)
	}
	return helper.JsonUpdated(c, "Notificação confirmada", dto.ToNotificationResponse(&m, &ack.NotificationAckAt))
}
