package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"yogacrm_backend/internals/constants"
	"yogacrm_backend/internals/features/billing/dto"
	"yogacrm_backend/internals/features/billing/model"
	clientModel "yogacrm_backend/internals/features/clients/model"
	logService "yogacrm_backend/internals/features/logs/service"
	userModel "yogacrm_backend/internals/features/users/model"
	helper "yogacrm_backend/internals/helpers"
	helperAuth "yogacrm_backend/internals/helpers/auth"
)

/* ================= Controller & Constructor ================= */

type PaymentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, Validate: validator.New()}
}

func payTypeText(category int) string {
	switch category {
	case constants.PaymentDeposit:
		return "paid deposit"
	case constants.PaymentBalance:
		return "paid balance"
	default:
		return "made payment"
	}
}

// POST /extra/submitPayment
// The front-desk flow: a known client pays toward their contract. Both
// audit trails record it in the same transaction as the ledger row.
func (ctrl *PaymentController) SubmitPayment(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.SubmitPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())
	var client clientModel.ClientModel
	if err := db.First(&client, "client_id = ?", req.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "client not found")
		}
		return helper.JsonError(c, "submit payment", err)
	}
	var teacher userModel.UserModel
	if err := db.First(&teacher, "user_id = ?", req.TeacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "teacher not found")
		}
		return helper.JsonError(c, "submit payment", err)
	}

	payment := model.PaymentModel{
		PaymentClientID:  &client.ClientID,
		PaymentTeacherID: teacher.UserID,
		PaymentAmount:    req.Amount,
		PaymentCategory:  req.Category,
		PaymentDate:      datatypes.Date(time.Now()),
		PaymentCreatorID: &actor.UserID,
	}
	if req.PaymentMethod != "" {
		payment.PaymentMethod = &req.PaymentMethod
	}
	if req.Info != "" {
		payment.PaymentInfo = &req.Info
	}

	payType := payTypeText(req.Category)
	var clientText string
	if req.Amount > 0 {
		clientText = fmt.Sprintf("%s %.2f, teacher %s", payType, req.Amount, teacher.UserUsername)
	} else {
		clientText = fmt.Sprintf("refunded %.2f, teacher %s", -req.Amount, teacher.UserUsername)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "submit payment", tx.Error)
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "submit payment", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		fmt.Sprintf("client %s %s %.2f, teacher %s", client.ClientName, payType, req.Amount, teacher.UserUsername)); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "submit payment", err)
	}
	if err := logService.AppendClientLog(tx, client.ClientID, actor.UserID, clientText); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "submit payment", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "submit payment", err)
	}

	return helper.JsonOK(c, "payment recorded", fiber.Map{"id": payment.PaymentID})
}

// POST /extra/addPayment
// Back-office entry for arbitrary ledger rows; expenses go in as
// negative amounts with a free-text receiver instead of a client.
func (ctrl *PaymentController) AddPayment(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.AddPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.Amount == 0 {
		return helper.JsonFail(c, -2, "amount cannot be zero")
	}

	payment := model.PaymentModel{
		PaymentClientID:  req.ClientID,
		PaymentTeacherID: req.TeacherID,
		PaymentAmount:    req.Amount,
		PaymentCategory:  req.Category,
		PaymentDate:      datatypes.Date(time.Now()),
		PaymentCreatorID: &actor.UserID,
	}
	if req.Receiver != "" {
		payment.PaymentReceiver = &req.Receiver
	}
	if req.PaymentMethod != "" {
		payment.PaymentMethod = &req.PaymentMethod
	}
	if req.Info != "" {
		payment.PaymentInfo = &req.Info
	}

	db := ctrl.DB.WithContext(c.Context())
	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "add payment", tx.Error)
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add payment", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		fmt.Sprintf("added ledger entry of %.2f", req.Amount)); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "add payment", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "add payment", err)
	}

	return helper.JsonOK(c, "payment added", fiber.Map{"id": payment.PaymentID})
}

// POST /extra/updatePayment
func (ctrl *PaymentController) UpdatePayment(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if req.Amount == 0 {
		return helper.JsonFail(c, -2, "amount cannot be zero")
	}

	db := ctrl.DB.WithContext(c.Context())
	var payment model.PaymentModel
	if err := db.First(&payment, "payment_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "payment not found")
		}
		return helper.JsonError(c, "update payment", err)
	}

	updates := map[string]interface{}{
		"payment_client_id":  req.ClientID,
		"payment_teacher_id": req.TeacherID,
		"payment_amount":     req.Amount,
		"payment_category":   req.Category,
	}
	if req.Receiver != "" {
		updates["payment_receiver"] = req.Receiver
	} else {
		updates["payment_receiver"] = nil
	}
	if req.PaymentMethod != "" {
		updates["payment_method"] = req.PaymentMethod
	}
	if req.Info != "" {
		updates["payment_info"] = req.Info
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "update payment", tx.Error)
	}
	if err := tx.Model(&model.PaymentModel{}).
		Where("payment_id = ?", req.ID).
		Updates(updates).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update payment", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		fmt.Sprintf("updated ledger entry %d", req.ID)); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "update payment", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "update payment", err)
	}

	return helper.JsonOK(c, "payment updated", nil)
}

// POST /extra/deletePayment
func (ctrl *PaymentController) DeletePayment(c *fiber.Ctx) error {
	actor, err := helperAuth.GetCurrentUser(c)
	if err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.PaymentIDRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	db := ctrl.DB.WithContext(c.Context())
	var payment model.PaymentModel
	if err := db.First(&payment, "payment_id = ?", req.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFail(c, fiber.StatusNotFound, "payment not found")
		}
		return helper.JsonError(c, "delete payment", err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, "delete payment", tx.Error)
	}
	if err := tx.Delete(&model.PaymentModel{}, "payment_id = ?", req.ID).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete payment", err)
	}
	if err := logService.AppendLog(tx, actor.UserID,
		fmt.Sprintf("deleted ledger entry %d of %.2f", payment.PaymentID, payment.PaymentAmount)); err != nil {
		tx.Rollback()
		return helper.JsonError(c, "delete payment", err)
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, "delete payment", err)
	}

	return helper.JsonOK(c, "payment deleted", nil)
}

// POST /extra/getClientPayments
func (ctrl *PaymentController) GetClientPayments(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.ClientPaymentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var payments []model.PaymentModel
	err := ctrl.DB.WithContext(c.Context()).
		Order("payment_date DESC, payment_id DESC").
		Find(&payments, "payment_client_id = ?", req.ClientID).Error
	if err != nil {
		return helper.JsonError(c, "fetch client payments", err)
	}
	return helper.JsonOK(c, "client payments fetched", fiber.Map{"payments": payments})
}

type paymentRow struct {
	model.PaymentModel
	ClientName  *string `json:"client_name,omitempty"`
	TeacherName string  `json:"teacher_name"`
}

// POST /extra/getPayments
// The clients join has to be an outer one; expense rows carry only a
// receiver and would vanish under an inner join.
func (ctrl *PaymentController) GetPayments(c *fiber.Ctx) error {
	if _, err := helperAuth.GetCurrentUser(c); err != nil {
		return helper.JsonFail(c, -1, "not logged in")
	}

	var req dto.GetPaymentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonFail(c, fiber.StatusBadRequest, "invalid payload")
	}
	paging := helper.ResolvePaging(req.Page, req.PerPage, 10, 200)

	db := ctrl.DB.WithContext(c.Context())
	query := db.Table("payments").
		Select("payments.*, clients.client_name, users.user_username AS teacher_name").
		Joins("LEFT JOIN clients ON clients.client_id = payments.payment_client_id").
		Joins("JOIN users ON users.user_id = payments.payment_teacher_id").
		Order("payments.payment_date DESC, payments.payment_id DESC")

	if req.SchoolID != nil {
		query = query.Where("users.user_school_id = ?", *req.SchoolID)
	}
	switch req.PaymentType {
	case "income":
		query = query.Where("payments.payment_amount > 0")
	case "expense":
		query = query.Where("payments.payment_amount <= 0")
	}
	if req.Category != nil {
		query = query.Where("payments.payment_category = ?", *req.Category)
	}
	if req.PaymentMethod != "" {
		query = query.Where("payments.payment_method = ?", req.PaymentMethod)
	}
	if req.ClientName != "" {
		query = query.Where("clients.client_name LIKE ? OR payments.payment_receiver LIKE ?",
			"%"+req.ClientName+"%", "%"+req.ClientName+"%")
	}
	if req.ClientPhone != "" {
		query = query.Where("clients.client_phone LIKE ?", "%"+req.ClientPhone+"%")
	}
	if req.StartTime != "" {
		query = query.Where("payments.payment_date >= ?", req.StartTime)
	}
	if req.EndTime != "" {
		query = query.Where("payments.payment_date <= ?", req.EndTime)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helper.JsonError(c, "fetch payments", err)
	}
	var rows []paymentRow
	if err := query.Offset(paging.Offset).Limit(paging.Limit).Scan(&rows).Error; err != nil {
		return helper.JsonError(c, "fetch payments", err)
	}

	return helper.JsonOK(c, "payments fetched", fiber.Map{
		"payments": rows,
		"total":    total,
	})
}
