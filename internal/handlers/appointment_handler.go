package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/agenda-scheduler/internal/dto"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/agenda-scheduler/internal/middleware"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/agenda-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Create       *ucAppointment.CreateAppointment
	Update       *ucAppointment.UpdateAppointment
	ChangeStatus *ucAppointment.ChangeStatus
	Cancel       *ucAppointment.CancelAppointment
	Exclude      *ucAppointment.ExcludeAppointment
	Get          *ucAppointment.GetAppointment
	Conflicts    *ucAppointment.FindConflicts
	List         *ucAppointment.ListAppointments
	StaffAgenda  *ucAppointment.StaffAgenda
	ClientList   *ucAppointment.ClientAppointments
	History      *ucAppointment.AppointmentHistory
}

type AppointmentHandler struct {
	uc AppointmentUseCases
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CompanyID uint     `json:"empresa_id" binding:"required"`
	ClientID  uint     `json:"cliente_id" binding:"required"`
	StaffID   uint     `json:"funcionario_id" binding:"required"`
	ServiceID uint     `json:"servico_id" binding:"required"`
	Date      string   `json:"data_agendamento" binding:"required"`
	StartTime string   `json:"horario_inicio" binding:"required"`
	EndTime   string   `json:"horario_fim" binding:"required"`
	Value     *float64 `json:"valor"`
	Notes     *string  `json:"observacoes"`
}

// Nullable separa campo ausente (Set=false) de null explícito
// (Set=true, Value=nil).
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) cleared() bool {
	return n.Set && n.Value == nil
}

// UpdateAppointmentRequest: campos ausentes ficam como estão; valor e
// observacoes com null são apagados.
type UpdateAppointmentRequest struct {
	StaffID   *uint             `json:"funcionario_id"`
	ServiceID *uint             `json:"servico_id"`
	Date      *string           `json:"data_agendamento"`
	StartTime *string           `json:"horario_inicio"`
	EndTime   *string           `json:"horario_fim"`
	Value     Nullable[float64] `json:"valor"`
	Notes     Nullable[string]  `json:"observacoes"`
	Status    *string           `json:"status"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ConflictCheckRequest struct {
	StaffID   uint   `json:"funcionario_id" binding:"required"`
	Date      string `json:"data_agendamento" binding:"required"`
	StartTime string `json:"horario_inicio" binding:"required"`
	EndTime   string `json:"horario_fim" binding:"required"`
	ExcludeID *uint  `json:"agendamento_id"`
}

// ======================================================
// HELPERS
// ======================================================

func principalOf(c *gin.Context) (access.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Usuário não autenticado.")
		return access.Principal{}, false
	}
	return p, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

// optionalUint lê um query param numérico; ausente = nil.
func optionalUint(c *gin.Context, name string) (*uint, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_query", "Parâmetro "+name+" inválido.")
		return nil, false
	}
	u := uint(v)
	return &u, true
}

func optionalString(c *gin.Context, name string) *string {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil
	}
	return &raw
}

// fail troca o payload de conflito pelo formato de resposta.
func fail(c *gin.Context, err error) {
	if be, ok := httperr.As(err); ok && be.Kind == httperr.KindConflict {
		if list, ok := be.Payload.([]models.Appointment); ok {
			be.Payload = dto.FromAppointments(list)
			err = be
		}
	}
	httperr.FromError(c, err)
}

// NotFoundRoute responde rotas inexistentes no mesmo formato de erro da API.
func NotFoundRoute(c *gin.Context) {
	httperr.NotFound(c, "route_not_found", "Rota não encontrada.")
}

// ======================================================
// LIST (todos ou com filtros)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	in := ucAppointment.ListAppointmentsInput{
		Status:   optionalString(c, "status"),
		DateFrom: optionalString(c, "data_inicio"),
		DateTo:   optionalString(c, "data_fim"),
	}

	ids := []struct {
		name string
		dst  **uint
	}{
		{"cliente_id", &in.ClientID},
		{"funcionario_id", &in.StaffID},
		{"servico_id", &in.ServiceID},
		{"empresa_id", &in.CompanyID},
	}
	for _, q := range ids {
		v, ok := optionalUint(c, q.name)
		if !ok {
			return
		}
		*q.dst = v
	}

	aps, err := h.uc.List.Execute(c.Request.Context(), principal, in)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(aps))
}

// ======================================================
// GET BY ID
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), &principal, id)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), principal, ucAppointment.CreateAppointmentInput{
		CompanyID: req.CompanyID,
		ClientID:  req.ClientID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Value:     req.Value,
		Notes:     req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromAppointment(*ap))
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.uc.Update.Execute(c.Request.Context(), principal, id, ucAppointment.UpdateAppointmentInput{
		StaffID:    req.StaffID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Value:      req.Value.Value,
		Notes:      req.Notes.Value,
		Status:     req.Status,
		ClearValue: req.Value.cleared(),
		ClearNotes: req.Notes.cleared(),
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

// ======================================================
// STATUS / CANCEL / DELETE
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Status é obrigatório.")
		return
	}

	ap, err := h.uc.ChangeStatus.Execute(c.Request.Context(), principal, id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.uc.Cancel.Execute(c.Request.Context(), principal, id)
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Exclude.Execute(c.Request.Context(), principal, id); err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Agendamento excluído com sucesso."})
}

// ======================================================
// CONFLICT CHECK
// ======================================================

func (h *AppointmentHandler) CheckConflicts(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}

	var req ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	conflicts, err := h.uc.Conflicts.Execute(c.Request.Context(), &principal, ucAppointment.FindConflictsInput{
		StaffID:   req.StaffID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		ExcludeID: req.ExcludeID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.OK(c, dto.ConflictCheckDTO{
		Conflict:  len(conflicts) > 0,
		Conflicts: dto.FromAppointments(conflicts),
	})
}

// ======================================================
// STAFF AGENDA / CLIENT APPOINTMENTS
// ======================================================

func (h *AppointmentHandler) StaffAgenda(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	staffID, ok := uintParam(c, "funcionario_id")
	if !ok {
		return
	}

	aps, err := h.uc.StaffAgenda.Execute(c.Request.Context(), &principal, staffID, c.Param("data"))
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(aps))
}

func (h *AppointmentHandler) ClientAppointments(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	clientID, ok := uintParam(c, "cliente_id")
	if !ok {
		return
	}

	aps, err := h.uc.ClientList.Execute(c.Request.Context(), &principal, clientID, ucAppointment.ClientAppointmentsInput{
		Status:   optionalString(c, "status"),
		DateFrom: optionalString(c, "data_inicio"),
		DateTo:   optionalString(c, "data_fim"),
	})
	if err != nil {
		fail(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(aps))
}

// ======================================================
// HISTORY (logs_atividades)
// ======================================================

func (h *AppointmentHandler) History(c *gin.Context) {
	principal, ok := principalOf(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	res, err := h.uc.History.Execute(c.Request.Context(), principal, id, page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  res.Page,
		"limit": res.Limit,
		"total": res.Total,
		"logs":  res.Logs,
	})
}
