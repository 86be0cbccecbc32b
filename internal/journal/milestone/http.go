package milestone

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/keepsakehq/keepsake/internal/platform/request"
	"github.com/keepsakehq/keepsake/internal/platform/respond"
	"github.com/keepsakehq/keepsake/pkg/convert"
	"github.com/keepsakehq/keepsake/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the milestone routes. The parent router enforces
// authentication; every handler is scoped to the token's account.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listMilestones)
	router.Get("/upcoming", handler.upcoming)
	router.Get("/reminders/due", handler.dueReminders)
	router.Post("/", handler.createMilestone)
	router.Get("/{id}", handler.getMilestone)
	router.Get("/{id}/prompts", handler.reflectionPrompts)
	router.Patch("/{id}", handler.updateMilestone)
	router.Delete("/{id}", handler.deleteMilestone)
}

type milestonePayload struct {
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Type           string     `json:"type"`
	Date           time.Time  `json:"date"`
	ReminderOption string     `json:"reminder_option"`
	TargetCount    *int       `json:"target_count"`
	TargetDate     *time.Time `json:"target_date"`
}

func (handler *Handler) listMilestones(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	filter := Filter{
		OwnerID: ownerID,
		Type:    request.URL.Query().Get("type"),
	}

	milestones, total, err := handler.service.ListMilestones(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, milestones, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) upcoming(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	daysAhead := convert.ToIntD(request.URL.Query().Get("days"), DefaultReminderWindowDays)

	views, err := handler.service.Upcoming(request.Context(), ownerID, daysAhead, time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, views)
}

func (handler *Handler) dueReminders(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	due, err := handler.service.DueReminders(request.Context(), ownerID, time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, due)
}

func (handler *Handler) getMilestone(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	milestone, err := handler.service.GetMilestone(request.Context(), ownerID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, milestone)
}

func (handler *Handler) reflectionPrompts(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	milestone, err := handler.service.GetMilestone(request.Context(), ownerID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"type":       milestone.Type,
		"prompts":    ReflectionPrompts(milestone.Type),
		"suggestion": RandomReflectionPrompt(milestone.Type),
	})
}

func (handler *Handler) createMilestone(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input milestonePayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	milestone := payloadToMilestone(input)
	milestone.OwnerID = ownerID

	if err := handler.service.CreateMilestone(request.Context(), milestone); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, milestone)
}

func (handler *Handler) updateMilestone(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input milestonePayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	milestone := payloadToMilestone(input)
	if err := handler.service.UpdateMilestone(request.Context(), ownerID, requestutil.Param(request, "id"), milestone); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, milestone)
}

func (handler *Handler) deleteMilestone(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteMilestone(request.Context(), ownerID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func payloadToMilestone(input milestonePayload) *Milestone {
	reminderOption := input.ReminderOption
	if reminderOption == "" {
		reminderOption = ReminderNone
	}

	return &Milestone{
		Title:          input.Title,
		Description:    input.Description,
		Type:           input.Type,
		Date:           input.Date,
		ReminderOption: reminderOption,
		TargetCount:    input.TargetCount,
		TargetDate:     input.TargetDate,
	}
}
